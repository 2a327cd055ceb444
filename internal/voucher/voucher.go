// Package voucher implements voucher eligibility, the minimum-spend
// condition parser and the client-facing filter/pagination over a
// customer's voucher list.
package voucher

import (
    "regexp"
    "strconv"
    "strings"

    "github.com/cinebook/cinema-booking/internal/model"
)

// StatusUnused marks a voucher that has never been redeemed.  Any
// other status (the backend writes "Used") makes the voucher
// ineligible regardless of cart contents.
const StatusUnused = "Unused"

// PageSize is the fixed page size of the voucher picker.
const PageSize = 3

// minSpendRe matches the first "$<amount>" occurrence in a free-text
// condition such as "Min spend $500".  The backend has no structured
// minimum-spend column; this parser is the contract the original
// application shipped with.  A condition without a dollar amount means
// no minimum.
var minSpendRe = regexp.MustCompile(`\$(\d+)`)

// MinSpend extracts the minimum spend from a condition string,
// defaulting to 0 when absent or unparsable.
func MinSpend(condition string) float64 {
    m := minSpendRe.FindStringSubmatch(condition)
    if m == nil {
        return 0
    }
    n, err := strconv.ParseFloat(m[1], 64)
    if err != nil {
        return 0
    }
    return n
}

// Eligible reports whether a voucher may be applied to a cart with the
// given gross (pre-discount) subtotal: the voucher must be unused and
// its parsed minimum spend must not exceed the subtotal.
func Eligible(v model.CustomerVoucher, grossSubtotal float64) bool {
    if v.Status != StatusUnused {
        return false
    }
    return MinSpend(v.Condition) <= grossSubtotal
}

// Filter returns the vouchers whose condition text contains the query,
// case-insensitively.  An empty query keeps everything.  Order is
// preserved so the same filter always yields the same list.
func Filter(vouchers []model.CustomerVoucher, query string) []model.CustomerVoucher {
    q := strings.ToLower(strings.TrimSpace(query))
    if q == "" {
        out := make([]model.CustomerVoucher, len(vouchers))
        copy(out, vouchers)
        return out
    }
    out := make([]model.CustomerVoucher, 0, len(vouchers))
    for _, v := range vouchers {
        if strings.Contains(strings.ToLower(v.Condition), q) {
            out = append(out, v)
        }
    }
    return out
}

// TotalPages returns how many PageSize pages the list spans.  An empty
// list has zero pages.
func TotalPages(n int) int {
    return (n + PageSize - 1) / PageSize
}

// Page slices one 1-based page out of the list.  Pages below 1 clamp
// to the first page; pages past the end yield an empty slice.  The
// same filter and page always produce the same slice.
func Page(vouchers []model.CustomerVoucher, page int) []model.CustomerVoucher {
    if page < 1 {
        page = 1
    }
    start := (page - 1) * PageSize
    if start >= len(vouchers) {
        return []model.CustomerVoucher{}
    }
    end := start + PageSize
    if end > len(vouchers) {
        end = len(vouchers)
    }
    out := make([]model.CustomerVoucher, end-start)
    copy(out, vouchers[start:end])
    return out
}
