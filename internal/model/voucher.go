package model

// CustomerVoucher is one voucher granted to a customer, joined with
// the voucher definition it references.  Status is either "Unused" or
// "Used"; only unused vouchers whose minimum-spend condition is met by
// the cart's gross subtotal may be applied.
//
// The minimum spend is not a structured column: it is parsed out of
// the free-text Condition string (first "$<amount>" occurrence).
type CustomerVoucher struct {
    CVID        uint64  `json:"cv_id"`       // customer_vouchers.cv_id
    VoucherID   uint64  `json:"voucher_id"`  // vouchers.id
    Status      string  `json:"status"`      // Unused | Used
    Discount    float64 `json:"discount"`    // percentage 0..100
    Expiration  string  `json:"expiration"`  // dd/mm/yyyy
    Condition   string  `json:"condition"`   // free text, e.g. "Min spend $500"
    Description string  `json:"description"` // free text
}
