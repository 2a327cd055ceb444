// Package seating turns a showtime's fetched seat map into a
// toggleable selection and prices the chosen seats into cart tickets.
// No network calls happen here; availability comes from the seat rows
// the repository loaded for the showtime.
package seating

import (
    "strings"

    "github.com/cinebook/cinema-booking/internal/model"
)

// Fixed per-seat-type prices in whole currency units.  Unknown seat
// types fall back to the Standard price.
const (
    PriceStandard   = 150
    PriceVIP        = 250
    PriceCouple     = 400
    PriceAccessible = 150
)

var seatPrices = map[string]float64{
    "Standard":   PriceStandard,
    "VIP":        PriceVIP,
    "Couple":     PriceCouple,
    "Accessible": PriceAccessible,
}

// NormalizeSeatType canonicalizes backend seat type strings ("vip",
// "VIP", "Vip") to the table keys above.  VIP keeps its all-caps form;
// everything else is title-cased.
func NormalizeSeatType(t string) string {
    t = strings.TrimSpace(t)
    if t == "" {
        return "Standard"
    }
    if strings.EqualFold(t, "VIP") {
        return "VIP"
    }
    return strings.ToUpper(t[:1]) + strings.ToLower(t[1:])
}

// PriceFor returns the ticket price for a seat type.
func PriceFor(seatType string) float64 {
    if p, ok := seatPrices[NormalizeSeatType(seatType)]; ok {
        return p
    }
    return PriceStandard
}

// SeatMap is the selectable view over one showtime's seats.  Seats are
// kept in the order the backend returned them so selections come out
// stable.
type SeatMap struct {
    order    []string
    seats    map[string]model.ShowtimeSeat
    selected map[string]struct{}
}

// NewSeatMap builds a seat map from fetched seat rows.  Duplicate seat
// numbers keep the first row seen.
func NewSeatMap(seats []model.ShowtimeSeat) *SeatMap {
    m := &SeatMap{
        order:    make([]string, 0, len(seats)),
        seats:    make(map[string]model.ShowtimeSeat, len(seats)),
        selected: make(map[string]struct{}),
    }
    for _, s := range seats {
        if _, ok := m.seats[s.SeatNumber]; ok {
            continue
        }
        m.seats[s.SeatNumber] = s
        m.order = append(m.order, s.SeatNumber)
    }
    return m
}

// Available reports whether a seat exists and has not been booked.
func (m *SeatMap) Available(seatNumber string) bool {
    s, ok := m.seats[seatNumber]
    return ok && strings.EqualFold(s.Status, "Available")
}

// Toggle flips the selection state of a seat.  Unavailable or unknown
// seats are a no-op.  It returns true when the seat is selected after
// the call.
func (m *SeatMap) Toggle(seatNumber string) bool {
    if !m.Available(seatNumber) {
        _, still := m.selected[seatNumber]
        return still
    }
    if _, ok := m.selected[seatNumber]; ok {
        delete(m.selected, seatNumber)
        return false
    }
    m.selected[seatNumber] = struct{}{}
    return true
}

// Selected returns the chosen seat numbers in seat-map order.
func (m *SeatMap) Selected() []string {
    out := make([]string, 0, len(m.selected))
    for _, n := range m.order {
        if _, ok := m.selected[n]; ok {
            out = append(out, n)
        }
    }
    return out
}

// SelectedCount returns how many seats are currently chosen.
func (m *SeatMap) SelectedCount() int { return len(m.selected) }

// Tickets prices the current selection against the seat-type table and
// converts it into cart tickets for the given showtime.  The result
// feeds Cart.SetTickets on "proceed".
func (m *SeatMap) Tickets(show model.Showtime) []model.CartTicket {
    selected := m.Selected()
    out := make([]model.CartTicket, 0, len(selected))
    for _, n := range selected {
        seat := m.seats[n]
        seatType := NormalizeSeatType(seat.SeatType)
        out = append(out, model.CartTicket{
            MovieID:    show.MovieID,
            ShowtimeID: show.ID,
            BranchID:   show.BranchID,
            HallNumber: show.HallNumber,
            SeatNumber: n,
            Price:      PriceFor(seatType),
            MovieName:  show.MovieTitle,
            SeatType:   seatType,
        })
    }
    return out
}
