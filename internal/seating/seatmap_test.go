package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinebook/cinema-booking/internal/model"
)

func demoSeats() []model.ShowtimeSeat {
	return []model.ShowtimeSeat{
		{SeatNumber: "A1", SeatType: "Standard", Status: "Available"},
		{SeatNumber: "A2", SeatType: "standard", Status: "AVAILABLE"},
		{SeatNumber: "B1", SeatType: "vip", Status: "Booked"},
		{SeatNumber: "B2", SeatType: "VIP", Status: "Available"},
		{SeatNumber: "C1", SeatType: "Couple", Status: "available"},
	}
}

func TestPriceFor_SeatTypeTable(t *testing.T) {
	assert.Equal(t, 150.0, PriceFor("Standard"))
	assert.Equal(t, 250.0, PriceFor("VIP"))
	assert.Equal(t, 400.0, PriceFor("Couple"))
	assert.Equal(t, 150.0, PriceFor("Accessible"))
	// Case variants normalize to the same row.
	assert.Equal(t, 250.0, PriceFor("vip"))
	assert.Equal(t, 400.0, PriceFor("COUPLE"))
	// Unknown and empty types fall back to Standard.
	assert.Equal(t, 150.0, PriceFor("Recliner"))
	assert.Equal(t, 150.0, PriceFor(""))
}

func TestNormalizeSeatType(t *testing.T) {
	assert.Equal(t, "VIP", NormalizeSeatType("vip"))
	assert.Equal(t, "VIP", NormalizeSeatType("Vip"))
	assert.Equal(t, "Couple", NormalizeSeatType("COUPLE"))
	assert.Equal(t, "Standard", NormalizeSeatType(" standard "))
	assert.Equal(t, "Standard", NormalizeSeatType(""))
}

func TestAvailable_CaseInsensitiveStatus(t *testing.T) {
	m := NewSeatMap(demoSeats())
	assert.True(t, m.Available("A1"))
	assert.True(t, m.Available("A2"))
	assert.True(t, m.Available("C1"))
	assert.False(t, m.Available("B1"))
	assert.False(t, m.Available("Z9"))
}

func TestToggle_SelectAndDeselect(t *testing.T) {
	m := NewSeatMap(demoSeats())
	assert.True(t, m.Toggle("A1"))
	assert.Equal(t, 1, m.SelectedCount())
	// Toggling again deselects.
	assert.False(t, m.Toggle("A1"))
	assert.Equal(t, 0, m.SelectedCount())
}

func TestToggle_UnavailableSeatIsNoOp(t *testing.T) {
	m := NewSeatMap(demoSeats())
	assert.False(t, m.Toggle("B1"))
	assert.False(t, m.Toggle("Z9"))
	assert.Equal(t, 0, m.SelectedCount())
}

func TestSelected_SeatMapOrder(t *testing.T) {
	m := NewSeatMap(demoSeats())
	m.Toggle("C1")
	m.Toggle("A1")
	m.Toggle("B2")
	assert.Equal(t, []string{"A1", "B2", "C1"}, m.Selected())
}

func TestNewSeatMap_DuplicateSeatKeepsFirst(t *testing.T) {
	m := NewSeatMap([]model.ShowtimeSeat{
		{SeatNumber: "A1", SeatType: "Standard", Status: "Available"},
		{SeatNumber: "A1", SeatType: "VIP", Status: "Booked"},
	})
	assert.True(t, m.Available("A1"))
	m.Toggle("A1")
	show := model.Showtime{ID: 10, MovieID: 1}
	tickets := m.Tickets(show)
	require.Len(t, tickets, 1)
	assert.Equal(t, 150.0, tickets[0].Price)
}

func TestTickets_PricesSelectionForShowtime(t *testing.T) {
	m := NewSeatMap(demoSeats())
	m.Toggle("B2")
	m.Toggle("C1")

	show := model.Showtime{
		ID:         10,
		MovieID:    1,
		BranchID:   2,
		HallNumber: 3,
		MovieTitle: "Interstellar",
	}
	tickets := m.Tickets(show)
	require.Len(t, tickets, 2)

	assert.Equal(t, "B2", tickets[0].SeatNumber)
	assert.Equal(t, 250.0, tickets[0].Price)
	assert.Equal(t, "VIP", tickets[0].SeatType)
	assert.Equal(t, uint64(10), tickets[0].ShowtimeID)
	assert.Equal(t, uint64(2), tickets[0].BranchID)
	assert.Equal(t, "Interstellar", tickets[0].MovieName)

	assert.Equal(t, "C1", tickets[1].SeatNumber)
	assert.Equal(t, 400.0, tickets[1].Price)
	assert.Equal(t, "Couple", tickets[1].SeatType)
}

func TestConcessionSelection_DeltaUpdates(t *testing.T) {
	popcorn := model.Product{ID: 7, Name: "Popcorn", Price: 50}
	cola := model.Product{ID: 9, Name: "Cola", Price: 30}

	s := NewConcessionSelection()
	assert.Equal(t, 0, s.Quantity(7))

	s.UpdateQuantity(popcorn, 1)
	s.UpdateQuantity(popcorn, 1)
	s.UpdateQuantity(cola, 3)
	assert.Equal(t, 2, s.Quantity(7))
	assert.Equal(t, 3, s.Quantity(9))
	assert.Equal(t, 190.0, s.Subtotal())

	// Dropping to zero removes the line entirely.
	s.UpdateQuantity(popcorn, -2)
	assert.Equal(t, 0, s.Quantity(7))
	require.Len(t, s.Lines(), 1)

	// A negative delta on an absent line never creates one.
	s.UpdateQuantity(popcorn, -1)
	assert.Equal(t, 0, s.Quantity(7))
}

func TestConcessionSelection_CartProducts(t *testing.T) {
	s := NewConcessionSelection()
	s.UpdateQuantity(model.Product{ID: 7, Name: "Popcorn", Price: 50}, 2)
	out := s.CartProducts()
	require.Len(t, out, 1)
	assert.Equal(t, uint64(7), out[0].ProductID)
	assert.Equal(t, 2, out[0].Quantity)
	assert.Equal(t, "Popcorn", out[0].Name)
	assert.Equal(t, 50.0, out[0].Price)
}
