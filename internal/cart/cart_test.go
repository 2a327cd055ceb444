package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinebook/cinema-booking/internal/model"
)

func vipSeat(number string) model.CartTicket {
	return model.CartTicket{
		MovieID:    1,
		ShowtimeID: 10,
		BranchID:   2,
		HallNumber: 3,
		SeatNumber: number,
		Price:      250,
		SeatType:   "VIP",
	}
}

func TestNew_EmptyCartEncodesSlices(t *testing.T) {
	c := New()
	assert.NotNil(t, c.Tickets)
	assert.NotNil(t, c.Products)
	assert.Nil(t, c.Voucher)
	assert.Equal(t, 0.0, c.TotalPrice())
}

func TestSetTickets_ReplacesAndDeduplicates(t *testing.T) {
	c := New()
	c.SetTickets([]model.CartTicket{vipSeat("B2"), vipSeat("B2"), vipSeat("B3")})
	require.Len(t, c.Tickets, 2)
	assert.Equal(t, "B2", c.Tickets[0].SeatNumber)
	assert.Equal(t, "B3", c.Tickets[1].SeatNumber)

	// A second selection replaces, never merges.
	c.SetTickets([]model.CartTicket{vipSeat("C1")})
	require.Len(t, c.Tickets, 1)
	assert.Equal(t, "C1", c.Tickets[0].SeatNumber)
}

func TestAddProduct_MergesByProductID(t *testing.T) {
	c := New()
	c.AddProduct(model.CartProduct{ProductID: 7, Quantity: 1, Name: "Popcorn", Price: 50})
	c.AddProduct(model.CartProduct{ProductID: 7, Quantity: 1, Name: "Popcorn", Price: 50})
	require.Len(t, c.Products, 1)
	assert.Equal(t, 2, c.Products[0].Quantity)

	c.AddProduct(model.CartProduct{ProductID: 9, Quantity: 3, Name: "Cola", Price: 30})
	require.Len(t, c.Products, 2)
}

func TestAddProduct_NonPositiveQuantityNeverPersists(t *testing.T) {
	c := New()
	c.AddProduct(model.CartProduct{ProductID: 7, Quantity: 0, Price: 50})
	assert.Empty(t, c.Products)

	c.AddProduct(model.CartProduct{ProductID: 7, Quantity: 2, Price: 50})
	c.AddProduct(model.CartProduct{ProductID: 7, Quantity: -2, Price: 50})
	assert.Empty(t, c.Products)
}

func TestUpdateProductQuantity_ZeroRemovesLine(t *testing.T) {
	c := New()
	c.AddProduct(model.CartProduct{ProductID: 7, Quantity: 2, Name: "Popcorn", Price: 50})
	c.UpdateProductQuantity(7, 5)
	require.Len(t, c.Products, 1)
	assert.Equal(t, 5, c.Products[0].Quantity)

	c.UpdateProductQuantity(7, 0)
	assert.Empty(t, c.Products)

	// Unknown product IDs are a no-op.
	c.UpdateProductQuantity(99, 4)
	assert.Empty(t, c.Products)
}

func TestRemoveProduct(t *testing.T) {
	c := New()
	c.AddProduct(model.CartProduct{ProductID: 7, Quantity: 2, Price: 50})
	c.AddProduct(model.CartProduct{ProductID: 9, Quantity: 1, Price: 30})
	c.RemoveProduct(7)
	require.Len(t, c.Products, 1)
	assert.Equal(t, uint64(9), c.Products[0].ProductID)
}

func TestTotalPrice_AppliesWholeCartPercentage(t *testing.T) {
	// One VIP seat at 250 plus two popcorns at 50 gives a gross of 350;
	// a 10% voucher brings the payable total to 315.
	c := New()
	c.SetTickets([]model.CartTicket{vipSeat("B2")})
	c.AddProduct(model.CartProduct{ProductID: 7, Quantity: 2, Name: "Popcorn", Price: 50})
	assert.Equal(t, 350.0, c.GrossSubtotal())
	assert.Equal(t, 350.0, c.TotalPrice())

	c.ApplyVoucher(model.VoucherSelection{CVID: 12, Discount: 10})
	assert.Equal(t, 315.0, c.TotalPrice())
	// The gross subtotal never reflects the discount.
	assert.Equal(t, 350.0, c.GrossSubtotal())
}

func TestTotalPrice_FlooredAtZero(t *testing.T) {
	c := New()
	c.SetTickets([]model.CartTicket{vipSeat("B2")})
	c.ApplyVoucher(model.VoucherSelection{CVID: 1, Discount: 150})
	assert.Equal(t, 0.0, c.TotalPrice())
}

func TestApplyVoucher_SingleSlot(t *testing.T) {
	c := New()
	c.ApplyVoucher(model.VoucherSelection{CVID: 1, Discount: 10})
	c.ApplyVoucher(model.VoucherSelection{CVID: 2, Discount: 20})
	require.NotNil(t, c.Voucher)
	assert.Equal(t, uint64(2), c.Voucher.CVID)

	c.RemoveVoucher()
	assert.Nil(t, c.Voucher)
}

func TestClear_ResetsEverything(t *testing.T) {
	c := New()
	c.SetTickets([]model.CartTicket{vipSeat("B2")})
	c.AddProduct(model.CartProduct{ProductID: 7, Quantity: 2, Price: 50})
	c.ApplyVoucher(model.VoucherSelection{CVID: 1, Discount: 10})

	c.Clear()
	assert.Empty(t, c.Tickets)
	assert.Empty(t, c.Products)
	assert.Nil(t, c.Voucher)
	assert.Equal(t, 0.0, c.TotalPrice())
}

func TestMemoryStore_RoundTripAndIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// Loading an unknown customer yields a fresh empty cart.
	c, err := s.Load(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, c.Tickets)

	c.SetTickets([]model.CartTicket{vipSeat("B2")})
	require.NoError(t, s.Save(ctx, 42, c))

	// Mutating the saved cart afterwards must not leak into the store.
	c.SetTickets(nil)

	got, err := s.Load(ctx, 42)
	require.NoError(t, err)
	require.Len(t, got.Tickets, 1)
	assert.Equal(t, "B2", got.Tickets[0].SeatNumber)

	// Customers are isolated from each other.
	other, err := s.Load(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, other.Tickets)

	require.NoError(t, s.Clear(ctx, 42))
	cleared, err := s.Load(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, cleared.Tickets)
}
