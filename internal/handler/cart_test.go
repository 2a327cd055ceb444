package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinebook/cinema-booking/internal/cart"
	"github.com/cinebook/cinema-booking/internal/model"
	"github.com/cinebook/cinema-booking/internal/repository"
)

// newCartHandler wires a CartHandler over an in-memory store.  The
// repositories are only touched by the endpoints that resolve
// showtimes, products or vouchers, which the tests here avoid.
func newCartHandler(store cart.Store) *CartHandler {
	return NewCartHandler(
		store,
		repository.NewShowtimeRepo(nil),
		repository.NewProductRepo(nil),
		repository.NewVoucherRepo(nil),
	)
}

func seedCart(t *testing.T, store cart.Store) {
	t.Helper()
	ct, err := store.Load(context.Background(), 33)
	require.NoError(t, err)
	ct.SetTickets([]model.CartTicket{{
		MovieID: 1, ShowtimeID: 10, BranchID: 2, HallNumber: 3,
		SeatNumber: "B2", Price: 250, SeatType: "VIP",
	}})
	ct.AddProduct(model.CartProduct{ProductID: 7, Quantity: 2, Name: "Popcorn", Price: 50})
	require.NoError(t, store.Save(context.Background(), 33, ct))
}

type cartBody struct {
	Tickets       []model.CartTicket      `json:"tickets"`
	Products      []model.CartProduct     `json:"products"`
	Voucher       *model.VoucherSelection `json:"voucher"`
	GrossSubtotal float64                 `json:"gross_subtotal"`
	Total         float64                 `json:"total"`
}

func decodeCart(t *testing.T, data []byte) cartBody {
	t.Helper()
	var body cartBody
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func TestGetCart_ReturnsStateWithTotals(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store)
	h := newCartHandler(store)

	c, rec := authedContext(t, http.MethodGet, "/v1/cart", "")
	require.NoError(t, h.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeCart(t, rec.Body.Bytes())
	require.Len(t, body.Tickets, 1)
	require.Len(t, body.Products, 1)
	assert.Equal(t, 350.0, body.GrossSubtotal)
	assert.Equal(t, 350.0, body.Total)
}

func TestGetCart_EmptyCartEncodesEmptySlices(t *testing.T) {
	h := newCartHandler(cart.NewMemoryStore())

	c, rec := authedContext(t, http.MethodGet, "/v1/cart", "")
	require.NoError(t, h.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Clients iterate these without null checks.
	assert.Contains(t, rec.Body.String(), `"tickets":[]`)
	assert.Contains(t, rec.Body.String(), `"products":[]`)
}

// concessionsHandler wires a CartHandler whose product lookups run
// against a mocked database.
func concessionsHandler(t *testing.T, store cart.Store) (*CartHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	h := NewCartHandler(
		store,
		repository.NewShowtimeRepo(db),
		repository.NewProductRepo(db),
		repository.NewVoucherRepo(db),
	)
	return h, mock
}

func expectProduct(mock sqlmock.Sqlmock, id uint64, name string, price float64) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price, COALESCE(description, '') FROM products WHERE id = ? LIMIT 1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "description"}).
			AddRow(id, name, price, ""))
}

func TestSubmitConcessions_MergesSelectionIntoCart(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store)
	h, mock := concessionsHandler(t, store)
	expectProduct(mock, 7, "Popcorn", 50)
	expectProduct(mock, 9, "Cola", 30)

	body := `{"lines":[{"product_id":7,"quantity":2},{"product_id":9,"quantity":3}]}`
	c, rec := authedContext(t, http.MethodPut, "/v1/cart/concessions", body)
	require.NoError(t, h.SubmitConcessions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeCart(t, rec.Body.Bytes())
	require.Len(t, res.Products, 2)
	// The seeded popcorn line absorbs the submitted quantity.
	assert.Equal(t, uint64(7), res.Products[0].ProductID)
	assert.Equal(t, 4, res.Products[0].Quantity)
	assert.Equal(t, uint64(9), res.Products[1].ProductID)
	assert.Equal(t, 3, res.Products[1].Quantity)
	// 250 ticket + 4*50 popcorn + 3*30 cola.
	assert.Equal(t, 540.0, res.GrossSubtotal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitConcessions_ZeroQuantityLineNeverReachesCart(t *testing.T) {
	store := cart.NewMemoryStore()
	h, mock := concessionsHandler(t, store)
	expectProduct(mock, 9, "Cola", 30)

	body := `{"lines":[{"product_id":9,"quantity":0}]}`
	c, rec := authedContext(t, http.MethodPut, "/v1/cart/concessions", body)
	require.NoError(t, h.SubmitConcessions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeCart(t, rec.Body.Bytes())
	assert.Empty(t, res.Products)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitConcessions_UnknownProductRejected(t *testing.T) {
	store := cart.NewMemoryStore()
	h, mock := concessionsHandler(t, store)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price, COALESCE(description, '') FROM products WHERE id = ? LIMIT 1`)).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	body := `{"lines":[{"product_id":99,"quantity":1}]}`
	c, rec := authedContext(t, http.MethodPut, "/v1/cart/concessions", body)
	require.NoError(t, h.SubmitConcessions(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The cart stays untouched on rejection.
	ct, err := store.Load(context.Background(), 33)
	require.NoError(t, err)
	assert.Empty(t, ct.Products)
}

func TestUpdateProductQuantity_ZeroRemovesLine(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store)
	h := newCartHandler(store)

	c, rec := authedContext(t, http.MethodPatch, "/v1/cart/products/7", `{"quantity":0}`)
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.UpdateProductQuantity(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeCart(t, rec.Body.Bytes())
	assert.Empty(t, body.Products)
	assert.Equal(t, 250.0, body.Total)
}

func TestUpdateProductQuantity_InvalidIDRejected(t *testing.T) {
	h := newCartHandler(cart.NewMemoryStore())

	c, rec := authedContext(t, http.MethodPatch, "/v1/cart/products/abc", `{"quantity":1}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.UpdateProductQuantity(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveProduct(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store)
	h := newCartHandler(store)

	c, rec := authedContext(t, http.MethodDelete, "/v1/cart/products/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.RemoveProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeCart(t, rec.Body.Bytes())
	assert.Empty(t, body.Products)
	require.Len(t, body.Tickets, 1)
}

func TestApplyVoucher_SameVoucherTogglesOff(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store)
	ct, err := store.Load(context.Background(), 33)
	require.NoError(t, err)
	ct.ApplyVoucher(model.VoucherSelection{CVID: 12, Discount: 10})
	require.NoError(t, store.Save(context.Background(), 33, ct))

	h := newCartHandler(store)
	c, rec := authedContext(t, http.MethodPost, "/v1/cart/voucher", `{"cv_id":12}`)
	require.NoError(t, h.ApplyVoucher(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeCart(t, rec.Body.Bytes())
	assert.Nil(t, body.Voucher)
	assert.Equal(t, 350.0, body.Total)
}

func TestRemoveVoucher_RestoresFullTotal(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store)
	ct, err := store.Load(context.Background(), 33)
	require.NoError(t, err)
	ct.ApplyVoucher(model.VoucherSelection{CVID: 12, Discount: 10})
	require.NoError(t, store.Save(context.Background(), 33, ct))

	h := newCartHandler(store)
	c, rec := authedContext(t, http.MethodDelete, "/v1/cart/voucher", "")
	require.NoError(t, h.RemoveVoucher(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeCart(t, rec.Body.Bytes())
	assert.Nil(t, body.Voucher)
	assert.Equal(t, 350.0, body.Total)
}

func TestClearCart(t *testing.T) {
	store := cart.NewMemoryStore()
	seedCart(t, store)
	h := newCartHandler(store)

	c, rec := authedContext(t, http.MethodDelete, "/v1/cart", "")
	require.NoError(t, h.ClearCart(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	ct, err := store.Load(context.Background(), 33)
	require.NoError(t, err)
	assert.Empty(t, ct.Tickets)
	assert.Empty(t, ct.Products)
}
