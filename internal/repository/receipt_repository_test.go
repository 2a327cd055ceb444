package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinebook/cinema-booking/internal/model"
)

func checkoutPayload(cvID *uint64) model.ReceiptRequest {
	return model.ReceiptRequest{
		ReceiptDate: "05/03/2026",
		Method:      "CARD",
		CustomerID:  33,
		CVID:        cvID,
		Products: []model.ReceiptProduct{
			{ProductID: 7, Quantity: 2},
		},
		Tickets: []model.ReceiptTicket{
			{MovieID: 1, ShowtimeID: 10, BranchID: 2, HallNumber: 3, SeatNumber: "B2", Price: 250},
		},
	}
}

func newReceiptRepo(t *testing.T) (*ReceiptRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewReceiptRepo(db, NewVoucherRepo(db)), mock
}

const (
	insReceiptQ  = `INSERT INTO receipts (receipt_date, method, customer_id, cv_id) VALUES (STR_TO_DATE(?, '%d/%m/%Y'), ?, ?, ?)`
	insTicketsQ  = `INSERT INTO tickets (receipt_id, movie_id, showtime_id, branch_id, hall_number, seat_number, price) VALUES (?, ?, ?, ?, ?, ?, ?)`
	insProductsQ = `INSERT INTO receipt_products (receipt_id, product_id, quantity) VALUES (?, ?, ?)`
	markUsedQ    = `UPDATE customer_vouchers SET status = 'Used' WHERE customer_id = ? AND cv_id = ? AND status = 'Unused'`
)

func TestReceiptCreate_Success(t *testing.T) {
	repo, mock := newReceiptRepo(t)
	cvID := uint64(12)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insReceiptQ)).
		WithArgs("05/03/2026", "CARD", uint64(33), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta(insTicketsQ)).
		WithArgs(uint64(42), uint64(1), uint64(10), uint64(2), uint32(3), "B2", 250.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insProductsQ)).
		WithArgs(uint64(42), uint64(7), 2).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(markUsedQ)).
		WithArgs(uint64(33), uint64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), checkoutPayload(&cvID))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptCreate_NoVoucherSkipsFlip(t *testing.T) {
	repo, mock := newReceiptRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insReceiptQ)).
		WithArgs("05/03/2026", "CARD", uint64(33), nil).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta(insTicketsQ)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insProductsQ)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	_, err := repo.Create(context.Background(), checkoutPayload(nil))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptCreate_UsedVoucherAbortsTransaction(t *testing.T) {
	// A voucher consumed by an earlier checkout matches zero rows in
	// the guarded flip; the whole receipt must roll back so the
	// discount is never granted twice.
	repo, mock := newReceiptRepo(t)
	cvID := uint64(12)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insReceiptQ)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta(insTicketsQ)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insProductsQ)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(markUsedQ)).
		WithArgs(uint64(33), uint64(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), checkoutPayload(&cvID))
	assert.ErrorIs(t, err, ErrVoucherUsed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptCreate_SeatCollisionMapsToSentinel(t *testing.T) {
	repo, mock := newReceiptRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insReceiptQ)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec(regexp.QuoteMeta(insTicketsQ)).
		WillReturnError(errors.New("Error 1062: Duplicate entry '10-B2' for key 'uq_showtime_seat'"))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), checkoutPayload(nil))
	assert.ErrorIs(t, err, ErrSeatTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptCreate_EmptyPayloadRejectedBeforeTransaction(t *testing.T) {
	repo, mock := newReceiptRepo(t)

	_, err := repo.Create(context.Background(), model.ReceiptRequest{
		ReceiptDate: "05/03/2026",
		Method:      "CARD",
		CustomerID:  33,
	})
	assert.ErrorIs(t, err, ErrEmptyReceipt)
	require.NoError(t, mock.ExpectationsWereMet())
}
