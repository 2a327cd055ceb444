package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/cinebook/cinema-booking/internal/checkout"
    "github.com/cinebook/cinema-booking/internal/repository"
)

// CheckoutHandler exposes payment submission and the confirmation
// lookup.  Validation failures and backend rejections surface their
// message verbatim in a "detail" field so the client can show exactly
// what went wrong.
type CheckoutHandler struct {
    Flow     *checkout.Flow          // submission state machine
    Receipts *repository.ReceiptRepo // confirmation lookups
}

// NewCheckoutHandler constructs a CheckoutHandler around a wired flow
// and the receipt repository.
func NewCheckoutHandler(flow *checkout.Flow, receipts *repository.ReceiptRepo) *CheckoutHandler {
    if flow == nil || receipts == nil {
        panic("nil dependency passed to NewCheckoutHandler")
    }
    return &CheckoutHandler{Flow: flow, Receipts: receipts}
}

// Submit handles POST /v1/receipts.  The body carries the payment
// method and its fields; the cart itself is read server-side so the
// submitted totals always match the displayed ones.  An empty ticket
// set answers 409 with a redirect hint, a second submit while one is
// processing answers 409, invalid payment input answers 400 with the
// exact validation message, a seat conflict at persistence time
// answers 409, and a voucher consumed by an earlier checkout answers
// 422.
func (h *CheckoutHandler) Submit(c echo.Context) error {
    customerID, err := getCustomerID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var pay checkout.PaymentDetails
    if err := c.Bind(&pay); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request body"})
    }

    res, err := h.Flow.Submit(c.Request().Context(), customerID, pay)
    if err != nil {
        switch {
        case errors.Is(err, checkout.ErrEmptyCart):
            return c.JSON(http.StatusConflict, echo.Map{
                "detail":   err.Error(),
                "redirect": "/movies",
            })
        case errors.Is(err, checkout.ErrSubmitInFlight):
            return c.JSON(http.StatusConflict, echo.Map{"detail": err.Error()})
        case errors.Is(err, checkout.ErrInvalidCard),
            errors.Is(err, checkout.ErrInvalidUPI),
            errors.Is(err, checkout.ErrInvalidBank),
            errors.Is(err, checkout.ErrUnknownMethod):
            return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
        case errors.Is(err, repository.ErrSeatTaken):
            return c.JSON(http.StatusConflict, echo.Map{"detail": err.Error()})
        case errors.Is(err, repository.ErrVoucherUsed):
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": err.Error()})
        case errors.Is(err, repository.ErrEmptyReceipt):
            return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
        default:
            return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
        }
    }
    return c.JSON(http.StatusCreated, res)
}

// GetConfirmation handles GET /v1/receipts/:id.  The confirmation page
// resolves the bookingId from the success redirect into the stored
// receipt date for the booking summary.
func (h *CheckoutHandler) GetConfirmation(c echo.Context) error {
    if _, err := getCustomerID(c); err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    receiptID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || receiptID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid receipt id"})
    }
    date, err := h.Receipts.GetDate(c.Request().Context(), receiptID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "receipt not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "receipt_id":   receiptID,
        "receipt_date": date,
    })
}
