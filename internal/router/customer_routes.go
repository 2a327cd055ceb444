package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cinebook/cinema-booking/internal/handler"
	"github.com/cinebook/cinema-booking/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role.  Customers manage
// their cart (tickets, concessions, voucher), browse their vouchers and
// submit payment to create a receipt.
func RegisterCustomer(e *echo.Echo, cart *handler.CartHandler, vouchers *handler.VoucherHandler, checkout *handler.CheckoutHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)

	// Cart state and mutations.  Tickets are replaced as a set from the
	// seat selection; products are individual lines keyed by product id.
	g.GET("/cart", cart.GetCart)
	g.PUT("/cart/tickets", cart.SetTickets)
	g.POST("/cart/products", cart.AddProduct)
	g.PUT("/cart/concessions", cart.SubmitConcessions)
	g.PATCH("/cart/products/:id", cart.UpdateProductQuantity)
	g.DELETE("/cart/products/:id", cart.RemoveProduct)
	g.POST("/cart/voucher", cart.ApplyVoucher)
	g.DELETE("/cart/voucher", cart.RemoveVoucher)
	g.DELETE("/cart", cart.ClearCart)

	// Voucher picker with condition filter and fixed-size pages.
	g.GET("/vouchers", vouchers.List)

	// Payment submission.  Success clears the cart and returns the
	// confirmation location; the confirmation page resolves the booking
	// id back into the stored receipt date.
	g.POST("/receipts", checkout.Submit)
	g.GET("/receipts/:id", checkout.GetConfirmation)
}
