package handler

import (
    "errors"   // for errors.Is comparisons against repository sentinels
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/cinebook/cinema-booking/internal/repository" // repository layer
)

// BookingHandler serves the public browse endpoints: the movie list
// and the booking page aggregate a client needs to render seat
// selection and concessions for one showtime.  No authentication is
// required; guests may browse before logging in to pay.
type BookingHandler struct {
    MovieRepo    *repository.MovieRepo    // access to movies
    ShowtimeRepo *repository.ShowtimeRepo // access to showtimes and seat maps
    ProductRepo  *repository.ProductRepo  // access to concession products
}

// NewBookingHandler constructs a BookingHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewBookingHandler(movieRepo *repository.MovieRepo, showtimeRepo *repository.ShowtimeRepo, productRepo *repository.ProductRepo) *BookingHandler {
    if movieRepo == nil || showtimeRepo == nil || productRepo == nil {
        panic("nil repository passed to NewBookingHandler")
    }
    return &BookingHandler{
        MovieRepo:    movieRepo,
        ShowtimeRepo: showtimeRepo,
        ProductRepo:  productRepo,
    }
}

// ListMovies handles GET /v1/movies.  It returns the short movie list
// for the browse page; an empty array when nothing is scheduled.
func (h *BookingHandler) ListMovies(c echo.Context) error {
    movies, err := h.MovieRepo.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// GetBookingPage handles GET /v1/movies/:movie_id/:showtime_id.  It
// aggregates everything the booking page renders: the movie header,
// the showtime with branch and hall details, the seat map with
// availability, and the full concession product list.  Missing movie
// or showtime yields 404.
func (h *BookingHandler) GetBookingPage(c echo.Context) error {
    movieID, err := strconv.ParseUint(c.Param("movie_id"), 10, 64)
    if err != nil || movieID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
    }
    showtimeID, err := strconv.ParseUint(c.Param("showtime_id"), 10, 64)
    if err != nil || showtimeID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
    }
    ctx := c.Request().Context()

    movie, err := h.MovieRepo.GetByID(ctx, movieID)
    if err != nil {
        if errors.Is(err, repository.ErrMovieNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    showtime, err := h.ShowtimeRepo.GetInfo(ctx, movieID, showtimeID)
    if err != nil {
        if errors.Is(err, repository.ErrShowtimeNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    seats, err := h.ShowtimeRepo.ListSeats(ctx, showtimeID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
    }
    products, err := h.ProductRepo.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load products"})
    }

    return c.JSON(http.StatusOK, echo.Map{
        "movie":    movie,
        "showtime": showtime,
        "seats":    seats,
        "products": products,
    })
}
