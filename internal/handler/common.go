package handler // handler defines http handlers

import (
    "errors"  // errors provides the sentinel returned by getCustomerID
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types
)

// getCustomerID extracts the customer_id stored by the JWT middleware
// from echo.Context and converts it to uint64.  JWT numeric claims
// decode as float64, but other middleware or tests may store native
// integer types, so all of them are accepted.
func getCustomerID(c echo.Context) (uint64, error) {
    v := c.Get("customer_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid customer_id in context")
}
