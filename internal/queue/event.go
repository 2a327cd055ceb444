// Package queue defines message payloads exchanged over the message broker.
package queue

// ReceiptCreatedEvent is published when a checkout completes and the
// receipt row exists.  It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type ReceiptCreatedEvent struct {
    ReceiptID  uint64   `json:"receipt_id"`
    CustomerID uint64   `json:"customer_id"`
    MovieTitle string   `json:"movie_title"`
    Seats      []string `json:"seats"`
    Method     string   `json:"method"`
    Total      float64  `json:"total"`
    CreatedAt  string   `json:"created_at"`
}
