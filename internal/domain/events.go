package domain

import "time"

// Event types
const (
	EventTypeSessionCreated     = "session.created"
	EventTypeSessionDropped     = "session.dropped"
	EventTypeTransactionAdded   = "transaction.added"
	EventTypeTransactionDeleted = "transaction.deleted"
	EventTypeLedgerCleared      = "ledger.cleared"
)

// Event represents a ledger mutation to be published
type Event struct {
	ID         string         `json:"id"`
	SessionID  string         `json:"session_id"`
	EventType  string         `json:"event_type"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// TransactionEventPayload builds the payload for transaction.added and
// transaction.deleted events.
func TransactionEventPayload(index int, tx Transaction) map[string]any {
	return map[string]any{
		"index":       index,
		"date":        tx.Date.Format("2006-01-02"),
		"description": tx.Description,
		"amount":      tx.Amount.String(),
		"category":    tx.Category,
		"type":        string(tx.Type),
	}
}
