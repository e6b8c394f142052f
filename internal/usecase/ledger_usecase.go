package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/saku/internal/domain"
)

// LedgerUseCase handles session lifecycle and ledger mutations.
type LedgerUseCase struct {
	store     LedgerStore
	idGen     IDGenerator
	publisher EventPublisher
	logger    zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(store LedgerStore, idGen IDGenerator, publisher EventPublisher, logger zerolog.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		store:     store,
		idGen:     idGen,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateSession opens a fresh session owning an empty ledger.
func (uc *LedgerUseCase) CreateSession(ctx context.Context) (domain.Session, error) {
	session := domain.Session{
		ID:        uc.idGen.Generate(),
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.store.Create(ctx, session); err != nil {
		return domain.Session{}, err
	}

	uc.publish(ctx, session.ID, domain.EventTypeSessionCreated, nil)
	return session, nil
}

// DropSession discards a session and its ledger.
func (uc *LedgerUseCase) DropSession(ctx context.Context, sessionID string) error {
	if err := uc.store.Drop(ctx, sessionID); err != nil {
		return err
	}

	uc.publish(ctx, sessionID, domain.EventTypeSessionDropped, nil)
	return nil
}

// ResetSession clears every transaction while keeping the session alive.
func (uc *LedgerUseCase) ResetSession(ctx context.Context, sessionID string) error {
	var removed int
	err := uc.store.Update(ctx, sessionID, func(ledger *domain.Ledger) error {
		removed = ledger.Len()
		ledger.Clear()
		return nil
	})
	if err != nil {
		return err
	}

	uc.publish(ctx, sessionID, domain.EventTypeLedgerCleared, map[string]any{"removed": removed})
	return nil
}

// AddTransactionInput represents input for recording a transaction.
type AddTransactionInput struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    string
	Type        domain.TransactionType
}

// AddTransaction validates and appends a transaction, returning it along
// with its position in the ledger.
func (uc *LedgerUseCase) AddTransaction(ctx context.Context, sessionID string, input AddTransactionInput) (domain.Transaction, int, error) {
	tx, err := domain.NewTransaction(input.Date, input.Description, input.Amount, input.Category, input.Type)
	if err != nil {
		return domain.Transaction{}, 0, err
	}

	var index int
	err = uc.store.Update(ctx, sessionID, func(ledger *domain.Ledger) error {
		if err := ledger.Add(tx); err != nil {
			return err
		}
		index = ledger.Len() - 1
		return nil
	})
	if err != nil {
		return domain.Transaction{}, 0, err
	}

	uc.publish(ctx, sessionID, domain.EventTypeTransactionAdded, domain.TransactionEventPayload(index, tx))
	return tx, index, nil
}

// DeleteTransaction removes the transaction at index. Later entries shift
// down by one.
func (uc *LedgerUseCase) DeleteTransaction(ctx context.Context, sessionID string, index int) (domain.Transaction, error) {
	var removed domain.Transaction
	err := uc.store.Update(ctx, sessionID, func(ledger *domain.Ledger) error {
		tx, err := ledger.Delete(index)
		if err != nil {
			return err
		}
		removed = tx
		return nil
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	uc.publish(ctx, sessionID, domain.EventTypeTransactionDeleted, domain.TransactionEventPayload(index, removed))
	return removed, nil
}

// ListTransactions returns the ledger's transactions in insertion order.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, sessionID string) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	err := uc.store.View(ctx, sessionID, func(ledger *domain.Ledger) error {
		txs = ledger.Transactions()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// publish delivers an event without failing the mutation that caused it.
func (uc *LedgerUseCase) publish(ctx context.Context, sessionID, eventType string, payload map[string]any) {
	event := &domain.Event{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		EventType:  eventType,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}

	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn().
			Err(err).
			Str("event_type", eventType).
			Str("session_id", sessionID).
			Msg("event publish failed")
	}
}
