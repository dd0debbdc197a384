// Package txmanager менеджер транзакций поверх dbmetrics.DB
//
// Транзакция прокидывается в репозитории через context (dbmetrics.WithTx),
// поэтому один и тот же код репозитория работает и в транзакции, и без неё.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/coloradodev/cronos-booking/pkg/dbmetrics"
)

const maxSerializableRetries = 3

var (
	// ErrSerialization возвращается, когда сериализуемая транзакция не смогла
	// зафиксироваться из-за конкурентного доступа после всех повторов.
	// Вызывающий код может безопасно повторить операцию
	ErrSerialization = errors.New("txmanager: serialization conflict, safe to retry")

	// ErrBegin возвращается при ошибке открытия транзакции
	ErrBegin = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается при ошибке фиксации транзакции
	ErrCommit = errors.New("txmanager: failed to commit transaction")
)

// Коды ошибок PostgreSQL, при которых транзакцию можно повторить
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// TxBeginner интерфейс источника транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager управляет транзакциями с разными уровнями изоляции
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// Конфликты сериализации (40001), дедлоки и таймауты блокировок повторяются
// до maxSerializableRetries раз; после исчерпания повторов возвращается
// ErrSerialization, ожидание не бесконечно
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 0; attempt < maxSerializableRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := m.run(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %v", ErrSerialization, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBegin, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		if isRetryablePgError(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	return nil
}

// IsRetryable возвращает true для ошибок, при которых транзакцию можно повторить
func IsRetryable(err error) bool {
	return isRetryablePgError(err)
}

func isRetryablePgError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return true
	}
	return false
}
