// Package hours репозиторий рабочих часов тенанта.
// Движок читает рабочие часы как справочные данные; их мутация —
// зона ответственности коллаборатора business-hours
package hours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/pkg/dbmetrics"
	"github.com/coloradodev/cronos-booking/pkg/psqlbuilder"
)

// Repository репозиторий для чтения рабочих часов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenantAndDay получает рабочие часы тенанта на день недели.
// Отсутствие строки означает, что день не сконфигурирован (закрыто)
func (r *Repository) GetByTenantAndDay(ctx context.Context, tenantID uuid.UUID, day time.Weekday) (*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"tenant_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_open",
	).
		From("business_hours").
		Where(squirrel.Eq{"tenant_id": tenantID, "day_of_week": int(day)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndDay - build select query: %v", ErrBuildQuery, err)
	}

	var bh domain.BusinessHours
	var dayOfWeek int

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&bh.TenantID,
		&dayOfWeek,
		&bh.OpenTime,
		&bh.CloseTime,
		&bh.IsOpen,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndDay - scan row: %v", ErrScanRow, err)
	}

	bh.DayOfWeek = time.Weekday(dayOfWeek)

	return &bh, nil
}

// ListByTenant получает рабочие часы тенанта на все дни недели
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.BusinessHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"tenant_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_open",
	).
		From("business_hours").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BusinessHours, 0)
	for rows.Next() {
		var bh domain.BusinessHours
		var dayOfWeek int

		if err := rows.Scan(&bh.TenantID, &dayOfWeek, &bh.OpenTime, &bh.CloseTime, &bh.IsOpen); err != nil {
			return nil, fmt.Errorf("%w: ListByTenant - scan row: %v", ErrScanRow, err)
		}
		bh.DayOfWeek = time.Weekday(dayOfWeek)
		result = append(result, &bh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
