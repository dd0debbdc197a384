package booking

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

// bookingColumns полный набор колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"tenant_id",
	"service_id",
	"staff_id",
	"client_id",
	"start_time",
	"end_time",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value),
// использует её — так create-путь пишет строку в той же сериализуемой
// транзакции, в которой перепроверял конфликты
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"tenant_id",
			"service_id",
			"staff_id",
			"client_id",
			"start_time",
			"end_time",
			"status",
			"notes",
		).
		Values(
			b.ID,
			b.TenantID,
			b.ServiceID,
			b.StaffID,
			b.ClientID,
			b.StartTime,
			b.EndTime,
			b.Status,
			b.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByTenantAndID получает бронирование тенанта по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы переходы
// статусов не гонялись друг с другом
func (r *Repository) GetByTenantAndID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// FindActiveOverlapping находит активные (pending/confirmed) бронирования
// сотрудника, пересекающиеся с полуоткрытым интервалом [start, end).
// Пересечение: existing.start < end AND start < existing.end.
// excludeID исключает одно бронирование (используется при переносе).
//
// Внутри транзакции добавляется FOR UPDATE: критическая секция по паре
// (tenant, staff) должна накрывать и перепроверку, и запись
func (r *Repository) FindActiveOverlapping(
	ctx context.Context,
	tenantID, staffID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "staff_id": staffID}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// HasConflict возвращает true, если у сотрудника есть активное бронирование,
// пересекающееся с [start, end). Это поверхность запросов ConflictIndex;
// сериализация записи обеспечивается транзакционной дисциплиной вызывающего
func (r *Repository) HasConflict(
	ctx context.Context,
	tenantID, staffID uuid.UUID,
	start, end time.Time,
	excludeID *uuid.UUID,
) (bool, error) {
	overlapping, err := r.FindActiveOverlapping(ctx, tenantID, staffID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return len(overlapping) > 0, nil
}

// ListByTenant получает бронирования тенанта с фильтрацией по сотруднику,
// периоду и статусу. По умолчанию терминальные бронирования исключаются
func (r *Repository) ListByTenant(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.StartFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.StartFrom})
	}
	if filter.StartTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.StartTo})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		terminalStatusStrings := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			terminalStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminalStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования тенанта
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// UpdateTimes атомарно переносит интервал бронирования (start/end),
// статус не меняется
func (r *Repository) UpdateTimes(ctx context.Context, tenantID, id uuid.UUID, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTimes - build update query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "UpdateTimes")
}

// AppendNote дописывает строку в notes (append-only журнал причин)
func (r *Repository) AppendNote(ctx context.Context, tenantID, id uuid.UUID, note string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("notes", squirrel.Expr("CONCAT_WS(E'\\n', notes, ?::text)", note)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendNote - build update query: %v", ErrBuildQuery, err)
	}

	return execExpectingRow(ctx, executor, query, args, "AppendNote")
}

// execExpectingRow выполняет update и проверяет, что строка существовала
func execExpectingRow(
	ctx context.Context,
	executor dbmetrics.DBExecutor,
	query string,
	args []interface{},
	op string,
) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var staffID, clientID uuid.NullUUID
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.TenantID,
		&b.ServiceID,
		&staffID,
		&clientID,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if staffID.Valid {
		b.StaffID = &staffID.UUID
	}
	if clientID.Valid {
		b.ClientID = &clientID.UUID
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
