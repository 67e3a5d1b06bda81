package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"partner_id",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

const returningColumns = "RETURNING id, partner_id, start_time, end_time, status, created_at, updated_at"

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertIfAbsent создает слот, если для (partner_id, start_time) еще нет строки.
// Возвращает false без ошибки, если слот уже существует.
func (r *Repository) InsertIfAbsent(ctx context.Context, s *domain.Slot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("partner_id", "start_time", "end_time", "status").
		Values(s.PartnerID, s.StartTime.UTC(), s.EndTime.UTC(), string(s.Status)).
		Suffix("ON CONFLICT (partner_id, start_time) DO NOTHING " + returningColumns).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: InsertIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: InsertIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	*s = *created
	return true, nil
}

// GetByID получает слот партнера по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, partnerID, id int64) (*domain.Slot, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id, "partner_id": partnerID})
}

// GetByStartTime получает слот партнера по времени начала
func (r *Repository) GetByStartTime(ctx context.Context, partnerID int64, start time.Time) (*domain.Slot, error) {
	return r.getOne(ctx, "GetByStartTime", squirrel.Eq{"partner_id": partnerID, "start_time": start.UTC()})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(where)
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, op, err)
	}
	return s, nil
}

// ListByRange возвращает слоты партнера с началом в полуинтервале [from, to), отсортированные по времени
func (r *Repository) ListByRange(ctx context.Context, partnerID int64, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"partner_id": partnerID}).
		Where(squirrel.GtOrEq{"start_time": from.UTC()}).
		Where(squirrel.Lt{"start_time": to.UTC()}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByRange - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRange - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// TransitionStatus атомарно переводит слот из статуса from в статус to.
// Условие по текущему статусу делает операцию compare-and-swap:
// из двух конкурентных вызовов успешен только один, второй получает ErrStatusMismatch.
func (r *Repository) TransitionStatus(ctx context.Context, id int64, from, to domain.SlotStatus) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(from)}).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: slot id=%d is not %s", ErrStatusMismatch, id, from)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: TransitionStatus - execute update: %v", ErrExecQuery, err)
	}
	return s, nil
}

// DeleteUnbooked удаляет слоты партнера из списка ids, кроме забронированных.
// Возвращает ID фактически удаленных слотов.
func (r *Repository) DeleteUnbooked(ctx context.Context, partnerID int64, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"partner_id": partnerID, "id": ids}).
		Where(squirrel.NotEq{"status": string(domain.SlotStatusBooked)}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DeleteUnbooked - build delete query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: DeleteUnbooked - execute delete: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	deleted := make([]int64, 0, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: DeleteUnbooked - scan id: %v", ErrScanRow, err)
		}
		deleted = append(deleted, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: DeleteUnbooked - rows error: %v", ErrScanRow, err)
	}

	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var status string
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&s.ID,
		&s.PartnerID,
		&s.StartTime,
		&s.EndTime,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := domain.ParseSlotStatus(status)
	if err != nil {
		return nil, err
	}
	s.Status = parsed
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
