package partner

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
)

// Repository репозиторий партнеров (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория партнеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает партнера с тарифами и процентом предоплаты
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Partner, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price_1pax_cents",
		"price_2plus_cents",
		"fee_percent",
		"daily_capacity",
		"timezone",
	).
		From("partners").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Partner
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Price1PaxCents,
		&p.Price2PlusCents,
		&p.FeePercent,
		&p.DailyCapacity,
		&p.Timezone,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan partner: %v", ErrScanRow, err)
	}

	return &p, nil
}
