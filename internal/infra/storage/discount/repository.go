package discount

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
)

// Repository репозиторий промокодов (только чтение, управление кодами вне сервиса)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория промокодов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindByCode возвращает все промокоды с указанным кодом (без учета регистра) у всех партнеров и глобальные.
// Выбор подходящего кода остается за вызывающей стороной.
func (r *Repository) FindByCode(ctx context.Context, code string) ([]*domain.DiscountCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"partner_id",
		"code",
		"type",
		"percent",
		"amount_cents",
		"valid_from",
		"valid_until",
		"max_redemptions",
		"redeemed_count",
		"active",
	).
		From("discount_codes").
		Where(squirrel.Expr("UPPER(code) = ?", domain.NormalizeCode(code))).
		OrderBy("partner_id NULLS LAST", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByCode - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByCode - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	codes := make([]*domain.DiscountCode, 0)
	for rows.Next() {
		var d domain.DiscountCode
		var codeType string
		var partnerID sql.NullInt64
		var percent sql.NullInt32
		var amountCents sql.NullInt64
		var validFrom, validUntil sql.NullTime
		var maxRedemptions sql.NullInt32

		if err := rows.Scan(
			&d.ID,
			&partnerID,
			&d.Code,
			&codeType,
			&percent,
			&amountCents,
			&validFrom,
			&validUntil,
			&maxRedemptions,
			&d.RedeemedCount,
			&d.Active,
		); err != nil {
			return nil, fmt.Errorf("%w: FindByCode - scan discount code: %v", ErrScanRow, err)
		}

		d.Type = domain.DiscountType(codeType)
		if partnerID.Valid {
			d.PartnerID = &partnerID.Int64
		}
		d.Percent = int(percent.Int32)
		d.AmountCents = amountCents.Int64
		if validFrom.Valid {
			d.ValidFrom = &validFrom.Time
		}
		if validUntil.Valid {
			d.ValidUntil = &validUntil.Time
		}
		if maxRedemptions.Valid {
			m := int(maxRedemptions.Int32)
			d.MaxRedemptions = &m
		}

		codes = append(codes, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindByCode - rows error: %v", ErrScanRow, err)
	}

	return codes, nil
}
