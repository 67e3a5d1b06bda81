package customer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
)

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert находит клиента по email (без учета регистра) или создает нового.
// Имя существующего клиента обновляется.
func (r *Repository) Upsert(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("name", "email").
		Values(c.Name, strings.ToLower(strings.TrimSpace(c.Email))).
		Suffix("ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name RETURNING id, email, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	result := &domain.Customer{Name: c.Name}
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&result.ID,
		&result.Email,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	result.CreatedAt = createdAt.Time

	return result, nil
}
