package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ware-ledger/internal/domain"
	"github.com/tu-usuario/ware-ledger/internal/domain/entity"
	"github.com/tu-usuario/ware-ledger/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// Create persiste un variant nuevo. A lo sumo uno por par (ware, size):
// la violación del unique devuelve domain.ErrDuplicate.
func (r *VariantRepo) Create(ctx context.Context, variant *entity.Variant) error {
	if variant.ID == "" {
		variant.ID = uuid.New().String()
	}
	query := `
		INSERT INTO variants (id, ware_id, size_id, price, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.q.Exec(ctx, query,
		variant.ID, variant.WareID, variant.SizeID, variant.Price, variant.IsAvailable,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create variant: %w", err)
	}
	return nil
}

// GetByID obtiene un variant por id. Devuelve nil, nil si no existe.
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	query := `
		SELECT id, ware_id, size_id, price, is_available, created_at, updated_at
		FROM variants WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get variant")
}

// Exists chequeo liviano de existencia del variant.
func (r *VariantRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM variants WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("variant exists: %w", err)
	}
	return exists, nil
}

// GetForUpdate obtiene el variant y bloquea su fila (SELECT FOR UPDATE) para
// serializar el recálculo de disponibilidad. Devuelve nil, nil si no existe.
func (r *VariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	query := `
		SELECT id, ware_id, size_id, price, is_available, created_at, updated_at
		FROM variants WHERE id = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get variant for update")
}

// UpdateAvailability persiste la disponibilidad derivada del variant.
func (r *VariantRepo) UpdateAvailability(ctx context.Context, id string, isAvailable bool) error {
	query := `UPDATE variants SET is_available = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, isAvailable)
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra un variant; el esquema hace cascade sobre sus lotes.
func (r *VariantRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM variants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VariantRepo) scanOne(row pgx.Row, op string) (*entity.Variant, error) {
	var v entity.Variant
	err := row.Scan(&v.ID, &v.WareID, &v.SizeID, &v.Price, &v.IsAvailable, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}
