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

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote nuevo. La cantidad negativa la rechaza también el
// CHECK del esquema; acá se corta antes con error de dominio.
func (r *BatchRepo) Create(ctx context.Context, batch *entity.Batch) error {
	if batch.Quantity < 0 || batch.ExpiryDate.IsZero() {
		return domain.ErrInvalidInput
	}
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO batches (id, variant_id, quantity, expiry_date, manufacturing_date, lot_number, is_expired, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	lotNumber := (*string)(nil)
	if batch.LotNumber != "" {
		lotNumber = &batch.LotNumber
	}
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.VariantID, batch.Quantity, batch.ExpiryDate,
		batch.ManufacturingDate, lotNumber, batch.IsExpired,
		batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por id. Devuelve nil, nil si no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `
		SELECT id, variant_id, quantity, expiry_date, manufacturing_date, lot_number, is_expired, created_at, updated_at
		FROM batches WHERE id = $1`
	row := r.q.QueryRow(ctx, query, id)
	b, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// Update persiste cantidad, flag de vencido y updated_at del lote.
func (r *BatchRepo) Update(ctx context.Context, batch *entity.Batch) error {
	if batch.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	query := `
		UPDATE batches
		SET quantity = $2, is_expired = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, batch.ID, batch.Quantity, batch.IsExpired, batch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra un lote.
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByVariant devuelve los lotes del variant ordenados por creación
// ascendente (desempate por id) para agregación determinista.
func (r *BatchRepo) ListByVariant(ctx context.Context, variantID string) ([]*entity.Batch, error) {
	query := `
		SELECT id, variant_id, quantity, expiry_date, manufacturing_date, lot_number, is_expired, created_at, updated_at
		FROM batches WHERE variant_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, variantID)
	if err != nil {
		return nil, fmt.Errorf("list batches by variant: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	var lotNumber *string
	err := row.Scan(
		&b.ID, &b.VariantID, &b.Quantity, &b.ExpiryDate, &b.ManufacturingDate,
		&lotNumber, &b.IsExpired, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lotNumber != nil {
		b.LotNumber = *lotNumber
	}
	return &b, nil
}
