package repository

import (
	"context"

	"github.com/tu-usuario/ware-ledger/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para los lotes de stock.
// Usado dentro de transacciones para garantizar que cada mutación de lote y
// el recálculo de disponibilidad del variant sean una sola unidad atómica.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	Update(ctx context.Context, batch *entity.Batch) error
	Delete(ctx context.Context, id string) error
	// ListByVariant devuelve los lotes del variant ordenados por fecha de
	// creación ascendente (desempate por id) para agregación determinista.
	ListByVariant(ctx context.Context, variantID string) ([]*entity.Batch, error)
}
