package ledger

import (
	"context"

	"github.com/tu-usuario/ware-ledger/internal/domain"
	"github.com/tu-usuario/ware-ledger/internal/domain/repository"
	"github.com/tu-usuario/ware-ledger/internal/domain/stock"
)

// AvailabilityEngine deriva la disponibilidad booleana de un variant a partir
// del stock agregado y la persiste. Es el único componente que escribe
// Variant.IsAvailable; los callers nunca la infieren a mano.
type AvailabilityEngine struct {
	variants repository.VariantRepository
	agg      *StockAggregator
}

// NewAvailabilityEngine construye el motor sobre repositorios atados a pool o
// a tx. Dentro de una transacción debe recibir los repos de esa tx.
func NewAvailabilityEngine(variants repository.VariantRepository, batches repository.BatchRepository, clock stock.Clock) *AvailabilityEngine {
	return &AvailabilityEngine{
		variants: variants,
		agg:      NewStockAggregator(batches, clock),
	}
}

// Recompute calcula disponibilidad = stock no vencido > 0, la persiste y la
// devuelve. Bloquea la fila del variant (SELECT FOR UPDATE) para que dos
// recálculos concurrentes sobre el mismo variant se serialicen; variants
// distintos no se bloquean entre sí. Idempotente: si el valor no cambió, no
// hay segunda escritura observable.
func (e *AvailabilityEngine) Recompute(ctx context.Context, variantID string) (bool, error) {
	variant, err := e.variants.GetForUpdate(ctx, variantID)
	if err != nil {
		return false, err
	}
	if variant == nil {
		return false, domain.ErrNotFound
	}
	total, err := e.agg.TotalStock(ctx, variantID, false)
	if err != nil {
		return false, err
	}
	available := total > 0
	if available == variant.IsAvailable {
		return available, nil
	}
	if err := e.variants.UpdateAvailability(ctx, variantID, available); err != nil {
		return false, err
	}
	return available, nil
}
