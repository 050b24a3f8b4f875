package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ware-ledger/internal/domain"
	"github.com/tu-usuario/ware-ledger/internal/domain/entity"
	"github.com/tu-usuario/ware-ledger/internal/domain/repository"
	"github.com/tu-usuario/ware-ledger/internal/domain/stock"
)

func defaultClock() time.Time { return time.Now() }

// LedgerUseCase es la fachada del ledger de stock: recepción y ajuste de
// lotes, bajas, y lecturas derivadas (stock, resumen). Cada mutación de lote
// ejecuta el recálculo de disponibilidad dentro de la misma transacción, con
// bloqueo de fila por variant (Commit/Rollback todo-o-nada).
type LedgerUseCase struct {
	txRunner TxRunner
	variants repository.VariantRepository
	batches  repository.BatchRepository
	clock    stock.Clock
}

// NewLedgerUseCase construye el caso de uso. variants y batches son los
// repos atados al pool (lecturas); las escrituras pasan por txRunner.
// clock nulo usa time.Now.
func NewLedgerUseCase(
	txRunner TxRunner,
	variants repository.VariantRepository,
	batches repository.BatchRepository,
	clock stock.Clock,
) *LedgerUseCase {
	if clock == nil {
		clock = defaultClock
	}
	return &LedgerUseCase{
		txRunner: txRunner,
		variants: variants,
		batches:  batches,
		clock:    clock,
	}
}

// Summary resumen derivado de un variant: stock no vencido, disponibilidad y
// la última actualización entre sus lotes (nil si no tiene).
type Summary struct {
	Stock       int
	IsAvailable bool
	LastUpdated *time.Time
}

// ReceiveStock registra la recepción de un lote nuevo para el variant.
// Valida cantidad > 0 (una recepción en cero no es una recepción) y
// fabricación <= vencimiento cuando se informa fecha de fabricación.
// El flag de vencido del lote y la disponibilidad del variant se recalculan
// y persisten antes de retornar, en una sola transacción.
func (uc *LedgerUseCase) ReceiveStock(
	ctx context.Context,
	variantID string,
	quantity int,
	expiryDate time.Time,
	lotNumber string,
	manufacturingDate *time.Time,
) (*entity.Batch, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if expiryDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if manufacturingDate != nil && dateAfter(*manufacturingDate, expiryDate) {
		return nil, domain.ErrInvalidDateRange
	}
	exists, err := uc.variants.Exists(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	now := uc.clock()
	batch := &entity.Batch{
		ID:                uuid.New().String(),
		VariantID:         variantID,
		Quantity:          quantity,
		ExpiryDate:        expiryDate,
		ManufacturingDate: manufacturingDate,
		LotNumber:         lotNumber,
		IsExpired:         stock.IsExpired(expiryDate, now),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		variantRepo repository.VariantRepository,
	) error {
		if err := batchRepo.Create(ctx, batch); err != nil {
			return err
		}
		engine := NewAvailabilityEngine(variantRepo, batchRepo, uc.clock)
		_, err := engine.Recompute(ctx, variantID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// AdjustStock corrige la cantidad de un lote existente. Solo la cantidad es
// mutable: vencimiento, lote y fabricación son inmutables tras la creación
// (un ajuste corrige conteos, no identidad del lote). Acepta cantidad cero
// (baja lógica del conteo); rechaza negativos.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, batchID string, newQuantity int) (*entity.Batch, error) {
	if newQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var adjusted *entity.Batch
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		variantRepo repository.VariantRepository,
	) error {
		batch, err := batchRepo.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		now := uc.clock()
		batch.Quantity = newQuantity
		batch.IsExpired = stock.IsExpired(batch.ExpiryDate, now)
		batch.UpdatedAt = now
		if err := batchRepo.Update(ctx, batch); err != nil {
			return err
		}
		engine := NewAvailabilityEngine(variantRepo, batchRepo, uc.clock)
		if _, err := engine.Recompute(ctx, batch.VariantID); err != nil {
			return err
		}
		adjusted = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

// WriteOffBatch da de baja un lote (merma, vencimiento, rotura). Tras el
// borrado recalcula la disponibilidad del variant dueño, misma transacción.
func (uc *LedgerUseCase) WriteOffBatch(ctx context.Context, batchID string) error {
	return uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		variantRepo repository.VariantRepository,
	) error {
		batch, err := batchRepo.GetByID(ctx, batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if err := batchRepo.Delete(ctx, batchID); err != nil {
			return err
		}
		engine := NewAvailabilityEngine(variantRepo, batchRepo, uc.clock)
		_, err = engine.Recompute(ctx, batch.VariantID)
		return err
	})
}

// GetStock devuelve el stock no vencido del variant (lectura derivada,
// sin bloqueos exclusivos).
func (uc *LedgerUseCase) GetStock(ctx context.Context, variantID string) (int, error) {
	exists, err := uc.variants.Exists(ctx, variantID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrNotFound
	}
	agg := NewStockAggregator(uc.batches, uc.clock)
	return agg.TotalStock(ctx, variantID, false)
}

// GetVariantSummary devuelve stock, disponibilidad y el máximo updated_at
// entre los lotes del variant (nil si no tiene lotes). La disponibilidad se
// deriva del stock recién calculado, no de la columna persistida: un lote que
// venció sin escrituras intermedias ya no cuenta.
func (uc *LedgerUseCase) GetVariantSummary(ctx context.Context, variantID string) (*Summary, error) {
	exists, err := uc.variants.Exists(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	// El stock sale siempre del agregador; acá solo se busca el máximo
	// updated_at entre los lotes.
	agg := NewStockAggregator(uc.batches, uc.clock)
	total, err := agg.TotalStock(ctx, variantID, false)
	if err != nil {
		return nil, err
	}
	batches, err := uc.batches.ListByVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	var lastUpdated *time.Time
	for _, b := range batches {
		if lastUpdated == nil || b.UpdatedAt.After(*lastUpdated) {
			t := b.UpdatedAt
			lastUpdated = &t
		}
	}
	return &Summary{
		Stock:       total,
		IsAvailable: total > 0,
		LastUpdated: lastUpdated,
	}, nil
}

// ListBatches devuelve los lotes del variant ordenados por creación
// ascendente.
func (uc *LedgerUseCase) ListBatches(ctx context.Context, variantID string) ([]*entity.Batch, error) {
	exists, err := uc.variants.Exists(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return uc.batches.ListByVariant(ctx, variantID)
}

// dateAfter compara fechas calendario: true si a es posterior a b.
func dateAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return da.After(db)
}
