package ledger

import (
	"context"

	"github.com/tu-usuario/ware-ledger/internal/domain/repository"
	"github.com/tu-usuario/ware-ledger/internal/domain/stock"
)

// StockAggregator calcula el stock total de un variant sumando sus lotes.
// Es la única fuente de verdad de "cuánto hay": el stock siempre se deriva
// de los lotes, nunca se guarda como contador independiente (un contador
// cacheado puede desincronizarse de la suma real).
type StockAggregator struct {
	batches repository.BatchRepository
	clock   stock.Clock
}

// NewStockAggregator construye el agregador sobre un repositorio de lotes
// (atado a pool o a tx). clock nulo usa time.Now.
func NewStockAggregator(batches repository.BatchRepository, clock stock.Clock) *StockAggregator {
	if clock == nil {
		clock = defaultClock
	}
	return &StockAggregator{batches: batches, clock: clock}
}

// TotalStock suma las cantidades de los lotes del variant. Con
// includeExpired=false excluye los lotes vencidos, evaluados contra el reloj
// al momento de leer (no contra el flag almacenado, que puede estar viejo si
// el lote cruzó su fecha sin ser escrito). Variant sin lotes devuelve 0.
func (a *StockAggregator) TotalStock(ctx context.Context, variantID string, includeExpired bool) (int, error) {
	batches, err := a.batches.ListByVariant(ctx, variantID)
	if err != nil {
		return 0, err
	}
	now := a.clock()
	total := 0
	for _, b := range batches {
		if !includeExpired && stock.IsExpired(b.ExpiryDate, now) {
			continue
		}
		total += b.Quantity
	}
	return total, nil
}
