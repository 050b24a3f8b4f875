package ledger

import (
	"context"

	"github.com/tu-usuario/ware-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que cada mutación de lote y el
// recálculo de disponibilidad del variant sean todo-o-nada: si algo falla,
// ni el lote ni el variant quedan a medio escribir.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		variantRepo repository.VariantRepository,
	) error) error
}
