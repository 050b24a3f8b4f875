package repository

import (
	"context"

	"github.com/tu-usuario/ware-ledger/internal/domain/entity"
)

// VariantRepository define el puerto de persistencia para Variant (DIP).
// El catálogo (colaborador externo) crea y borra variantes; el ledger solo
// consulta existencia y escribe la disponibilidad derivada.
type VariantRepository interface {
	Create(ctx context.Context, variant *entity.Variant) error
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	// Exists chequeo liviano usado para rechazar operaciones de stock sobre
	// variantes desconocidas.
	Exists(ctx context.Context, id string) (bool, error)
	// GetForUpdate bloquea la fila del variant (SELECT FOR UPDATE) para
	// serializar el recálculo de disponibilidad por variant.
	GetForUpdate(ctx context.Context, id string) (*entity.Variant, error)
	// UpdateAvailability persiste la disponibilidad derivada.
	UpdateAvailability(ctx context.Context, id string, isAvailable bool) error
	Delete(ctx context.Context, id string) error
}
