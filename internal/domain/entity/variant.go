package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant representa una unidad vendible: una talla concreta de un ware.
// WareID y SizeID referencian al catálogo (colaborador externo); existe a lo
// sumo un Variant por par (ware, size).
// IsAvailable es derivado: lo escribe únicamente el motor de disponibilidad,
// nunca un caller externo.
type Variant struct {
	ID          string
	WareID      string
	SizeID      string
	Price       decimal.Decimal // precio de venta, >= 0
	IsAvailable bool            // derivado: stock no vencido > 0
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
