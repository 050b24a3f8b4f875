package entity

import "time"

// Batch representa un lote físico de stock de un Variant, con su propia fecha
// de vencimiento y cantidad. Un lote pertenece a exactamente un Variant;
// borrar el Variant borra sus lotes (cascade en el esquema).
// IsExpired es derivado: se recalcula en cada escritura con el evaluador de
// vencimiento, nunca lo fija un caller. La agregación de stock no confía en
// el valor almacenado, lo reevalúa al momento de leer.
type Batch struct {
	ID                string
	VariantID         string
	Quantity          int        // >= 0
	ExpiryDate        time.Time  // fecha calendario, obligatoria
	ManufacturingDate *time.Time // opcional, <= ExpiryDate cuando existe
	LotNumber         string     // texto libre, opcional
	IsExpired         bool       // derivado: ExpiryDate < fecha de la última escritura
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
