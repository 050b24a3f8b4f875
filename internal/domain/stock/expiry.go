// Package stock contiene los servicios de dominio puros del ledger de stock.
package stock

import "time"

// Clock devuelve el instante de referencia para evaluar vencimientos.
// Inyectable para tests deterministas; en producción se usa time.Now.
type Clock func() time.Time

// IsExpired decide si un lote está vencido al instante de referencia.
// Compara fechas calendario: vencido si y solo si expiryDate es estrictamente
// anterior a la fecha de ref. Un lote que vence exactamente hoy NO está
// vencido (el límite es inclusivo en la igualdad).
func IsExpired(expiryDate, ref time.Time) bool {
	ey, em, ed := expiryDate.Date()
	ry, rm, rd := ref.Date()
	expiry := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	today := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	return expiry.Before(today)
}
