package dto

import (
	"time"

	"github.com/tu-usuario/ware-ledger/internal/application/ledger"
	"github.com/tu-usuario/ware-ledger/internal/domain"
	"github.com/tu-usuario/ware-ledger/internal/domain/entity"
)

// dateLayout formato de fechas calendario en la API (vencimiento, fabricación).
const dateLayout = "2006-01-02"

// ReceiveStockRequest cuerpo para registrar la recepción de un lote.
type ReceiveStockRequest struct {
	Quantity          int    `json:"quantity"`
	ExpiryDate        string `json:"expiry_date"`                  // YYYY-MM-DD, obligatorio
	ManufacturingDate string `json:"manufacturing_date,omitempty"` // YYYY-MM-DD, opcional
	LotNumber         string `json:"lot_number,omitempty"`
}

// ParseDates valida y convierte las fechas del request. Vencimiento ausente o
// malformado es entrada inválida; fabricación es opcional.
func (r ReceiveStockRequest) ParseDates() (expiry time.Time, manufacturing *time.Time, err error) {
	if r.ExpiryDate == "" {
		return time.Time{}, nil, domain.ErrInvalidInput
	}
	expiry, err = time.Parse(dateLayout, r.ExpiryDate)
	if err != nil {
		return time.Time{}, nil, domain.ErrInvalidInput
	}
	if r.ManufacturingDate != "" {
		m, err := time.Parse(dateLayout, r.ManufacturingDate)
		if err != nil {
			return time.Time{}, nil, domain.ErrInvalidInput
		}
		manufacturing = &m
	}
	return expiry, manufacturing, nil
}

// AdjustStockRequest cuerpo para corregir la cantidad de un lote.
type AdjustStockRequest struct {
	Quantity int `json:"quantity"`
}

// BatchResponse representación de un lote para la API.
type BatchResponse struct {
	ID                string    `json:"id"`
	VariantID         string    `json:"variant_id"`
	Quantity          int       `json:"quantity"`
	ExpiryDate        string    `json:"expiry_date"`
	ManufacturingDate *string   `json:"manufacturing_date,omitempty"`
	LotNumber         string    `json:"lot_number,omitempty"`
	IsExpired         bool      `json:"is_expired"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToBatchResponse mapea la entidad al DTO de respuesta.
func ToBatchResponse(b *entity.Batch) BatchResponse {
	resp := BatchResponse{
		ID:         b.ID,
		VariantID:  b.VariantID,
		Quantity:   b.Quantity,
		ExpiryDate: b.ExpiryDate.Format(dateLayout),
		LotNumber:  b.LotNumber,
		IsExpired:  b.IsExpired,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	if b.ManufacturingDate != nil {
		m := b.ManufacturingDate.Format(dateLayout)
		resp.ManufacturingDate = &m
	}
	return resp
}

// ToBatchResponses mapea una lista de lotes.
func ToBatchResponses(batches []*entity.Batch) []BatchResponse {
	out := make([]BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, ToBatchResponse(b))
	}
	return out
}

// StockResponse stock no vencido de un variant.
type StockResponse struct {
	VariantID string `json:"variant_id"`
	Stock     int    `json:"stock"`
}

// VariantSummaryResponse resumen derivado de un variant.
type VariantSummaryResponse struct {
	VariantID   string     `json:"variant_id"`
	Stock       int        `json:"stock"`
	IsAvailable bool       `json:"is_available"`
	LastUpdated *time.Time `json:"last_updated"`
}

// ToVariantSummaryResponse mapea el resumen al DTO de respuesta.
func ToVariantSummaryResponse(variantID string, s *ledger.Summary) VariantSummaryResponse {
	return VariantSummaryResponse{
		VariantID:   variantID,
		Stock:       s.Stock,
		IsAvailable: s.IsAvailable,
		LastUpdated: s.LastUpdated,
	}
}
