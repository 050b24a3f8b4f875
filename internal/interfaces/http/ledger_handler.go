package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ware-ledger/internal/application/dto"
	"github.com/tu-usuario/ware-ledger/internal/application/ledger"
	"github.com/tu-usuario/ware-ledger/internal/domain"
	"github.com/tu-usuario/ware-ledger/internal/domain/entity"
)

// LedgerService operaciones del ledger que consume la capa HTTP.
type LedgerService interface {
	ReceiveStock(ctx context.Context, variantID string, quantity int, expiryDate time.Time, lotNumber string, manufacturingDate *time.Time) (*entity.Batch, error)
	AdjustStock(ctx context.Context, batchID string, newQuantity int) (*entity.Batch, error)
	WriteOffBatch(ctx context.Context, batchID string) error
	GetStock(ctx context.Context, variantID string) (int, error)
	GetVariantSummary(ctx context.Context, variantID string) (*ledger.Summary, error)
	ListBatches(ctx context.Context, variantID string) ([]*entity.Batch, error)
}

// LedgerHandler maneja las peticiones HTTP del ledger de stock.
type LedgerHandler struct {
	svc LedgerService
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(svc LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// ReceiveStock godoc
// @Summary      Registrar recepción de un lote
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del variant"
// @Param        body  body  dto.ReceiveStockRequest  true  "quantity, expiry_date, lot_number, manufacturing_date"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/variants/{id}/receipts [post]
func (h *LedgerHandler) ReceiveStock(c *fiber.Ctx) error {
	variantID := c.Params("id")
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	expiry, manufacturing, err := in.ParseDates()
	if err != nil {
		return errorJSON(c, err)
	}
	batch, err := h.svc.ReceiveStock(c.Context(), variantID, in.Quantity, expiry, in.LotNumber, manufacturing)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToBatchResponse(batch))
}

// AdjustStock godoc
// @Summary      Corregir la cantidad de un lote
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del lote"
// @Param        body  body  dto.AdjustStockRequest  true  "quantity"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/quantity [patch]
func (h *LedgerHandler) AdjustStock(c *fiber.Ctx) error {
	batchID := c.Params("id")
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.svc.AdjustStock(c.Context(), batchID, in.Quantity)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.ToBatchResponse(batch))
}

// WriteOffBatch godoc
// @Summary      Dar de baja un lote
// @Tags         ledger
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [delete]
func (h *LedgerHandler) WriteOffBatch(c *fiber.Ctx) error {
	if err := h.svc.WriteOffBatch(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetStock godoc
// @Summary      Stock no vencido de un variant
// @Tags         ledger
// @Produce      json
// @Param        id  path  string  true  "ID del variant"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/variants/{id}/stock [get]
func (h *LedgerHandler) GetStock(c *fiber.Ctx) error {
	variantID := c.Params("id")
	total, err := h.svc.GetStock(c.Context(), variantID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.StockResponse{VariantID: variantID, Stock: total})
}

// GetVariantSummary godoc
// @Summary      Resumen derivado de un variant
// @Tags         ledger
// @Produce      json
// @Param        id  path  string  true  "ID del variant"
// @Success      200  {object}  dto.VariantSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/variants/{id}/summary [get]
func (h *LedgerHandler) GetVariantSummary(c *fiber.Ctx) error {
	variantID := c.Params("id")
	summary, err := h.svc.GetVariantSummary(c.Context(), variantID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.ToVariantSummaryResponse(variantID, summary))
}

// ListBatches godoc
// @Summary      Lotes de un variant (orden de creación ascendente)
// @Tags         ledger
// @Produce      json
// @Param        id  path  string  true  "ID del variant"
// @Success      200  {array}   dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/variants/{id}/batches [get]
func (h *LedgerHandler) ListBatches(c *fiber.Ctx) error {
	batches, err := h.svc.ListBatches(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.ToBatchResponses(batches))
}

// errorJSON traduce errores de dominio a respuestas HTTP. Los errores se
// propagan sin modificar desde el core; acá solo se clasifican.
func errorJSON(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidDateRange):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE_RANGE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
