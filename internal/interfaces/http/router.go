package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger LedgerService
}

// Router registra las rutas de la API. El catálogo (brands, categories,
// wares, sizes) vive en otro servicio; acá solo el ledger de stock.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	handler := NewLedgerHandler(deps.Ledger)

	variants := api.Group("/variants")
	variants.Post("/:id/receipts", handler.ReceiveStock)
	variants.Get("/:id/stock", handler.GetStock)
	variants.Get("/:id/summary", handler.GetVariantSummary)
	variants.Get("/:id/batches", handler.ListBatches)

	batches := api.Group("/batches")
	batches.Patch("/:id/quantity", handler.AdjustStock)
	batches.Delete("/:id", handler.WriteOffBatch)
}
