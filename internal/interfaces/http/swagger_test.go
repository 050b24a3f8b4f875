package http_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El middleware de swagger entra en pánico al arrancar si el archivo no
// existe, así que docs/swagger.json tiene que estar versionado y ser JSON
// válido con todas las rutas registradas.
func TestSwaggerJSON_ExisteYCubreLasRutas(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "docs", "swagger.json"))
	require.NoError(t, err, "docs/swagger.json debe estar versionado")

	var doc struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	rutas := []string{
		"/api/variants/{id}/receipts",
		"/api/variants/{id}/stock",
		"/api/variants/{id}/summary",
		"/api/variants/{id}/batches",
		"/api/batches/{id}/quantity",
		"/api/batches/{id}",
		"/health",
	}
	for _, ruta := range rutas {
		assert.Contains(t, doc.Paths, ruta)
	}
}
