package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// ErrInvalidQuantity y ErrInvalidDateRange envuelven ErrInvalidInput para que
// errors.Is los clasifique también como errores de validación.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto de concurrencia, reintentar la operación completa")

	ErrInvalidQuantity  = fmt.Errorf("%w: cantidad fuera de rango", ErrInvalidInput)
	ErrInvalidDateRange = fmt.Errorf("%w: fecha de fabricación posterior al vencimiento", ErrInvalidInput)
)
