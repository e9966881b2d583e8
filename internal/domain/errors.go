package domain

import (
	"errors"
	"fmt"
)

// Categorías de error de dominio. Los errores estructurados de abajo
// responden a errors.Is contra estos centinelas, de modo que los handlers
// pueden clasificar sin perder el detalle.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidState      = errors.New("estado inválido para la operación")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// NotFoundError indica que una entidad referenciada no existe.
type NotFoundError struct {
	Entity string // "producto", "cliente", "proveedor", "venta", "compra", ...
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado (ID: %s)", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidInputError indica un valor de entrada malformado o fuera de rango.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("datos inválidos en campo '%s': %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// NewInvalidInput construye un InvalidInputError.
func NewInvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// InvalidStateError indica una operación no permitida desde el estado actual
// del ciclo de vida (ej: recibir una compra ya recibida).
type InvalidStateError struct {
	Entity       string
	CurrentState string
	Operation    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("no se puede realizar '%s' en %s con estado '%s'",
		e.Operation, e.Entity, e.CurrentState)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// NewInvalidState construye un InvalidStateError.
func NewInvalidState(entity, currentState, operation string) error {
	return &InvalidStateError{Entity: entity, CurrentState: currentState, Operation: operation}
}

// InsufficientStockError indica que una salida dejaría el stock negativo.
// Available y Requested se exponen para que la UI muestre ambos valores.
type InsufficientStockError struct {
	Product   string // nombre del producto
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para '%s': disponible %d, solicitado %d",
		e.Product, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// Faltante devuelve cuántas unidades faltan para cubrir lo solicitado.
func (e *InsufficientStockError) Faltante() int { return e.Requested - e.Available }

// NewInsufficientStock construye un InsufficientStockError.
func NewInsufficientStock(product string, available, requested int) error {
	return &InsufficientStockError{Product: product, Available: available, Requested: requested}
}
