package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidStage         = errors.New("etapa del pipeline inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrSelfDelete           = errors.New("no puede eliminar su propia cuenta")
	ErrInvalidReportType    = errors.New("tipo de reporte inválido")
	ErrGatewayNotConfigured = errors.New("gateway social no configurado")
	ErrGatewayFailure       = errors.New("falla en el gateway social")
)
