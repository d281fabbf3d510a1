package logger

import (
	"time"

	"go.uber.org/zap"
)

// =================================================================================
// CAMPOS ESTÁNDAR - HTTP
// =================================================================================

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del request.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v int64) zap.Field {
	return zap.Int64("duration_ms", v)
}

// Bytes crea un campo para los bytes de respuesta.
func Bytes(v int) zap.Field {
	return zap.Int("bytes", v)
}

// =================================================================================
// CAMPOS ESTÁNDAR - NEGOCIO
// =================================================================================

// Tool crea un campo para el nombre de la tool invocada.
func Tool(v string) zap.Field {
	return zap.String("tool", v)
}

// Operation crea un campo para la operación remota.
func Operation(v string) zap.Field {
	return zap.String("operation", v)
}

// SessionID crea un campo para el ID de sesión del agente.
func SessionID(v string) zap.Field {
	return zap.String("session_id", v)
}

// JobID crea un campo para el ID de un search job asíncrono.
func JobID(v string) zap.Field {
	return zap.String("job_id", v)
}

// Repository crea un campo para el repositorio SIEM consultado.
func Repository(v string) zap.Field {
	return zap.String("repository", v)
}

// Elapsed crea un campo para tiempo transcurrido.
func Elapsed(v time.Duration) zap.Field {
	return zap.Duration("elapsed", v)
}

// Err crea un campo de error (alias corto de zap.Error).
func Err(err error) zap.Field {
	return zap.Error(err)
}
