// Package session provee el storage de sesiones de agentes con soporte
// multi-backend.
//
// Soporta:
//   - Memory (in-process, para desarrollo/testing)
//   - Redis (distribuido, con expiry nativo, para producción)
//
// El store se inyecta como dependencia; nunca es un singleton global.
package session

import (
	"context"
	"time"
)

// Session es el estado de una conexión de agente. Se crea en initialize
// y se refresca en cada tool call.
type Session struct {
	ID        string    `json:"id"`
	Agent     string    `json:"agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
}

// Store define las operaciones del storage de sesiones.
type Store interface {
	// Get obtiene una sesión. Retorna ErrNotFound si no existe o expiró.
	Get(ctx context.Context, id string) (*Session, error)

	// Set guarda una sesión con TTL. Si ttl es 0, usa el default del backend.
	Set(ctx context.Context, s *Session, ttl time.Duration) error

	// Delete elimina una sesión.
	Delete(ctx context.Context, id string) error

	// SweepExpired purga sesiones expiradas y retorna cuántas eliminó.
	// En backends con expiry nativo (redis) es un no-op.
	SweepExpired(ctx context.Context) (int, error)

	// Close cierra la conexión del backend.
	Close() error
}

// Config configuración para crear un store de sesiones.
type Config struct {
	Driver     string // "memory" | "redis"
	Addr       string
	Password   string
	DB         int
	Prefix     string // Prefijo para todas las keys
	DefaultTTL time.Duration
}

// Errores del store.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "session: not found" }

// IsNotFound verifica si el error es porque la sesión no existe.
func IsNotFound(err error) bool {
	_, ok := err.(errNotFound)
	return ok
}

// New crea un store según la configuración.
func New(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "redis":
		return NewRedis(cfg)
	case "memory", "":
		return NewMemory(cfg.DefaultTTL), nil
	default:
		return NewMemory(cfg.DefaultTTL), nil
	}
}
