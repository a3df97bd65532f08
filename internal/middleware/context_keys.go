package middleware

import (
	"context"

	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

// contextKey is a private type for context keys set by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey     = contextKey("logger")
	capabilityCtxKey = contextKey("capability")
)

// GetCapabilityFromContext retrieves the caller's capability token from the
// request context. It returns the capability and a boolean indicating if it
// was found.
func GetCapabilityFromContext(ctx context.Context) (domain.Capability, bool) {
	val := ctx.Value(capabilityCtxKey)
	if val == nil {
		return domain.Capability{}, false
	}
	cap, ok := val.(domain.Capability)
	return cap, ok
}
