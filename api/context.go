package api

import (
	"context"

	"github.com/rpupo63/newsroom-backend/auth"
)

type keyType string

const principalKey keyType = "principal"

// ctxWithPrincipal adds the resolved principal to the context
func ctxWithPrincipal(ctx context.Context, principal *auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// principalFromCtx retrieves the resolved principal, or nil when the
// request carried no usable credential.
func principalFromCtx(ctx context.Context) *auth.Principal {
	if value := ctx.Value(principalKey); value != nil {
		if principal, ok := value.(*auth.Principal); ok {
			return principal
		}
	}
	return nil
}
