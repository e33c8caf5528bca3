package api

import (
	"context"
	"errors"

	"github.com/taskboard/backend/auth"
)

type keyType string

const (
	claimsKey keyType = "claims"
)

// ctxWithClaims adds verified token claims to the context
func ctxWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetClaims retrieves verified token claims from the context
func ctxGetClaims(ctx context.Context) (*auth.Claims, error) {
	ctxValue := ctx.Value(claimsKey)
	if ctxValue == nil {
		return nil, errors.New("claims not found in context")
	}
	claims, ok := ctxValue.(*auth.Claims)
	if !ok {
		return nil, errors.New("context value is not of type `*auth.Claims`")
	}
	return claims, nil
}
