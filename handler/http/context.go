package http

import (
	"golang.org/x/net/context"

	"github.com/adamsinnett/omorgan-events/platform/token"
)

const (
	ctxKeyClaims     = "claims"
	ctxKeyCredential = "credential"
	ctxKeyRoute      = "route"
	ctxKeyVersion    = "version"
)

func adminFromContext(ctx context.Context) *token.AdminClaims {
	return ctx.Value(ctxKeyClaims).(*token.AdminClaims)
}

func claimsFromContext(ctx context.Context) token.Claims {
	return ctx.Value(ctxKeyClaims).(token.Claims)
}

func claimsInContext(ctx context.Context, claims token.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

func credentialFromContext(ctx context.Context) string {
	return ctx.Value(ctxKeyCredential).(string)
}

func credentialInContext(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, ctxKeyCredential, credential)
}

// originFromContext derives the acting identity used for content ownership.
// Admins act under their email, guests under the invitation token their
// credential was exchanged for.
func originFromContext(ctx context.Context) string {
	switch c := claimsFromContext(ctx).(type) {
	case *token.AdminClaims:
		return c.Email
	case *token.GuestClaims:
		return c.InvitationToken
	}

	return ""
}

func routeFromContext(ctx context.Context) string {
	return ctx.Value(ctxKeyRoute).(string)
}

func routeInContext(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, ctxKeyRoute, route)
}

func versionFromContext(ctx context.Context) string {
	return ctx.Value(ctxKeyVersion).(string)
}

func versionInContext(ctx context.Context, version string) context.Context {
	return context.WithValue(ctx, ctxKeyVersion, version)
}
