package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID     ctxKey = "user_id"
	CtxKeyClientID   ctxKey = "client_id"
	CtxKeyClaims     ctxKey = "claims"
	CtxKeyRegistered ctxKey = "registered"
)

// UserIDFromCtx returns the authenticated user account id, if any.
func UserIDFromCtx(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(int64)
	return v, ok
}

// ClientIDFromCtx returns the OAuth client id the caller authenticated with.
func ClientIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyClientID).(string); ok {
		return v
	}
	return ""
}

// RegisteredFromCtx reports whether the caller is a registered user rather
// than a bare client_credentials principal.
func RegisteredFromCtx(ctx context.Context) bool {
	v, ok := ctx.Value(CtxKeyRegistered).(bool)
	return ok && v
}

func claimsFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyClaims).([]string); ok {
		return v
	}
	return nil
}
