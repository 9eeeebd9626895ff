package auth

import "context"

type tokenKey struct{}

// WithToken guarda el access token del request para que los adapters que
// hablan con el backend lo reenvíen y apliquen las políticas RLS del usuario.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey{}).(string)
	return t, ok && t != ""
}
