package auditoria

import "context"

type ctxKey int

const ipOrigemKey ctxKey = iota

// ComIPOrigem installs the request's source IP so Registrar can stamp it
// on entries without threading it through every service signature.
func ComIPOrigem(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipOrigemKey, ip)
}

// IPOrigem returns the source IP installed by the HTTP layer, or "".
func IPOrigem(ctx context.Context) string {
	if ip, ok := ctx.Value(ipOrigemKey).(string); ok {
		return ip
	}
	return ""
}
