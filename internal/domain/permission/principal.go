package permission

import "context"

// Principal is the authenticated caller, resolved once per request.
type Principal struct {
	UserID   string
	Name     string
	Email    string
	Role     Role
	ClientID *string
}

// OwnsClient reports whether a client-role principal is bound to clientID.
func (p *Principal) OwnsClient(clientID string) bool {
	return p.ClientID != nil && *p.ClientID == clientID
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the caller stored by the auth middleware.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
