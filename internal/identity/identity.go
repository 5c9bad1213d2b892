// Package identity carries the authenticated requester through a request.
// The auth middleware is the only writer; handlers trust what they read here.
package identity

import (
	"context"

	"github.com/geocoder89/enrollhub/internal/domain/account"
)

type Identity struct {
	ID    string
	Email string
	Role  string
}

type ctxKey struct{}

func (i Identity) IsAdmin() bool {
	return i.Role == account.RoleAdmin
}

// CanManage reports whether the requester may act on the given account.
func (i Identity) CanManage(accountID string) bool {
	if i.ID == "" {
		return false
	}
	return i.ID == accountID || i.IsAdmin()
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(ctxKey{}).(Identity)

	return v, ok && v.ID != ""
}
