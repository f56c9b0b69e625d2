package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// Repositories use Tx when set and fall back to their own pool otherwise.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Background is a Context with no transaction and a background context.
func Background() Context {
	return Context{Ctx: context.Background()}
}

// WithContext returns a copy of dbc carrying ctx.
func (dbc Context) WithContext(ctx context.Context) Context {
	dbc.Ctx = ctx
	return dbc
}

// Context returns the request context, never nil.
func (dbc Context) Context() context.Context {
	if dbc.Ctx == nil {
		return context.Background()
	}
	return dbc.Ctx
}
