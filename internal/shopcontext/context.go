// Package shopcontext carries the active shop through request contexts.
package shopcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type contextKey string

const shopIDKey contextKey = "shop_id"

// WithShopID attaches the active shop to the context.
func WithShopID(ctx context.Context, shopID snowflake.ID) context.Context {
	if shopID == 0 {
		return ctx
	}
	return context.WithValue(ctx, shopIDKey, shopID)
}

// ShopIDFromContext returns the active shop, or 0 when none is set.
func ShopIDFromContext(ctx context.Context) snowflake.ID {
	value, _ := ctx.Value(shopIDKey).(snowflake.ID)
	return value
}
