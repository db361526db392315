package api

import (
	"context"
	"time"
)

// QueryTimeout bounds individual summary queries; it is deliberately
// shorter than the request timeout so a slow query fails the one
// handler instead of tying up the connection.
const QueryTimeout = 10 * time.Second

// WithQueryTimeout derives a query-scoped context from the request
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}
