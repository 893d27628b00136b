package repository

import "context"

// DB is the part of the pool the health check needs.
type DB interface {
	Ping(ctx context.Context) error
}
