// Package delivery defines the servers started by the application.
package delivery

import "context"

// Delivery is a long-running server such as the HTTP API.
type Delivery interface {
	// Serve blocks until the server stops. A graceful shutdown is not an error.
	Serve(ctx context.Context) error
}
