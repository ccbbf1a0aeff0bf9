// Package lifecycle holds process-wide lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds start and stop hooks such as the database ping and
// the HTTP server shutdown.
const DefaultTimeout = 10 * time.Second
