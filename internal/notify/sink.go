// Package notify delivers fire events to the user-facing alert channel.
package notify

import (
	"context"

	"github.com/miqat-app/miqat/internal/model"
)

// Notification is one user-visible alert. Clients dismiss it after
// DismissAfterSeconds and play a short cue when Sound is set, both
// best-effort.
type Notification struct {
	Title               string `json:"title"`
	Body                string `json:"body"`
	Sound               bool   `json:"sound"`
	DismissAfterSeconds int    `json:"dismiss_after_seconds"`
}

// DismissAfter is how long a delivered notification stays up.
const DismissAfter = 10

// Sink is the delivery backend. Notify failures are reported but never
// retried by callers; Permission is informational state, not a gate the
// scheduler enforces.
type Sink interface {
	Notify(ctx context.Context, n Notification) error
	Permission() model.Permission
}
