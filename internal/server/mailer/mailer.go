// Package mailer delivers plain-text mail for the recovery flow.
package mailer

import (
	"context"
)

// Mailer sends one message. A nil error means the message was accepted for
// delivery; any error means it was not.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
