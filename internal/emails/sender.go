package emails

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Sender dispatches the invitation notification. Implementations must not
// mutate application state; a failed send is reported to the caller, which
// decides whether creation rolls back (strict mode) or proceeds.
type Sender interface {
	SendInvitation(ctx context.Context, toEmail, inviterName, organizationName, link string) error
}

// ConsoleSender logs invitation emails instead of sending them. Default in
// development; swap for Brevo in production via EMAIL_PROVIDER.
type ConsoleSender struct{}

func (ConsoleSender) SendInvitation(ctx context.Context, toEmail, inviterName, organizationName, link string) error {
	log.Info().
		Str("to", toEmail).
		Str("inviter", inviterName).
		Str("organization", organizationName).
		Str("link", link).
		Msg("invitation email")
	return nil
}
