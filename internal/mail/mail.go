// Package mail defines the draft creation boundary and its rate limiting.
package mail

import "context"

// Draft is one outgoing email ready for draft creation.
type Draft struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer creates a draft in the sender's mailbox and returns the provider
// draft id. Implementations must not send the message.
type Mailer interface {
	CreateDraft(ctx context.Context, d Draft) (string, error)
}

// DryRunMailer accepts every draft without contacting any provider.
type DryRunMailer struct {
	Drafts []Draft
}

func (m *DryRunMailer) CreateDraft(_ context.Context, d Draft) (string, error) {
	m.Drafts = append(m.Drafts, d)
	return "", nil
}
