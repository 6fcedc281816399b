package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shpitdev/cold-outreach-pipeline/internal/mail"
	"github.com/shpitdev/cold-outreach-pipeline/internal/validate"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/outreach"
)

// Drafter hands the composed email to the mail collaborator as a draft,
// under the process-wide rate limit.
type Drafter struct {
	Mailer  mail.Mailer
	Limiter *mail.Limiter
	Clock   func() time.Time
}

func NewDrafter(mailer mail.Mailer, limiter *mail.Limiter, clock func() time.Time) *Drafter {
	if clock == nil {
		clock = time.Now
	}
	return &Drafter{Mailer: mailer, Limiter: limiter, Clock: clock}
}

func (t *Drafter) Name() string { return "mail_drafter" }

func (t *Drafter) Description() string {
	return "Create email drafts via the mail service with rate limiting and tracking"
}

func (t *Drafter) Category() outreach.Category { return outreach.CategorySending }

func (t *Drafter) RequiredContextKeys() []string {
	return []string{outreach.KeyEmailDraft, outreach.KeyProspectData}
}

func (t *Drafter) OptionalContextKeys() []string { return []string{outreach.KeySendResult} }

func (t *Drafter) Execute(ctx context.Context, ec *outreach.Context, inputs map[string]any) outreach.ToolResult {
	draft := ec.EmailDraft

	recipient, _ := inputs["to_email"].(string)
	if strings.TrimSpace(recipient) == "" {
		recipient = ec.Prospect.Email
	}
	if strings.TrimSpace(recipient) == "" {
		return outreach.Failure("No recipient email address provided")
	}

	subject, _ := inputs["subject"].(string)
	if subject == "" {
		subject = draft.Subject
	}
	body, _ := inputs["body"].(string)
	if body == "" {
		body = draft.Body
	}

	if !validate.ValidEmail(recipient) {
		result := failedSend(recipient, subject, body, "Invalid email format")
		ec.SendResult = &result
		return outreach.Failure("Invalid email format")
	}

	if t.Limiter != nil {
		if ok, reason := t.Limiter.Allow(); !ok {
			return outreach.Failure("Rate limit exceeded: " + reason)
		}
	}

	draftID, err := t.Mailer.CreateDraft(ctx, mail.Draft{To: recipient, Subject: subject, Body: body})
	if err != nil {
		result := failedSend(recipient, subject, body, err.Error())
		ec.SendResult = &result
		return outreach.Failure(fmt.Sprintf("Email draft creation failed: %s", err))
	}

	now := t.Clock()
	result := outreach.SendResult{
		Success:    true,
		MessageID:  fmt.Sprintf("msg_%s_%d", ec.ID, now.Unix()),
		SentAt:     now.Unix(),
		Recipient:  recipient,
		Subject:    subject,
		BodyLength: len(body),
		Status:     outreach.SendStatusDraft,
	}
	ec.SendResult = &result

	slog.Info("draft created", "recipient", recipient, "message_id", result.MessageID, "draft_id", draftID)

	hourly, daily := remainingQuota(t.Limiter)
	return outreach.ToolResult{
		Success: true,
		Data: map[string]any{
			"message_id":  result.MessageID,
			"recipient":   result.Recipient,
			"sent_at":     result.SentAt,
			"body_length": result.BodyLength,
			"status":      result.Status,
		},
		Metadata: map[string]any{
			"rate_limit_remaining": map[string]int{"hourly": hourly, "daily": daily},
			"draft_id":             draftID,
		},
	}
}

func failedSend(recipient, subject, body, errMsg string) outreach.SendResult {
	return outreach.SendResult{
		Recipient:  recipient,
		Subject:    subject,
		BodyLength: len(body),
		Status:     outreach.SendStatusFailed,
		Error:      errMsg,
	}
}

func remainingQuota(l *mail.Limiter) (hourly, daily int) {
	if l == nil {
		return 0, 0
	}
	return l.Remaining()
}
