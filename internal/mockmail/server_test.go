package mockmail_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shpitdev/cold-outreach-pipeline/internal/mail"
	"github.com/shpitdev/cold-outreach-pipeline/internal/mail/httpmail"
	"github.com/shpitdev/cold-outreach-pipeline/internal/mockmail"
	"github.com/shpitdev/cold-outreach-pipeline/pkg/pipeline/core"
)

func newClient(t *testing.T, srv *httptest.Server, token string) *httpmail.Client {
	t.Helper()
	c, err := httpmail.NewClient(srv.URL, token, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestCreateDraftRoundTrip(t *testing.T) {
	t.Parallel()

	mock := mockmail.New()
	mock.RequireBearerToken("test-token")
	srv := httptest.NewServer(mock.Handler())
	defer srv.Close()

	client := newClient(t, srv, "test-token")
	id, err := client.CreateDraft(context.Background(), mail.Draft{
		To:      "jane@acme.io",
		Subject: "Application for Senior Engineer at Acme AI",
		Body:    "Hi Jane,\n\nBest regards,\nJohn Smith",
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if id != "draft-0001" {
		t.Fatalf("unexpected draft id: %q", id)
	}

	drafts := mock.Drafts()
	if len(drafts) != 1 || drafts[0].To != "jane@acme.io" {
		t.Fatalf("unexpected drafts: %#v", drafts)
	}
	calls := mock.Calls()
	if len(calls) != 1 || calls[0].Method != "POST" || calls[0].Path != "/v1/drafts" {
		t.Fatalf("unexpected calls: %#v", calls)
	}
}

func TestCreateDraftUnauthorized(t *testing.T) {
	t.Parallel()

	mock := mockmail.New()
	mock.RequireBearerToken("right-token")
	srv := httptest.NewServer(mock.Handler())
	defer srv.Close()

	client := newClient(t, srv, "wrong-token")
	if _, err := client.CreateDraft(context.Background(), mail.Draft{To: "a@b.co"}); err == nil {
		t.Fatal("expected unauthorized error")
	}
	if len(mock.Drafts()) != 0 {
		t.Fatal("no draft must be recorded")
	}
}

func TestCreateDraftServerErrorIsTransient(t *testing.T) {
	t.Parallel()

	mock := mockmail.New()
	mock.FailNext(1, 503)
	srv := httptest.NewServer(mock.Handler())
	defer srv.Close()

	client := newClient(t, srv, "")
	_, err := client.CreateDraft(context.Background(), mail.Draft{To: "a@b.co"})
	var te *core.TransientError
	if !errors.As(err, &te) {
		t.Fatalf("expected transient error, got %T %v", err, err)
	}
	var herr *httpmail.HTTPError
	if !errors.As(err, &herr) || herr.ErrorCode != "Mock:InjectedFailure" {
		t.Fatalf("expected sanitized http error, got %T %v", err, err)
	}

	// Next request succeeds.
	if _, err := client.CreateDraft(context.Background(), mail.Draft{To: "a@b.co"}); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestCreateDraftMissingRecipientRejectedLocally(t *testing.T) {
	t.Parallel()

	mock := mockmail.New()
	srv := httptest.NewServer(mock.Handler())
	defer srv.Close()

	client := newClient(t, srv, "")
	if _, err := client.CreateDraft(context.Background(), mail.Draft{}); err == nil {
		t.Fatal("expected error for missing recipient")
	}
	if len(mock.Calls()) != 0 {
		t.Fatal("client must not call the API without a recipient")
	}
}
