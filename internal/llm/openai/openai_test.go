package openai

import (
	"errors"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/shpitdev/cold-outreach-pipeline/pkg/pipeline/core"
)

func TestClassifyErr(t *testing.T) {
	tests := []struct {
		name          string
		in            error
		wantTransient bool
	}{
		{name: "nil", in: nil, wantTransient: false},
		{name: "api_429", in: &goopenai.APIError{HTTPStatusCode: 429}, wantTransient: true},
		{name: "api_500", in: &goopenai.APIError{HTTPStatusCode: 500}, wantTransient: true},
		{name: "api_400", in: &goopenai.APIError{HTTPStatusCode: 400}, wantTransient: false},
		{name: "plain_error", in: errors.New("context canceled"), wantTransient: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyErr(tt.in)
			var te *core.TransientError
			isTransient := errors.As(got, &te)
			if isTransient != tt.wantTransient {
				t.Fatalf("transient=%v want=%v (err=%T %v)", isTransient, tt.wantTransient, got, got)
			}
		})
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
