package requestid_test

import (
	"context"
	"testing"

	"github.com/ErlanBelekov/authd/internal/requestid"
	"github.com/google/uuid"
)

func TestNew_IsUUID(t *testing.T) {
	if _, err := uuid.Parse(requestid.New()); err != nil {
		t.Errorf("New() is not a uuid: %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := requestid.WithRequestID(context.Background(), "abc")
	if got := requestid.FromContext(ctx); got != "abc" {
		t.Errorf("FromContext = %q, want abc", got)
	}
	if got := requestid.FromContext(context.Background()); got != "" {
		t.Errorf("FromContext(empty) = %q, want \"\"", got)
	}
}
