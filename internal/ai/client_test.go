package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"apexfit/api/internal/config"
)

func TestClassifyModelError(t *testing.T) {
	t.Parallel()

	rejected := []error{
		fmt.Errorf("API key not valid"),
		fmt.Errorf("PERMISSION_DENIED: caller lacks access"),
		fmt.Errorf("quota exceeded for model"),
		fmt.Errorf("rate limit reached"),
		fmt.Errorf("blocked by safety settings"),
		fmt.Errorf("request is invalid"),
	}
	for _, cause := range rejected {
		if got := classifyModelError(cause); !errors.Is(got, ErrModelRejected) {
			t.Errorf("classifyModelError(%v) = %v, want ErrModelRejected", cause, got)
		}
	}

	unavailable := []error{
		fmt.Errorf("connection refused"),
		fmt.Errorf("context deadline exceeded"),
		fmt.Errorf("dial tcp: no route to host"),
	}
	for _, cause := range unavailable {
		if got := classifyModelError(cause); !errors.Is(got, ErrModelUnavailable) {
			t.Errorf("classifyModelError(%v) = %v, want ErrModelUnavailable", cause, got)
		}
	}

	if got := classifyModelError(nil); got != nil {
		t.Errorf("classifyModelError(nil) = %v, want nil", got)
	}
}

func TestDisarmedClientReportsUnavailable(t *testing.T) {
	t.Parallel()

	client, err := NewClient(context.Background(), config.AIConfig{
		Model:   "gemini-2.0-flash",
		Timeout: time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.GenerateAnalysis(context.Background(), []byte{0xff, 0xd8, 0xff}, nil)
	if !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("GenerateAnalysis() error = %v, want ErrModelUnavailable", err)
	}
}

func TestUserTurnPlaceholder(t *testing.T) {
	t.Parallel()

	turn := userTurn(nil)
	if turn == "" {
		t.Fatal("userTurn(nil) returned empty prompt")
	}
	if !strings.Contains(turn, noContextPlaceholder) {
		t.Fatalf("userTurn(nil) = %q, want it to contain %q", turn, noContextPlaceholder)
	}
}
