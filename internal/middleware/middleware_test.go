package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRecoverer_ConvertsPanic(t *testing.T) {
	var buf bytes.Buffer
	action := Chain("View roles", func(context.Context) error {
		panic("boom")
	}, Recoverer(newBufferLogger(&buf)))

	err := action(context.Background())
	if err == nil {
		t.Fatal("expected error after panic")
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Errorf("expected panic to be logged, got %s", buf.String())
	}
}

func TestLogger_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	failure := errors.New("store unavailable")

	action := Chain("Add role", func(context.Context) error {
		return failure
	}, Logger(newBufferLogger(&buf)))

	if err := action(context.Background()); !errors.Is(err, failure) {
		t.Fatalf("expected original error, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"action":"Add role"`) || !strings.Contains(out, "store unavailable") {
		t.Errorf("expected action and error in log, got %s", out)
	}
}

func TestChain_Order(t *testing.T) {
	var calls []string
	trace := func(tag string) Middleware {
		return func(name string, next Action) Action {
			return func(ctx context.Context) error {
				calls = append(calls, tag)
				return next(ctx)
			}
		}
	}

	action := Chain("x", func(context.Context) error {
		calls = append(calls, "action")
		return nil
	}, trace("outer"), trace("inner"))

	if err := action(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(calls, ",") != "outer,inner,action" {
		t.Errorf("expected outer,inner,action, got %v", calls)
	}
}
