package logging

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dongaedu/edunews/internal/model"
	"github.com/dongaedu/edunews/internal/store"
	"github.com/dongaedu/edunews/internal/testutil"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEventLogHandlerWritesWarnAndAbove(t *testing.T) {
	db := testutil.TestDB(t)
	events := store.NewEvents(db)

	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewEventLogHandler(inner, db))

	logger.Info("just informational")
	logger.Warn("login failed", "category", "auth", "email", "a@example.com")
	logger.Error("failed to publish article", "article_id", 7)

	recent, err := events.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent() error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len(events) = %d, want 2 (INFO must not be persisted)", len(recent))
	}

	byMessage := make(map[string]model.Event, len(recent))
	for _, e := range recent {
		byMessage[e.Message] = e
	}

	warn, ok := byMessage["login failed"]
	if !ok {
		t.Fatal("warn event not persisted")
	}
	if warn.Level != model.EventLevelWarning {
		t.Errorf("warn level = %q", warn.Level)
	}
	if warn.Category != model.EventCategoryAuth {
		t.Errorf("warn category = %q, want explicit category attribute", warn.Category)
	}

	errEvent, ok := byMessage["failed to publish article"]
	if !ok {
		t.Fatal("error event not persisted")
	}
	if errEvent.Level != model.EventLevelError {
		t.Errorf("error level = %q", errEvent.Level)
	}
	if errEvent.Category != model.EventCategoryArticle {
		t.Errorf("error category = %q, want inferred from message", errEvent.Category)
	}
}

func TestExtractMetadata(t *testing.T) {
	rec := slog.NewRecord(time.Now(), slog.LevelWarn, "m", 0)
	rec.AddAttrs(
		slog.String("category", "auth"),
		slog.String("email", "a@example.com"),
		slog.String("note", `line"1`+"\nline2"),
	)

	got := extractMetadata(rec)
	want := `{"email":"a@example.com","note":"line\"1\nline2"}`
	if got != want {
		t.Errorf("extractMetadata() = %q, want %q", got, want)
	}
}
