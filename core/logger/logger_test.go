package logger

import (
	"log/slog"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := WithRID(Background(), "42:7:9")
	ctx = WithUpdateMeta(ctx, 42, 9, 7)

	if rid := RIDFrom(ctx); rid != "42:7:9" {
		t.Fatalf("rid = %q", rid)
	}
	if id := UpdateIDFrom(ctx); id != 42 {
		t.Fatalf("update_id = %d", id)
	}
	if id := UserIDFrom(ctx); id != 9 {
		t.Fatalf("user_id = %d", id)
	}
	if id := ChatIDFrom(ctx); id != 7 {
		t.Fatalf("chat_id = %d", id)
	}
}

func TestBuildRID(t *testing.T) {
	if got := BuildRID(1, 2, 3); got != "1:2:3" {
		t.Fatalf("BuildRID = %q", got)
	}
}

func TestSanitize(t *testing.T) {
	in := "price\x00 950\ttab\nline\x7f"
	want := "price 950\ttab\nline"
	if got := Sanitize(in); got != want {
		t.Fatalf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitizeLimit(t *testing.T) {
	if got := SanitizeLimit("abcdef", 3); got != "abc" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit("abc", 0); got != "" {
		t.Fatalf("SanitizeLimit zero max = %q", got)
	}
}

func TestRoundMS(t *testing.T) {
	if got := RoundMS(-time.Second); got != 0 {
		t.Fatalf("negative duration rounded to %v", got)
	}
	if got := RoundMS(1499 * time.Microsecond); got != time.Millisecond {
		t.Fatalf("RoundMS = %v", got)
	}
}
