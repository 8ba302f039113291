package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitAndGet(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})

	log.Info().Str("key", "value").Msg("hello")
	if !strings.Contains(buf.String(), `"message":"hello"`) {
		t.Fatalf("expected message in output, got %q", buf.String())
	}

	if got := Get(); got.GetLevel() != log.GetLevel() {
		t.Fatalf("Get returned a different logger")
	}

	// Second Init is a no-op; the singleton keeps the first writer.
	other := Init(Options{Level: "error"})
	if other.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("second Init must not rebuild the logger")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGetBeforeInitPanics(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}
