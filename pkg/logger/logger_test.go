package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_StampsServiceAndFields(t *testing.T) {
	var buf bytes.Buffer
	root := New(Options{Level: "debug", Output: &buf})
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	log := WithBrowserContext(Component(root, "auth"), "ctx-1")
	log.Info().Msg("operator logged in")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if line[FieldService] != "rifa-admin" || line[FieldComponent] != "auth" || line[FieldBrowserContext] != "ctx-1" {
		t.Fatalf("unexpected fields: %v", line)
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	log.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info line leaked at warn level: %s", buf.String())
	}
}

func TestWithBrowserContext_EmptyID(t *testing.T) {
	var buf bytes.Buffer
	log := WithBrowserContext(zerolog.New(&buf), "")
	log.Info().Msg("x")

	if bytes.Contains(buf.Bytes(), []byte(FieldBrowserContext)) {
		t.Fatalf("empty id must not add a field: %s", buf.String())
	}
}
