package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}
		})
	}
}

func TestGetLoggerSetsComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := GetLogger("reconcile")
	logger.Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"component":"reconcile"`) {
		t.Errorf("log line missing component field: %s", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("log line missing message: %s", out)
	}
}

func TestGetLogFilePathIsAbsolute(t *testing.T) {
	got := getLogFilePath()
	if !strings.HasSuffix(got, "keywarden.log") {
		t.Errorf("getLogFilePath() = %s, want a keywarden.log path", got)
	}
}
