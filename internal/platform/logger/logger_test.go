package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	cases := map[string]zap.AtomicLevel{
		"debug": zap.NewAtomicLevelAt(zap.DebugLevel),
		"info":  zap.NewAtomicLevelAt(zap.InfoLevel),
		"warn":  zap.NewAtomicLevelAt(zap.WarnLevel),
		"":      zap.NewAtomicLevelAt(zap.ErrorLevel),
	}
	for level, want := range cases {
		log, err := New(level)
		if err != nil {
			t.Fatalf("New(%q): %v", level, err)
		}
		if !log.Core().Enabled(want.Level()) {
			t.Fatalf("New(%q): level %v not enabled", level, want.Level())
		}
		if want.Level() > zap.DebugLevel && log.Core().Enabled(want.Level()-1) {
			t.Fatalf("New(%q): level below %v should be disabled", level, want.Level())
		}
	}
}
