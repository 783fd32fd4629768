package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestInitLoggerReplacesGlobal(t *testing.T) {
	InitLogger("debug")

	if Log == nil {
		t.Fatal("Log not initialized")
	}
	if zap.L() != Log {
		t.Error("zap.L() should return the initialized logger, not the no-op default")
	}
}

func TestInitLoggerLevelByMode(t *testing.T) {
	InitLogger("release")
	if Log.Core().Enabled(zap.DebugLevel) {
		t.Error("release mode should not enable debug level")
	}

	InitLogger("debug")
	if !Log.Core().Enabled(zap.DebugLevel) {
		t.Error("debug mode should enable debug level")
	}
}
