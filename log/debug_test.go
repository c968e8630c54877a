package log

import (
	"os"
	"testing"
	"time"
)

func TestDebugDisabledByDefault(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil

	os.Unsetenv("LOFI_DEBUG")
	InitDebug()

	if DebugEnabled {
		t.Error("Debug should be disabled by default")
	}
	if DebugLog == nil {
		t.Error("DebugLog should be a no-op logger, not nil")
	}
}

func TestDebugEnabledWithEnvVar(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil

	t.Setenv("LOFI_DEBUG", "1")

	InitDebug()
	defer func() {
		CloseDebug()
		DebugEnabled = false
	}()

	if !DebugEnabled {
		t.Error("Debug should be enabled with LOFI_DEBUG=1")
	}
	if DebugLog == nil {
		t.Error("DebugLog should be initialized")
	}
}

func TestTraceHelpersNeverPanic(t *testing.T) {
	DebugEnabled = false
	DebugLog = nil
	Debug("test %s", "arg")
	InputTrace("test %s", "arg")
	RegistryTrace("select", "test %d", 1)

	DebugEnabled = true
	DebugLog = nil
	Debug("test %s", "arg")
	InputTrace("test %s", "arg")
	RegistryTrace("select", "test %d", 1)
	DebugEnabled = false
}

func TestFrameTimer(t *testing.T) {
	t.Run("no-op when disabled", func(t *testing.T) {
		DebugEnabled = false
		frames.Reset()
		frames.Start()()
		count, _ := frames.Stats()
		if count != 0 {
			t.Errorf("expected no frames recorded, got %d", count)
		}
	})

	t.Run("records average", func(t *testing.T) {
		DebugEnabled = true
		defer func() { DebugEnabled = false }()
		frames.Reset()

		frames.Record(10 * time.Millisecond)
		frames.Record(20 * time.Millisecond)

		count, avg := frames.Stats()
		if count != 2 {
			t.Errorf("expected 2 frames, got %d", count)
		}
		if avg != 15*time.Millisecond {
			t.Errorf("expected 15ms average, got %v", avg)
		}
	})

	t.Run("rolling window", func(t *testing.T) {
		DebugEnabled = true
		defer func() { DebugEnabled = false }()
		frames.Reset()

		for i := 0; i < 150; i++ {
			frames.Record(time.Millisecond)
		}

		if len(frames.timings) != 100 {
			t.Errorf("expected 100 timings in window, got %d", len(frames.timings))
		}
		count, _ := frames.Stats()
		if count != 150 {
			t.Errorf("expected 150 frames counted, got %d", count)
		}
	})
}
