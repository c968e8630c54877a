// Package log provides the application loggers and an opt-in debug log.
// Enable debug mode by setting LOFI_DEBUG=1.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Debug mode configuration
var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "lofi-debug.log")

// InitDebug initializes debug logging if LOFI_DEBUG=1 is set.
func InitDebug() {
	if os.Getenv("LOFI_DEBUG") != "1" {
		// no-op logger so callers never deref nil
		DebugLog = log.New(io.Discard, "", 0)
		DebugEnabled = false
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		if ErrorLog != nil {
			ErrorLog.Printf("could not open debug log file: %s", err)
		}
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f

	DebugLog.Println("Debug mode enabled")
	DebugLog.Printf("Debug log: %s", debugLogFileName)
}

// CloseDebug closes the debug log file.
func CloseDebug() {
	if debugLogFile != nil {
		_ = debugLogFile.Close()
		debugLogFile = nil
		fmt.Fprintln(os.Stderr, "wrote debug logs to "+debugLogFileName)
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// InputTrace logs input handling events.
func InputTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[INPUT] "+format, v...)
	}
}

// RegistryTrace logs channel registry transitions.
func RegistryTrace(action, format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		msg := fmt.Sprintf(format, v...)
		DebugLog.Printf("[REGISTRY:%s] %s", action, msg)
	}
}

// slowFrame is the 60fps budget.
const slowFrame = 16 * time.Millisecond

// FrameTimer keeps a rolling window of view render times.
type FrameTimer struct {
	mu      sync.Mutex
	count   int64
	timings []time.Duration
}

var frames = &FrameTimer{timings: make([]time.Duration, 0, 100)}

// Frames returns the global frame timer.
func Frames() *FrameTimer {
	return frames
}

// Start begins timing a frame. Call the returned func when the frame is rendered.
func (f *FrameTimer) Start() func() {
	if !DebugEnabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		f.Record(time.Since(start))
	}
}

// Record records one frame.
func (f *FrameTimer) Record(elapsed time.Duration) {
	if !DebugEnabled {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.count++
	if len(f.timings) >= 100 {
		f.timings = f.timings[1:]
	}
	f.timings = append(f.timings, elapsed)

	if elapsed > slowFrame && DebugLog != nil {
		DebugLog.Printf("SLOW FRAME: %v", elapsed)
	}
}

// Stats returns the number of frames recorded and the average of the window.
func (f *FrameTimer) Stats() (int64, time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.timings) == 0 {
		return f.count, 0
	}
	var sum time.Duration
	for _, t := range f.timings {
		sum += t
	}
	return f.count, sum / time.Duration(len(f.timings))
}

// Reset clears all recorded frames.
func (f *FrameTimer) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count = 0
	f.timings = make([]time.Duration, 0, 100)
}
