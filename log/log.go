package log

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger
)

var logFileName = filepath.Join(os.TempDir(), "lofi.log")

var globalLogFile *os.File

// Initialize should be called once at the beginning of the program to set up logging.
// defer Close() after calling this function. It sets the go log output to the file in
// the os temp directory.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// Keep the loggers usable so callers never see a nil logger.
		setOutput(io.Discard)
		InitDebug()
		return
	}

	// Set log format to include timestamp and file/line number
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	setOutput(f)
	globalLogFile = f

	InitDebug()
}

// InitializeDiscard sets up loggers that drop everything. Tests use it so that
// packages which log can run without touching the temp directory.
func InitializeDiscard() {
	setOutput(io.Discard)
	DebugLog = log.New(io.Discard, "", 0)
	DebugEnabled = false
}

func setOutput(w io.Writer) {
	InfoLog = log.New(w, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(w, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(w, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)
}

// Close closes the log files.
func Close() {
	CloseDebug()
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
}

// FileName returns the path of the main log file.
func FileName() string {
	return logFileName
}

func init() {
	// Packages may log before main calls Initialize (e.g. in tests).
	InitializeDiscard()
}
