package launcher

import (
	"os"

	"github.com/charmbracelet/log"
)

// pkgLogger is the fallback logger used by components constructed without
// one. Touched only from the UI goroutine and from SetLogger at startup.
var pkgLogger = newDefaultLogger()

func newDefaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "launcher",
		Level:  log.WarnLevel,
	})
}

// SetLogger replaces the package fallback logger. Passing nil restores the
// default, which writes warnings and errors to stderr.
//
// Log levels used by launcher:
//   - debug: stale manifest responses, asset cache activity
//   - info: manifest and asset loads
//   - warn: asset and manifest failures, unsupported blend modes or fits
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newDefaultLogger()
	}
	pkgLogger = l
}

// Logger returns the package fallback logger.
func Logger() *log.Logger {
	return pkgLogger
}

// orDefault returns l, or the package logger when l is nil.
func orDefault(l *log.Logger) *log.Logger {
	if l != nil {
		return l
	}
	return pkgLogger
}
