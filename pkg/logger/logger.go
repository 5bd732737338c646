// Package logger builds the leveled logger shared by echo and the services.
package logger

import (
	"os"

	"github.com/labstack/gommon/log"
)

const jsonHeader = `{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}","file":"${short_file}","line":"${line}"}`

// New returns a logger writing to stdout. Production emits JSON at INFO,
// anything else logs DEBUG with the default text header.
func New(prefix, env string) *log.Logger {
	l := log.New(prefix)
	l.SetOutput(os.Stdout)
	if env == "production" {
		l.SetHeader(jsonHeader)
		l.SetLevel(log.INFO)
		return l
	}
	l.SetLevel(log.DEBUG)
	return l
}
