// Package logging configures the logrus logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

// Options selects where log lines go.
type Options struct {
	Out     io.Writer // console output, stderr by default
	Verbose bool      // enable debug level
	File    string    // optional path that receives a copy of every entry
}

// Setup builds a logger writing text lines to opts.Out. The returned closer
// releases the log file, if any.
func Setup(opts Options) (*log.Logger, func() error, error) {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp:  true,
		DisableSorting: true,
	})

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	if opts.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	closer := func() error { return nil }
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", opts.File, err)
		}
		logger.AddHook(&writer.Hook{
			Writer:    f,
			LogLevels: log.AllLevels,
		})
		closer = f.Close
	}

	return logger, closer, nil
}
