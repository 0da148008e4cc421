// Package report builds the capture and migration reports: it walks the
// configured address table in order, fetches each row's fields, derives the
// metrics and folds the totals.
//
// A row whose fields cannot be fetched is dropped and logged; the rest of
// the report is still produced.
package report

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Options tunes a report run.
type Options struct {
	// Logger receives per-row failures. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
	// Parallel is the number of rows fetched concurrently. Values below 2
	// process rows sequentially.
	Parallel int
	// Now stamps the report. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if o.Parallel < 1 {
		o.Parallel = 1
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Failure records an abandoned row.
type Failure struct {
	Label   string `json:"label"`
	Address string `json:"address"`
	Error   string `json:"error"`
}
