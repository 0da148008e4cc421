package chain

import (
	"context"
	"strings"
	"time"

	"github.com/dmagro/infrared-report/internal/stats"
)

// Timed records the latency and outcome of every call made through Q.
type Timed struct {
	Q        Querier
	Recorder *stats.Recorder
	now      func() time.Time
}

func NewTimed(q Querier, rec *stats.Recorder) *Timed {
	return &Timed{Q: q, Recorder: rec, now: time.Now}
}

func (t *Timed) Call(ctx context.Context, to, signature string, args ...string) ([]string, error) {
	start := t.now()
	values, err := t.Q.Call(ctx, to, signature, args...)
	t.Recorder.Record(methodName(signature), t.now().Sub(start), err != nil)
	return values, err
}

func methodName(signature string) string {
	if i := strings.IndexByte(signature, '('); i >= 0 {
		return signature[:i]
	}
	return signature
}
