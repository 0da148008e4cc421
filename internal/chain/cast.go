package chain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dmagro/infrared-report/internal/rpc"
)

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// CastQuerier shells out to Foundry's cast. One process per call, no caching.
type CastQuerier struct {
	path string
	url  string
	run   CommandRunner
	log   logrus.FieldLogger
	block string
}

func NewCastQuerier(path, url string) *CastQuerier {
	if path == "" {
		path = "cast"
	}
	return &CastQuerier{path: path, url: url, run: runCommand, log: logrus.StandardLogger()}
}

// WithLogger sets where per-call debug lines go.
func (q *CastQuerier) WithLogger(l logrus.FieldLogger) *CastQuerier {
	q.log = l
	return q
}

// AtBlock pins every call to block, which must be normalized.
func (q *CastQuerier) AtBlock(block string) *CastQuerier {
	q.block = block
	return q
}

// WithRunner replaces the process runner.
func (q *CastQuerier) WithRunner(run CommandRunner) *CastQuerier {
	q.run = run
	return q
}

func (q *CastQuerier) Call(ctx context.Context, to, signature string, args ...string) ([]string, error) {
	sig, err := rpc.ParseSignature(signature)
	if err != nil {
		return nil, err
	}

	argv := append([]string{"call", to, signature}, args...)
	if q.block != "" && q.block != BlockLatest {
		argv = append(argv, "--block", q.block)
	}
	argv = append(argv, "--rpc-url", q.url)
	q.log.WithField("argv", strings.Join(argv, " ")).Debug("cast")

	out, err := q.run(ctx, q.path, argv...)
	if err != nil {
		return nil, fmt.Errorf("cast call %s on %s: %w", sig.Name, to, err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		if len(sig.Outputs) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("cast call %s on %s: empty output", sig.Name, to)
	}

	lines := strings.Split(text, "\n")
	values := make([]string, len(lines))
	for i, line := range lines {
		values[i] = cleanCastValue(line)
	}
	return checkOutputs(sig, values)
}

// cleanCastValue drops cast's human-readable annotation ("1000 [1e3]") and
// the quotes around string results.
func cleanCastValue(line string) string {
	line = strings.TrimSpace(line)
	if i := strings.Index(line, " ["); i > 0 && strings.HasSuffix(line, "]") {
		line = line[:i]
	}
	if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' {
		if s, err := strconv.Unquote(line); err == nil {
			return s
		}
	}
	return line
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}
