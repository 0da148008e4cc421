// Package commands holds the flag set, setup and output handling shared by
// the capture and migration binaries.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/dmagro/infrared-report/internal/chain"
	"github.com/dmagro/infrared-report/internal/config"
	"github.com/dmagro/infrared-report/internal/env"
	"github.com/dmagro/infrared-report/internal/logging"
	"github.com/dmagro/infrared-report/internal/output"
	"github.com/dmagro/infrared-report/internal/report"
	"github.com/dmagro/infrared-report/internal/reports"
	"github.com/dmagro/infrared-report/internal/stats"
)

// Flags are the options every report command accepts.
type Flags struct {
	ConfigPath string
	EnvFile    string
	Backend    string
	RPCURL     string
	Block      string
	Parallel   int
	Output     string
	Save       bool
	SaveDir    string
	XLSX       string
	Verbose    bool
	LogFile    string
}

// Register binds f to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "YAML config file (default: built-in Berachain mainnet tables)")
	fs.StringVar(&f.EnvFile, "env-file", env.DefaultFile, "File of KEY=VALUE pairs loaded before the config")
	fs.StringVar(&f.Backend, "backend", "", "Call backend: rpc|geth|cast (overrides config)")
	fs.StringVar(&f.RPCURL, "rpc-url", "", "RPC endpoint (overrides config)")
	fs.StringVar(&f.Block, "block", "", "Read state at this block: number, 0x-hex or tag (default latest)")
	fs.IntVar(&f.Parallel, "parallel", 1, "Rows fetched concurrently (1 = sequential)")
	fs.StringVarP(&f.Output, "output", "o", output.FormatText, "Output format: text|json")
	fs.BoolVar(&f.Save, "save", false, "Also write a timestamped JSON report file")
	fs.StringVar(&f.SaveDir, "save-dir", reports.DefaultDir, "Directory for --save")
	fs.StringVar(&f.XLSX, "xlsx", "", "Also write the report to this .xlsx file")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Log every contract call")
	fs.StringVar(&f.LogFile, "log-file", "", "Append log entries to this file")
}

// LoadConfig reads the configuration named by f, or the built-in default,
// and applies the command-line overrides. The result is validated.
func LoadConfig(f Flags) (*config.Config, error) {
	cfg := config.Default()
	if f.ConfigPath != "" {
		loaded, err := config.Load(f.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.Backend != "" {
		cfg.RPC.Backend = f.Backend
	}
	if f.RPCURL != "" {
		cfg.RPC.URL = f.RPCURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Session is everything one report run needs.
type Session struct {
	RunID   string
	Flags   Flags
	Config  *config.Config
	Logger  *logrus.Logger
	Querier chain.Querier
	Calls   *stats.Recorder

	closers []func() error
}

// Open loads the environment and configuration, then connects the backend.
// Errors here are configuration or usage errors.
func Open(ctx context.Context, f Flags, stderr io.Writer) (*Session, error) {
	if _, err := output.ParseFormat(f.Output); err != nil {
		return nil, err
	}
	if f.Parallel < 1 {
		return nil, fmt.Errorf("--parallel must be >= 1")
	}

	logger, closeLog, err := logging.Setup(logging.Options{Out: stderr, Verbose: f.Verbose, File: f.LogFile})
	if err != nil {
		return nil, err
	}
	s := &Session{RunID: uuid.NewString(), Flags: f, Logger: logger, closers: []func() error{closeLog}}

	if f.EnvFile != "" {
		if n := env.Load(f.EnvFile); n > 0 {
			logger.Debugf("Loaded %d variables from %s", n, f.EnvFile)
		}
	}

	if s.Config, err = LoadConfig(f); err != nil {
		s.Close()
		return nil, err
	}

	q, closeQuerier, err := chain.New(ctx, chain.Options{
		Backend:    s.Config.RPC.Backend,
		URL:        s.Config.RPC.URL,
		Timeout:    s.Config.RPC.Timeout,
		MaxRetries: s.Config.RPC.MaxRetries,
		CastPath:   s.Config.RPC.CastPath,
		Block:      f.Block,
		Logger:     s.log(),
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("connect %s backend: %w", s.Config.RPC.Backend, err)
	}
	s.Calls = stats.NewRecorder()
	s.Querier = chain.NewTimed(q, s.Calls)
	s.closers = append(s.closers, func() error { closeQuerier(); return nil })

	s.log().WithFields(logrus.Fields{
		"backend":  s.Config.RPC.Backend,
		"block":    f.Block,
		"parallel": f.Parallel,
	}).Debug("Session ready")
	return s, nil
}

// ReportOptions returns the report.Options for this session.
func (s *Session) ReportOptions() report.Options {
	return report.Options{Logger: s.log(), Parallel: s.Flags.Parallel}
}

// log tags entries with the run ID so lines from one invocation can be
// grouped in a shared log file.
func (s *Session) log() logrus.FieldLogger {
	if s.RunID == "" {
		return s.Logger
	}
	return s.Logger.WithField("run", s.RunID)
}

// LogCallStats writes one debug line per contract method called so far.
func (s *Session) LogCallStats() {
	if s.Calls == nil {
		return
	}
	for _, m := range s.Calls.Summary() {
		s.log().WithFields(logrus.Fields{
			"method":   m.Method,
			"calls":    m.Calls,
			"failures": m.Failures,
			"p50":      m.P50,
			"p95":      m.P95,
			"max":      m.Max,
		}).Debug("Call latency")
	}
}

// Close logs the call statistics, then releases the backend and the log
// file, newest first.
func (s *Session) Close() {
	s.LogCallStats()
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.log().WithError(err).Warn("Close failed")
		}
	}
	s.closers = nil
}
