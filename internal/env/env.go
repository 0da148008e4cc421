// Package env loads KEY=VALUE pairs from a .env file so endpoint URLs with
// API keys can stay out of the YAML configuration.
package env

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultFile is read by the commands before loading configuration.
const DefaultFile = ".env"

// Load reads environment variables from path and sets them using os.Setenv.
//
// File format:
//   - Each line contains KEY=VALUE
//   - Empty lines and lines starting with # are ignored
//   - Values can be quoted with single or double quotes (quotes are stripped)
//
// A missing file is not an error. Variables set in the file override the
// process environment. Load returns the number of variables set.
func Load(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Split on first "=" to handle values that might contain "="
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		if key == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("env: cannot set variable")
			continue
		}
		n++
	}

	logrus.WithFields(logrus.Fields{"file": path, "vars": n}).Debug("env: loaded")
	return n
}
