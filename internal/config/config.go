// Package config holds the address tables and endpoint settings of both
// reports. A compiled-in default is used unless a YAML file is given; the
// loaded Config is never mutated after validation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/dmagro/infrared-report/internal/rpc"
)

// Config represents the root configuration structure loaded from YAML.
type Config struct {
	RPC       RPC       `yaml:"rpc"`
	Capture   Capture   `yaml:"capture"`
	Migration Migration `yaml:"migration"`
}

// RPC describes how contract calls reach the chain.
type RPC struct {
	URL        string        `yaml:"url"`         // Endpoint URL (supports ${VAR} env expansion)
	Backend    string        `yaml:"backend"`     // "rpc", "geth" or "cast"
	Timeout    time.Duration `yaml:"timeout"`     // Per-request timeout (rpc backend)
	MaxRetries int           `yaml:"max_retries"` // Transport retries (rpc backend), 0 = single attempt
	CastPath   string        `yaml:"cast_path"`   // cast binary (cast backend)
}

// Capture is the address table of the Infrared capture report.
type Capture struct {
	BGT           string   `yaml:"bgt"`            // BGT token
	Infrared      string   `yaml:"infrared"`       // Infrared main contract (vault registry)
	IBGT          string   `yaml:"ibgt"`           // iBGT reward token
	StakingTokens []string `yaml:"staking_tokens"` // One row per token, in this order
}

// VaultPair is one row of the migration report.
type VaultPair struct {
	Name string `yaml:"name"`
	Old  string `yaml:"old"`
	New  string `yaml:"new"`
}

// Migration is the address table of the vault migration report.
type Migration struct {
	Vaults []VaultPair `yaml:"vaults"`
}

// Entry is one labelled address, used for listings.
type Entry struct {
	Label   string
	Address string
}

// Default returns the compiled-in configuration for Berachain mainnet.
func Default() *Config {
	return &Config{
		RPC: RPC{
			URL:      "https://rpc.berachain.com/",
			Backend:  "rpc",
			Timeout:  15 * time.Second,
			CastPath: "cast",
		},
		Capture: Capture{
			BGT:      "0x656b95E550C07a9ffe548bd4085c72418Ceb1dba",
			Infrared: "0xb71b3DaEA39012Fb0f2B14D2a9C86da9292fC126",
			IBGT:     "0xac03CABA51e17c86c921E1f6CBFBdC91F8BB2E6b",
			StakingTokens: []string{
				"0xF961a8f6d8c69E7321e78d254ecAfBcc3A637621",
				"0xdE04c469Ad658163e2a5E860a03A86B52f6FA8C8",
				"0x38fdD999Fe8783037dB1bBFE465759e312f2d809",
				"0x2c4a603A2aA5596287A06886862dc29d56DbC354",
				"0xDd70A5eF7d8CfE5C5134b5f9874b09Fb5Ce812b4",
			},
		},
		Migration: Migration{
			Vaults: []VaultPair{
				{Name: "byUSD-HONEY", Old: "0xd8c53e0E7CF3eCFE642a03A30EC30681eF4159a9", New: "0xbbB228B0D7D83F86e23a5eF3B1007D0100581613"},
				{Name: "USDC.e-HONEY", Old: "0x812e5ff20326743151e2efa02d89d488efd826c9", New: "0x1419515d3703d8F2cc72Fa6A341685E4f8e7e8e1"},
				{Name: "WBERA-HONEY", Old: "0xa95ff8097b0e405d1f4139f460fa4c89863784c0", New: "0xe2d8941dfb85435419D90397b09D18024ebeef2C"},
				{Name: "WBERA-WBTC", Old: "0x5614314Eef828c747602a629B1d974a3f28fF6E2", New: "0x78beda3a06443f51718d746aDe95b5fAc094633E"},
				{Name: "WBERA-WETH", Old: "0x79fb77363bb12464ca735b0186b4bd7131089a96", New: "0x0dF14916796854d899576CBde69a35bAFb923c22"},
			},
		},
	}
}

// Validate checks the configuration. It logs a warning for suspicious
// values but does not fail on warnings.
func (c *Config) Validate() error {
	if c.RPC.URL == "" {
		return fmt.Errorf("rpc.url is required")
	}
	u, err := url.Parse(c.RPC.URL)
	if err != nil {
		return fmt.Errorf("rpc.url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("rpc.url: invalid url (missing scheme or host)")
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("rpc.url: invalid scheme %q (expected http, https, ws or wss)", u.Scheme)
	}

	switch c.RPC.Backend {
	case "rpc", "geth", "cast":
	default:
		return fmt.Errorf("rpc.backend: unknown backend %q (expected rpc, geth or cast)", c.RPC.Backend)
	}
	if c.RPC.Backend == "rpc" && u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("rpc.url: backend rpc requires an http or https url")
	}
	if c.RPC.Timeout <= 0 {
		return fmt.Errorf("rpc.timeout is required")
	}
	if c.RPC.MaxRetries < 0 {
		return fmt.Errorf("rpc.max_retries must be >= 0")
	}
	if c.RPC.Timeout < 500*time.Millisecond {
		logrus.Warnf("rpc timeout is very low (%s); requests may fail under normal network jitter", c.RPC.Timeout)
	}

	for _, e := range c.Capture.Entries() {
		if err := rpc.ValidateAddress(e.Address); err != nil {
			return fmt.Errorf("capture %s: %w", e.Label, err)
		}
	}
	for i, v := range c.Migration.Vaults {
		if v.Name == "" {
			return fmt.Errorf("migration.vaults[%d]: name is required", i)
		}
		if err := rpc.ValidateAddress(v.Old); err != nil {
			return fmt.Errorf("migration %s old: %w", v.Name, err)
		}
		if err := rpc.ValidateAddress(v.New); err != nil {
			return fmt.Errorf("migration %s new: %w", v.Name, err)
		}
	}
	return nil
}

// Entries lists the capture addresses in table order.
func (c Capture) Entries() []Entry {
	entries := []Entry{
		{Label: "BGT", Address: c.BGT},
		{Label: "Infrared", Address: c.Infrared},
		{Label: "iBGT", Address: c.IBGT},
	}
	for i, token := range c.StakingTokens {
		entries = append(entries, Entry{Label: fmt.Sprintf("staking token %d", i+1), Address: token})
	}
	return entries
}

// Entries lists the migration addresses in table order.
func (m Migration) Entries() []Entry {
	entries := make([]Entry, 0, 2*len(m.Vaults))
	for _, v := range m.Vaults {
		entries = append(entries,
			Entry{Label: v.Name + " (old)", Address: v.Old},
			Entry{Label: v.Name + " (new)", Address: v.New},
		)
	}
	return entries
}

// Load reads and parses a YAML configuration file on top of Default,
// expanding environment variables and validating the result.
//
// Fields absent from the file keep their default value; a list present in
// the file replaces the default list entirely.
//
// Environment variable expansion:
//
//	URLs can use ${VAR} syntax which will be expanded using os.ExpandEnv().
//	Example: url: ${BERACHAIN_RPC_URL}
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
