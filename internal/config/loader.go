package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/dbtoolbox/dbtoolbox/internal/guard"
	"github.com/dbtoolbox/dbtoolbox/internal/pathutil"
	"github.com/dbtoolbox/dbtoolbox/internal/resulttree"
)

// EnvPrefix prefixes environment overrides, e.g. DBTOOLBOX_OUTPUT_DIR.
const EnvPrefix = "DBTOOLBOX_"

// Config is the startup configuration. Nothing is written back; every run
// starts from defaults, environment and flags.
type Config struct {
	ReportPath  string `koanf:"report"`
	OutputDir   string `koanf:"output_dir"`
	Severity    string `koanf:"severity"`
	Columns     int    `koanf:"columns"`
	SummaryOnly bool   `koanf:"summary"`
	Verbose     bool   `koanf:"verbose"`
	Notify      bool   `koanf:"notify"`

	// NotifySeverity is Severity parsed.
	NotifySeverity guard.Severity `koanf:"-"`
}

// Defaults returns the default values keyed like the koanf tags.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"report":     DefaultReportPath(),
		"output_dir": EnergyPlusDir(),
		"severity":   guard.DefaultSeverity.String(),
		"columns":    resulttree.DefaultColumns,
		"summary":    true,
		"verbose":    false,
		"notify":     false,
	}
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > defaults
//
// Only flags the user actually set override lower layers. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// DBTOOLBOX_OUTPUT_DIR -> output_dir
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	var err error
	if c.ReportPath, err = pathutil.Normalize(c.ReportPath); err != nil {
		return fmt.Errorf("invalid report path: %w", err)
	}
	if c.OutputDir, err = pathutil.Normalize(c.OutputDir); err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}
	if c.NotifySeverity, err = guard.ParseSeverity(c.Severity); err != nil {
		return err
	}
	if c.Columns < 1 {
		return fmt.Errorf("columns must be at least 1, got %d", c.Columns)
	}
	return nil
}
