package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/bincheck/internal/constants"
	"github.com/spf13/viper"
)

// Default suite settings
const (
	// DefaultTimeoutSeconds bounds every probe of the target binary
	DefaultTimeoutSeconds = 30

	// DefaultReportDir is where run reports are persisted
	DefaultReportDir = "qa-reports"

	// DefaultTrendWindowDays is the sliding window for trend analysis
	DefaultTrendWindowDays = 7
)

// Default benchmark settings, matching the check battery's sample counts
const (
	DefaultStartupRuns      = 10
	DefaultHelpRuns         = 5
	DefaultConfigGenRuns    = 3
	DefaultConcurrentRuns   = 5
	DefaultSampleIntervalMS = 100
	DefaultSampleCapSeconds = 10
)

// Config is the harness configuration
type Config struct {
	// Target describes the probed project and its toolchain commands
	Target TargetConfig `json:"target" mapstructure:"target" yaml:"target"`

	// Probe describes the expected CLI surface of the target binary
	Probe ProbeConfig `json:"probe" mapstructure:"probe" yaml:"probe"`

	// Suite holds execution-engine settings
	Suite SuiteConfig `json:"suite" mapstructure:"suite" yaml:"suite"`

	// Benchmark holds performance-benchmark settings
	Benchmark BenchmarkConfig `json:"benchmark" mapstructure:"benchmark" yaml:"benchmark"`

	// Security holds security-scan settings
	Security SecurityConfig `json:"security" mapstructure:"security" yaml:"security"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`
}

// TargetConfig identifies the binary under test and the toolchain commands
// used by the build/quality/security categories.
type TargetConfig struct {
	// BinaryPath is the executable to probe, relative to WorkingDir
	BinaryPath string `json:"binary_path" mapstructure:"binary_path" yaml:"binary_path"`

	// WorkingDir is the project root all commands run from
	WorkingDir string `json:"working_dir" mapstructure:"working_dir" yaml:"working_dir"`

	// BuildCommand rebuilds the binary for the reproducibility check
	BuildCommand []string `json:"build_command" mapstructure:"build_command" yaml:"build_command"`

	// LintCommand is the code-quality gate (e.g. cargo clippy, go vet)
	LintCommand []string `json:"lint_command" mapstructure:"lint_command" yaml:"lint_command"`

	// AuditCommand checks dependencies for known vulnerabilities and must
	// emit JSON on stdout
	AuditCommand []string `json:"audit_command" mapstructure:"audit_command" yaml:"audit_command"`

	// ManifestPath is the dependency manifest inspected for hygiene issues
	ManifestPath string `json:"manifest_path" mapstructure:"manifest_path" yaml:"manifest_path"`

	// SourceExtensions are the file extensions scanned by security checks
	SourceExtensions []string `json:"source_extensions" mapstructure:"source_extensions" yaml:"source_extensions"`
}

// ProbeConfig describes the documented CLI surface the checks assert on
type ProbeConfig struct {
	// HelpContains are substrings required in --help output
	HelpContains []string `json:"help_contains" mapstructure:"help_contains" yaml:"help_contains"`

	// VersionContains is the substring required in --version output
	// (matched case-insensitively)
	VersionContains string `json:"version_contains" mapstructure:"version_contains" yaml:"version_contains"`

	// FormatsArgs invokes the formats-listing subcommand
	FormatsArgs []string `json:"formats_args" mapstructure:"formats_args" yaml:"formats_args"`

	// FormatsExpect are tokens looked for in the formats output; at least
	// FormatsMinMatches of them must appear
	FormatsExpect     []string `json:"formats_expect" mapstructure:"formats_expect" yaml:"formats_expect"`
	FormatsMinMatches int      `json:"formats_min_matches" mapstructure:"formats_min_matches" yaml:"formats_min_matches"`

	// ConfigGenArgs invokes the config-generation subcommand; the scratch
	// output path is appended after ConfigOutputFlag
	ConfigGenArgs    []string `json:"config_gen_args" mapstructure:"config_gen_args" yaml:"config_gen_args"`
	ConfigOutputFlag string   `json:"config_output_flag" mapstructure:"config_output_flag" yaml:"config_output_flag"`

	// ConfigFileSuffix is the scratch file suffix (e.g. ".toml")
	ConfigFileSuffix string `json:"config_file_suffix" mapstructure:"config_file_suffix" yaml:"config_file_suffix"`

	// ConfigSections are section headers required in the generated file
	ConfigSections []string `json:"config_sections" mapstructure:"config_sections" yaml:"config_sections"`

	// InvalidCommand is an unrecognized subcommand the binary must reject
	InvalidCommand string `json:"invalid_command" mapstructure:"invalid_command" yaml:"invalid_command"`
}

// SuiteConfig holds execution-engine settings
type SuiteConfig struct {
	// TimeoutSeconds bounds each individual probe
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`

	// ReportDir is where run reports are written and read back
	ReportDir string `json:"report_dir" mapstructure:"report_dir" yaml:"report_dir"`

	// LogFile, when set, mirrors the run log to a file
	LogFile string `json:"log_file" mapstructure:"log_file" yaml:"log_file"`

	// TrendWindowDays is the sliding window for trend analysis
	TrendWindowDays int `json:"trend_window_days" mapstructure:"trend_window_days" yaml:"trend_window_days"`
}

// BenchmarkConfig controls the benchmark battery
type BenchmarkConfig struct {
	StartupRuns      int `json:"startup_runs" mapstructure:"startup_runs" yaml:"startup_runs"`
	HelpRuns         int `json:"help_runs" mapstructure:"help_runs" yaml:"help_runs"`
	ConfigGenRuns    int `json:"config_gen_runs" mapstructure:"config_gen_runs" yaml:"config_gen_runs"`
	ConcurrentRuns   int `json:"concurrent_runs" mapstructure:"concurrent_runs" yaml:"concurrent_runs"`
	SampleIntervalMS int `json:"sample_interval_ms" mapstructure:"sample_interval_ms" yaml:"sample_interval_ms"`
	SampleCapSeconds int `json:"sample_cap_seconds" mapstructure:"sample_cap_seconds" yaml:"sample_cap_seconds"`
}

// SecurityConfig controls the security scan
type SecurityConfig struct {
	// SecretPatterns are regexes flagged as potential secrets in source
	SecretPatterns []string `json:"secret_patterns" mapstructure:"secret_patterns" yaml:"secret_patterns"`

	// ForbiddenPatterns are regexes reported as warnings (e.g. unsafe blocks)
	ForbiddenPatterns []string `json:"forbidden_patterns" mapstructure:"forbidden_patterns" yaml:"forbidden_patterns"`

	// ManifestRiskPatterns maps regexes to the finding they report when the
	// dependency manifest matches
	ManifestRiskPatterns map[string]string `json:"manifest_risk_patterns" mapstructure:"manifest_risk_patterns" yaml:"manifest_risk_patterns"`
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	// Format specifies the report format: text, json, html, markdown
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// Verbose controls detailed output
	Verbose bool `json:"verbose" mapstructure:"verbose" yaml:"verbose"`
}

// DefaultSecretPatterns are the secret regexes scanned for by default
func DefaultSecretPatterns() []string {
	return []string{
		`password\s*=\s*['"][^'"]+['"]`,
		`api_key\s*=\s*['"][^'"]+['"]`,
		`secret\s*=\s*['"][^'"]+['"]`,
		`token\s*=\s*['"][^'"]+['"]`,
		`-----BEGIN.*PRIVATE KEY-----`,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{
			WorkingDir:       ".",
			BuildCommand:     []string{"cargo", "build", "--release"},
			LintCommand:      []string{"cargo", "clippy", "--", "-D", "warnings"},
			AuditCommand:     []string{"cargo", "audit", "--json"},
			ManifestPath:     "Cargo.toml",
			SourceExtensions: []string{".rs"},
		},
		Probe: ProbeConfig{
			HelpContains:      []string{"Usage", "Commands:"},
			FormatsArgs:       []string{"supported-formats"},
			FormatsMinMatches: 4,
			ConfigGenArgs:     []string{"generate-config"},
			ConfigOutputFlag:  "--output",
			ConfigFileSuffix:  ".toml",
			InvalidCommand:    "invalid-command",
		},
		Suite: SuiteConfig{
			TimeoutSeconds:  DefaultTimeoutSeconds,
			ReportDir:       DefaultReportDir,
			TrendWindowDays: DefaultTrendWindowDays,
		},
		Benchmark: BenchmarkConfig{
			StartupRuns:      DefaultStartupRuns,
			HelpRuns:         DefaultHelpRuns,
			ConfigGenRuns:    DefaultConfigGenRuns,
			ConcurrentRuns:   DefaultConcurrentRuns,
			SampleIntervalMS: DefaultSampleIntervalMS,
			SampleCapSeconds: DefaultSampleCapSeconds,
		},
		Security: SecurityConfig{
			SecretPatterns:    DefaultSecretPatterns(),
			ForbiddenPatterns: []string{`unsafe\s*\{`},
			ManifestRiskPatterns: map[string]string{
				`git\s*=`:          "Git dependencies found (potential security risk)",
				`path\s*=\s*"\.\.`: "External path dependencies found",
				`"\*"`:             "Wildcard version dependencies found",
			},
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if c.Target.BinaryPath == "" {
		return fmt.Errorf("target.binary_path must be set")
	}
	if c.Suite.TimeoutSeconds <= 0 {
		return fmt.Errorf("suite.timeout_seconds must be positive, got %d", c.Suite.TimeoutSeconds)
	}
	switch c.Output.Format {
	case "", "text", "json", "html", "markdown":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}
	return nil
}

// BinaryAbsPath resolves the target binary against the working directory
func (c *Config) BinaryAbsPath() string {
	if filepath.IsAbs(c.Target.BinaryPath) {
		return c.Target.BinaryPath
	}
	return filepath.Join(c.Target.WorkingDir, c.Target.BinaryPath)
}

// configFileNames are the discovered config file names, in preference order
var configFileNames = []string{
	"bincheck.yaml",
	"bincheck.yml",
	".bincheck.yaml",
	".bincheck.yml",
}

// findDefaultConfig walks from startDir up to the filesystem root looking
// for a config file.
func findDefaultConfig(startDir string) string {
	dir := startDir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return ""
		}
	}

	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadConfig loads configuration from the given path, discovering a config
// file upward from the current directory when path is empty. Without any
// config file the defaults are returned.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig("")
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// A fresh viper instance per load avoids shared state between runs
	v := viper.New()
	cfg := DefaultConfig()
	v.SetConfigFile(configPath)
	v.SetEnvPrefix(constants.EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// BinaryName is the base name of the configured target binary, used as the
// default --version substring when probe.version_contains is unset.
func (c *Config) BinaryName() string {
	return strings.TrimSuffix(filepath.Base(c.Target.BinaryPath), filepath.Ext(c.Target.BinaryPath))
}
