package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Toolchain identifies the build ecosystem of the probed project
type Toolchain string

const (
	ToolchainRust    Toolchain = "rust"
	ToolchainGo      Toolchain = "go"
	ToolchainGeneric Toolchain = "generic"
)

// Strictness controls how tight the suite timeout and sampling are
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ToolchainPreset holds toolchain-specific command defaults
type ToolchainPreset struct {
	BuildCommand     []string
	LintCommand      []string
	AuditCommand     []string
	ManifestPath     string
	SourceExtensions []string
	BinaryPath       string
	ForbiddenPattern string
}

// GetToolchainPresets returns presets for supported toolchains
func GetToolchainPresets() map[Toolchain]ToolchainPreset {
	return map[Toolchain]ToolchainPreset{
		ToolchainRust: {
			BuildCommand:     []string{"cargo", "build", "--release"},
			LintCommand:      []string{"cargo", "clippy", "--", "-D", "warnings"},
			AuditCommand:     []string{"cargo", "audit", "--json"},
			ManifestPath:     "Cargo.toml",
			SourceExtensions: []string{".rs"},
			BinaryPath:       "target/release/app",
			ForbiddenPattern: `unsafe\s*\{`,
		},
		ToolchainGo: {
			BuildCommand:     []string{"go", "build", "-o", "bin/app", "./..."},
			LintCommand:      []string{"go", "vet", "./..."},
			AuditCommand:     []string{"govulncheck", "-json", "./..."},
			ManifestPath:     "go.mod",
			SourceExtensions: []string{".go"},
			BinaryPath:       "bin/app",
			ForbiddenPattern: `unsafe\.Pointer`,
		},
		ToolchainGeneric: {
			BuildCommand:     []string{"make", "build"},
			LintCommand:      []string{"make", "lint"},
			ManifestPath:     "",
			SourceExtensions: []string{},
			BinaryPath:       "bin/app",
		},
	}
}

// strictnessTimeouts maps strictness to the per-probe timeout in seconds
var strictnessTimeouts = map[Strictness]int{
	StrictnessRelaxed:  60,
	StrictnessStandard: DefaultTimeoutSeconds,
	StrictnessStrict:   10,
}

// PresetConfig builds a configuration from a toolchain preset and
// strictness level.
func PresetConfig(tc Toolchain, strictness Strictness) *Config {
	cfg := DefaultConfig()

	presets := GetToolchainPresets()
	preset, ok := presets[tc]
	if !ok {
		preset = presets[ToolchainGeneric]
	}

	cfg.Target.BinaryPath = preset.BinaryPath
	cfg.Target.BuildCommand = preset.BuildCommand
	cfg.Target.LintCommand = preset.LintCommand
	cfg.Target.AuditCommand = preset.AuditCommand
	cfg.Target.ManifestPath = preset.ManifestPath
	cfg.Target.SourceExtensions = preset.SourceExtensions
	if preset.ForbiddenPattern != "" {
		cfg.Security.ForbiddenPatterns = []string{preset.ForbiddenPattern}
	} else {
		cfg.Security.ForbiddenPatterns = nil
	}

	if timeout, ok := strictnessTimeouts[strictness]; ok {
		cfg.Suite.TimeoutSeconds = timeout
	}

	return cfg
}

const templateHeader = `# bincheck configuration
#
# target:   the binary under test and its toolchain commands
# probe:    the CLI surface the checks assert on (help text, subcommands)
# suite:    execution settings and report persistence
# security: patterns for the security scan
#
# Run 'bincheck run' to execute the full check battery.
`

// GetConfigTemplate renders a documented YAML config for the given preset
func GetConfigTemplate(tc Toolchain, strictness Strictness) (string, error) {
	cfg := PresetConfig(tc, strictness)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to render config template: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(templateHeader)
	sb.WriteString("\n")
	sb.Write(data)
	return sb.String(), nil
}
