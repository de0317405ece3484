package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "bincheck"

	// ConfigFileName is the default config file name
	ConfigFileName = "bincheck.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "BINCHECK"
)

// Report file naming
const (
	// ReportFilePrefix prefixes persisted run report files
	ReportFilePrefix = "qa_report_"

	// ReportTimestampLayout is the timestamp layout in report file names
	ReportTimestampLayout = "20060102_150405"
)

// Well-known check names referenced by the aggregator and trend analyzer
const (
	CheckStartupPerformance = "Startup Performance"
	CheckMemoryUsage        = "Memory Usage"
	CheckCodeQuality        = "Code Quality (Lint)"
)
