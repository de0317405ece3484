package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCmd_FlagsExist(t *testing.T) {
	cmd := runCmd()

	expectedFlags := []string{"categories", "format", "binary", "config", "no-save", "verbose"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestRunCmd_ShortFlags(t *testing.T) {
	cmd := runCmd()

	shortFlags := map[string]string{
		"f": "format",
		"b": "binary",
		"c": "config",
	}
	for short, long := range shortFlags {
		if cmd.Flags().ShorthandLookup(short) == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestRunCmd_DefaultFormat(t *testing.T) {
	cmd := runCmd()

	formatFlag := cmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("format flag not found")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("Expected default format 'text', got '%s'", formatFlag.DefValue)
	}
}

func TestBenchCmd_FlagsExist(t *testing.T) {
	cmd := benchCmd()

	for _, flagName := range []string{"format", "binary", "config"} {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestAggregateCmd_DefaultFormat(t *testing.T) {
	cmd := aggregateCmd()

	formatFlag := cmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("format flag not found")
	}
	if formatFlag.DefValue != "markdown" {
		t.Errorf("Expected default format 'markdown', got '%s'", formatFlag.DefValue)
	}
}

func TestDashboardCmd_FlagsExist(t *testing.T) {
	cmd := dashboardCmd()

	for _, flagName := range []string{"watch", "interval", "export", "days", "config"} {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCheckExitError(t *testing.T) {
	err := &CheckExitError{Code: 2, Message: "setup failed"}
	if err.Error() != "setup failed" {
		t.Errorf("Unexpected error message: %s", err.Error())
	}
}

func TestInitCmd_CreatesConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bincheck.yaml")

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--toolchain", "go", "--strictness", "strict"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "binary_path") {
		t.Error("Generated config should mention binary_path")
	}
	if !strings.Contains(content, "go.mod") {
		t.Error("Go preset should reference go.mod as the manifest")
	}
}

func TestInitCmd_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bincheck.yaml")
	if err := os.WriteFile(configPath, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when config already exists")
	}
}

func TestInitCmd_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bincheck.yaml")
	if err := os.WriteFile(configPath, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := initCmd()
	cmd.SetArgs([]string{"--config", configPath, "--force"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}

	data, _ := os.ReadFile(configPath)
	if string(data) == "existing" {
		t.Error("Config file was not overwritten")
	}
}
