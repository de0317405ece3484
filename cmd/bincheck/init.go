package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/bincheck/internal/config"
	"github.com/ludo-technologies/bincheck/internal/constants"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a bincheck configuration file",
		Long: `Generate a documented bincheck configuration file with sensible defaults
for the target toolchain.

Examples:
  # Create bincheck.yaml in the current directory
  bincheck init

  # Custom output path
  bincheck init --config custom.yaml

  # Overwrite existing file
  bincheck init --force

  # Interactive setup wizard
  bincheck init --interactive
  bincheck init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().String("toolchain", string(config.ToolchainRust),
		"Target toolchain preset: rust, go, generic")
	cmd.Flags().String("strictness", string(config.StrictnessStandard),
		"Timeout strictness: relaxed, standard, strict")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	interactive, _ := cmd.Flags().GetBool("interactive")
	toolchainFlag, _ := cmd.Flags().GetString("toolchain")
	strictnessFlag, _ := cmd.Flags().GetString("strictness")

	toolchain := config.Toolchain(toolchainFlag)
	strictness := config.Strictness(strictnessFlag)

	if interactive {
		var err error
		toolchain, strictness, configPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	content, err := config.GetConfigTemplate(toolchain, strictness)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nEdit target.binary_path, then run 'bincheck run' to check your binary.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.Toolchain, config.Strictness, string, error) {
	fmt.Println()
	fmt.Println("bincheck Configuration Setup")
	fmt.Println("============================")
	fmt.Println()

	toolchains := []struct {
		Label string
		Value config.Toolchain
	}{
		{"Rust (cargo)", config.ToolchainRust},
		{"Go", config.ToolchainGo},
		{"Generic (make)", config.ToolchainGeneric},
	}

	selectTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	toolchainPrompt := promptui.Select{
		Label:     "What toolchain builds the target binary?",
		Items:     toolchains,
		Templates: selectTemplates,
	}
	toolchainIdx, _, err := toolchainPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("toolchain selection cancelled: %w", err)
	}

	fmt.Println()

	strictnessLevels := []struct {
		Label string
		Value config.Strictness
	}{
		{"Relaxed (generous timeouts)", config.StrictnessRelaxed},
		{"Standard (recommended)", config.StrictnessStandard},
		{"Strict (tight timeouts)", config.StrictnessStrict},
	}

	strictnessPrompt := promptui.Select{
		Label:     "How strict should the check timeouts be?",
		Items:     strictnessLevels,
		Templates: selectTemplates,
	}
	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}

	fmt.Println()

	pathPrompt := promptui.Prompt{
		Label:   "Config file path",
		Default: defaultConfigPath,
	}
	configPath, err := pathPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("path input cancelled: %w", err)
	}

	return toolchains[toolchainIdx].Value, strictnessLevels[strictnessIdx].Value, configPath, nil
}
