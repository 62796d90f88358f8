package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/uniscout/internal/config"
)

//go:embed templates/mission.yaml
var missionTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a mission file to start from",
		Long: `Init writes a commented mission.yaml into the current directory.

The generated file includes:
- A student profile with score weights
- Inline courses of the current degree
- Four Spanish target universities, one with per-target overrides

Examples:
  # Create mission.yaml in current directory
  uniscout init

  # Create the mission at a specific path
  uniscout init -o missions/madrid.yaml

  # Force overwrite existing file
  uniscout init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultMissionFile,
		"Output file path for the mission")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing mission file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("mission file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := missionTemplate.ReadFile("templates/mission.yaml")
	if err != nil {
		return fmt.Errorf("failed to read mission template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write mission file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created mission file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to describe:")
	fmt.Fprintln(out, "  - Your current courses")
	fmt.Fprintln(out, "  - The universities you want to compare")
	fmt.Fprintln(out, "  - How much match, prestige and cost should weigh")

	return nil
}
