package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapui/internal/cli/output"
	intconfig "github.com/leapstack-labs/leapui/internal/config"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new leapui project",
		Long: `Initialize a new leapui project with a configuration file and a design document.

This creates:
  - leapui.yaml configuration file
  - design.yaml design document
  - .gitignore excluding build state and generated output

Use --example to start from a document with a card component embedded
in a landing page.`,
		Example: `  # Initialize in current directory
  leapui init

  # Initialize with an example document
  leapui init --example

  # Initialize in a new directory
  leapui init my-site --example

  # Force overwrite existing files
  leapui init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

			template := "minimal"
			if example {
				template = "example"
			}
			return runInit(r, dir, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&example, "example", false, "Create an example design document")

	return cmd
}

func runInit(r *output.Renderer, dir, template string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
	}

	written, err := copyTemplate(template, dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	files, _ := listTemplateFiles(template)
	created := make(map[string]bool, len(written))
	for _, f := range written {
		created[f] = true
	}
	for _, f := range files {
		if created[f] {
			r.StatusLine(f, "success", "")
		} else {
			r.StatusLine(f, "skipped", "exists")
		}
	}

	project, err := intconfig.LoadFromDir(dir)
	if err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}

	r.Println("")
	r.Success("leapui project initialized!")
	if project != nil {
		r.Muted(fmt.Sprintf("Document: %s", project.Document))
		r.Muted(fmt.Sprintf("Output:   %s", project.OutDir))
	}
	r.Println("")
	r.Println("Next steps:")
	r.Println("  leapui check      Validate the design document")
	r.Println("  leapui build      Generate components into generated/")
	r.Println("  leapui list       View components and their props")
	r.Println("  leapui serve      Start the preview server")

	return nil
}
