package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chronicle-dev/chronicle/internal/branding"
	"github.com/chronicle-dev/chronicle/internal/config"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var initHook bool

func init() {
	initCmd.Flags().BoolVar(&initHook, "hook", false, "Also install the pre-commit hook")
	rootCmd.AddCommand(initCmd)
}

const defaultTemplate = `# Archive

## Recents
{{.Recents}}

{{.Body}}
_Updated: {{.UpdatedAt}}_
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a chronicle setup in the current directory",
	Long: `Create chronicle.yaml, the archive template, and the posts directory in the
current directory. Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		cfgPath := filepath.Join(cwd, branding.ConfigFile())
		if _, err := os.Stat(cfgPath); err == nil {
			return fmt.Errorf("%s already exists", cfgPath)
		}

		cfg := config.Config{
			ArchiveFile:  config.DefaultArchiveFile,
			TemplateFile: config.DefaultTemplateFile,
			Recents:      config.DefaultRecents,
			Sections: []config.Section{
				{Title: "Posts", Dir: "posts"},
			},
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling default config: %w", err)
		}
		if err := os.WriteFile(cfgPath, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", cfgPath, err)
		}
		fmt.Printf("Created %s\n", cfgPath)

		templatePath := filepath.Join(cwd, config.DefaultTemplateFile)
		if _, err := os.Stat(templatePath); os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(templatePath), 0755); err != nil {
				return fmt.Errorf("creating template directory: %w", err)
			}
			if err := os.WriteFile(templatePath, []byte(defaultTemplate), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", templatePath, err)
			}
			fmt.Printf("Created %s\n", templatePath)
		}

		postsDir := filepath.Join(cwd, "posts")
		if err := os.MkdirAll(postsDir, 0755); err != nil {
			return fmt.Errorf("creating posts directory: %w", err)
		}

		if initHook {
			return hookInstallCmd.RunE(cmd, nil)
		}

		fmt.Printf("Run '%s hook install' to regenerate the archive on every commit.\n", branding.CLIName())
		return nil
	},
}
