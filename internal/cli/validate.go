package cli

import (
	"fmt"

	"github.com/chronicle-dev/chronicle/internal/config"
	"github.com/chronicle-dev/chronicle/internal/paths"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate chronicle.yaml against its schema",
	Long: `Check a chronicle config file against the bundled JSON schema and report
every violation. Without an argument the config is auto-detected the same way
'generate' finds it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		explicit := ""
		if len(args) == 1 {
			explicit = args[0]
		}

		self, err := paths.Resolve()
		if err != nil {
			return err
		}
		cfgPath, err := config.Locate(explicit, self)
		if err != nil {
			return err
		}

		result, err := config.ValidateFile(cfgPath)
		if err != nil {
			return err
		}

		if result.Valid {
			fmt.Printf("%s is valid.\n", cfgPath)
			return nil
		}

		fmt.Printf("%s has %d issue(s):\n", cfgPath, len(result.Issues))
		for _, issue := range result.Issues {
			loc := issue.Path
			if loc == "" {
				loc = "(root)"
			}
			fmt.Printf("  %s: %s\n", loc, issue.Message)
		}
		return fmt.Errorf("config validation failed")
	},
}
