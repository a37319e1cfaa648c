package cli

import (
	"fmt"
	"os"

	"github.com/chronicle-dev/chronicle/internal/config"
	"github.com/chronicle-dev/chronicle/internal/hook"
	"github.com/chronicle-dev/chronicle/internal/paths"
	"github.com/chronicle-dev/chronicle/internal/platform"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the chronicle setup",
	Long: `Run diagnostic checks: where the binary physically lives versus how it was
invoked, whether the hook link is healthy, and whether the config parses and
validates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var failed bool

		self, err := paths.Resolve()
		if err != nil {
			return err
		}

		fmt.Println("Binary:")
		fmt.Printf("  invocation path: %s\n", self.Invocation)
		fmt.Printf("  physical path:   %s\n", self.Physical)
		if lex := paths.Lexical(self.Invocation); lex != self.Physical {
			fmt.Printf("  note: invoked through a symlink (lexical path %s differs)\n", lex)
		}

		fmt.Println("Symlinks:")
		if platform.IsSymlinkSupported() {
			fmt.Println("  [OK] platform supports symlinks")
		} else {
			failed = true
			fmt.Println("  [!!] platform cannot create symlinks; hook install will copy instead")
		}

		fmt.Println("Config:")
		cfgPath, err := config.Locate("", self)
		if err != nil {
			failed = true
			fmt.Printf("  [!!] %v\n", err)
		} else {
			fmt.Printf("  [OK] found %s\n", cfgPath)

			result, err := config.ValidateFile(cfgPath)
			switch {
			case err != nil:
				failed = true
				fmt.Printf("  [!!] validation error: %v\n", err)
			case !result.Valid:
				failed = true
				fmt.Printf("  [!!] %d schema issue(s); run 'chronicle validate'\n", len(result.Issues))
			default:
				fmt.Println("  [OK] schema valid")
			}

			if cfg, err := config.Load(cfgPath); err != nil {
				failed = true
				fmt.Printf("  [!!] %v\n", err)
			} else if err := cfg.CheckRequires(buildVersion); err != nil {
				failed = true
				fmt.Printf("  [!!] %v\n", err)
			}
		}

		fmt.Println("Hook:")
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		info, err := hook.Status(cwd, hook.DefaultName)
		if err != nil {
			fmt.Printf("  [--] %v\n", err)
		} else {
			switch info.State {
			case hook.StateMissing:
				fmt.Println("  [--] no pre-commit hook installed")
			case hook.StateLinked:
				fmt.Printf("  [OK] pre-commit -> %s\n", info.Resolved)
			case hook.StateBroken:
				failed = true
				fmt.Printf("  [!!] pre-commit link is dangling (target %s)\n", info.Target)
			case hook.StateForeign:
				fmt.Println("  [??] pre-commit exists but is not managed by chronicle")
			}
		}

		if failed {
			return fmt.Errorf("doctor found problems")
		}
		fmt.Println("All checks passed.")
		return nil
	},
}
