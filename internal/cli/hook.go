package cli

import (
	"fmt"
	"os"

	"github.com/chronicle-dev/chronicle/internal/hook"
	"github.com/chronicle-dev/chronicle/internal/paths"
	"github.com/spf13/cobra"
)

var (
	hookName   string
	hookForce  bool
	hookTarget string
)

func init() {
	hookCmd.PersistentFlags().StringVar(&hookName, "name", hook.DefaultName, "Hook to manage (e.g., pre-commit, pre-push)")
	hookInstallCmd.Flags().BoolVar(&hookForce, "force", false, "Replace an existing hook file")
	hookInstallCmd.Flags().StringVar(&hookTarget, "target", "", "Link target (default: this binary's physical path)")
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	hookCmd.AddCommand(hookStatusCmd)
	rootCmd.AddCommand(hookCmd)
}

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the git hook link for this repository",
	Long: `Install, remove, or inspect the symlink in .git/hooks that runs chronicle
before every commit.`,
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Link chronicle into .git/hooks",
	Long: `Create .git/hooks/<name> as a symlink. By default the link points at this
binary's physical location, resolved through any symlinks, so the hook keeps
working however the binary itself was invoked.

Example:
  chronicle hook install
  chronicle hook install --target tools/generate.sh --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		target := hookTarget
		if target == "" {
			self, err := paths.Resolve()
			if err != nil {
				return err
			}
			target = self.Physical
		}

		if err := hook.Install(cwd, target, hookName, hookForce); err != nil {
			return err
		}
		fmt.Printf("Installed %s hook -> %s\n", hookName, target)
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the hook link",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		if err := hook.Uninstall(cwd, hookName); err != nil {
			return err
		}
		fmt.Printf("Removed %s hook.\n", hookName)
		return nil
	},
}

var hookStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the hook link",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		info, err := hook.Status(cwd, hookName)
		if err != nil {
			return err
		}

		switch info.State {
		case hook.StateMissing:
			fmt.Printf("  [--] %s: not installed\n", hookName)
		case hook.StateLinked:
			fmt.Printf("  [OK] %s: %s -> %s\n", hookName, info.Path, info.Resolved)
		case hook.StateBroken:
			fmt.Printf("  [!!] %s: link target %s no longer exists\n", hookName, info.Target)
			return fmt.Errorf("hook %s is broken", hookName)
		case hook.StateForeign:
			fmt.Printf("  [??] %s: %s exists but is not a chronicle link\n", hookName, info.Path)
		}
		return nil
	},
}
