package cli

import (
	"fmt"
	"path/filepath"

	"github.com/chronicle-dev/chronicle/internal/archive"
	"github.com/chronicle-dev/chronicle/internal/config"
	"github.com/chronicle-dev/chronicle/internal/paths"
	"github.com/spf13/cobra"
)

var (
	generateConfig string
	generateCheck  bool
)

func init() {
	generateCmd.Flags().StringVar(&generateConfig, "config", "", "Path to chronicle.yaml (default: auto-detected)")
	generateCmd.Flags().BoolVar(&generateCheck, "check", false, "Exit non-zero if the archive is out of date, without writing it")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate the archive index",
	Long: `Scan the configured post directories and regenerate the archive index
from its template.

The config file is located from the binary's physical path, so this works
identically when invoked through a .git/hooks/pre-commit symlink. With
--check the archive is not written; the command exits non-zero when the
on-disk index is out of date, which aborts the commit in hook mode.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := newGenerator(generateConfig)
		if err != nil {
			return err
		}

		if generateCheck {
			stale, err := gen.Stale()
			if err != nil {
				return err
			}
			if stale {
				return fmt.Errorf("%s is out of date; run 'chronicle generate'", gen.Config.ArchiveFile)
			}
			fmt.Printf("%s is up to date.\n", gen.Config.ArchiveFile)
			return nil
		}

		if err := gen.Run(); err != nil {
			return err
		}
		fmt.Printf("Updated %s.\n", gen.ArchivePath())
		return nil
	},
}

// newGenerator locates and loads the config, enforces its version
// constraint, and returns a Generator rooted at the config's directory.
func newGenerator(explicitConfig string) (*archive.Generator, error) {
	self, err := paths.Resolve()
	if err != nil {
		return nil, err
	}

	cfgPath, err := config.Locate(explicitConfig, self)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckRequires(buildVersion); err != nil {
		return nil, err
	}

	// The blog root is wherever its config physically lives, regardless of
	// how this process was started.
	baseDir, err := paths.Physical(filepath.Dir(cfgPath))
	if err != nil {
		return nil, err
	}
	return archive.New(baseDir, cfg), nil
}
