package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/advlock/internal/config"
	"github.com/mrz1836/advlock/internal/errors"
	"github.com/mrz1836/advlock/internal/logging"
)

// AddConfigCommand adds the config command group.
func AddConfigCommand(root *cobra.Command, st *cliState) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize advlock configuration",
		Long: `Configuration is layered (highest precedence first):
  1. command-line flags
  2. ADVLOCK_* environment variables (e.g. ADVLOCK_LOCK_DISCIPLINE=flock)
  3. project config: ./.advlock.yaml
  4. global config: ~/.advlock/config.yaml ($ADVLOCK_HOME overrides ~/.advlock)
  5. built-in defaults`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newConfigShowCmd(st), newConfigInitCmd(st))
	root.AddCommand(cmd)
}

func newConfigShowCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, config files and environment
variables. Text output is YAML that can be saved as a config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, st)
		},
	}
}

func runConfigShow(cmd *cobra.Command, st *cliState) error {
	cfg := st.cfg
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if st.flags.Output == OutputJSON {
		return st.out.JSON(cfg)
	}

	data, err := config.ToYAML(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func newConfigInitCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default global configuration file",
		Long: `Write the built-in defaults to ~/.advlock/config.yaml (or $ADVLOCK_HOME/config.yaml).
An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := config.GlobalConfigPath()
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			home, _ := os.UserHomeDir()
			st.out.Success("wrote " + logging.ShortenHome(path, home))
			return nil
		},
	}
}
