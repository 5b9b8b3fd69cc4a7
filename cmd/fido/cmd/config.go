package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/fido/configs"
	"github.com/Aman-CERP/fido/internal/config"
	"github.com/Aman-CERP/fido/internal/errors"
	"github.com/Aman-CERP/fido/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user configuration",
		Long: `Manage the user configuration file.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/fido/config.yaml)
  3. The file given with --config
  4. Environment variables (FIDO_*)`,
		Example: `  # Create user config with defaults
  fido config init

  # Show effective configuration (merged from all sources)
  fido config show

  # Print user config file path
  fido config path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create user configuration file",
		Long: `Create the user configuration file with default settings.

The file is created at ~/.config/fido/config.yaml
(or $XDG_CONFIG_HOME/fido/config.yaml if XDG_CONFIG_HOME is set).

With --force an existing file is backed up, then rewritten with your
settings kept and any new options filled in with defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(config.GetUserConfigPath() + "\n"))
			return err
		},
	}
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())
	configPath := config.GetUserConfigPath()

	if config.UserConfigExists() {
		if !force {
			out.Warning("User configuration already exists")
			out.Statusf("📁", "Location: %s", configPath)
			out.Newline()
			out.Status("💡", "Use --force to rewrite it with new defaults (preserves your settings)")
			return nil
		}

		backupPath, err := config.BackupFile(configPath)
		if err != nil {
			return err
		}
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		if err := cfg.WriteYAML(configPath); err != nil {
			return err
		}
		out.Success("Configuration rewritten")
		out.Statusf("📁", "Location: %s", configPath)
		out.Statusf("💾", "Backup: %s", backupPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return errors.New(errors.ErrCodeSourcePermission, "failed to create config directory", err).
			WithDetail("path", filepath.Dir(configPath))
	}
	if err := os.WriteFile(configPath, []byte(configs.UserConfigTemplate), 0o644); err != nil {
		return errors.New(errors.ErrCodeSourcePermission, "failed to write config file", err).
			WithDetail("path", configPath)
	}

	out.Success("Created user configuration")
	out.Statusf("📁", "Location: %s", configPath)
	out.Newline()
	out.Status("📋", "Next steps:")
	out.Status("", "  1. List your contact files under contacts.sources")
	out.Status("", "  2. Or run 'fido import <file.vcf>' to fill the default store")
	out.Status("", "  3. Run 'fido config show' to verify")
	return nil
}

func runConfigShow(cmd *cobra.Command, jsonOutput bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	if jsonOutput {
		return out.JSON(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.InternalError("failed to marshal config", err)
	}
	out.Status("⚙️ ", "Effective configuration (defaults + user + --config + env)")
	out.Code(string(data))
	return nil
}
