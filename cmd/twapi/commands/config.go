package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/twapi/internal/config"
	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show, validate and create the credential settings used by the CLI",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigValidateCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the resolved settings with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := LoadSettings()
			if err != nil {
				return err
			}

			redacted := config.Redact(settings)

			return render(cmd.OutOrStdout(), redacted, func(table *tablewriter.Table) {
				table.Header("Property", "Value")

				for _, key := range config.Keys {
					value, ok := redacted[key]
					if !ok {
						value = constants.NotAvailable
					}

					_ = table.Append(key, value)
				}
			})
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that all required settings are present",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := LoadSettings()
			if err != nil {
				return err
			}

			creds, err := twapi.ValidateSettings(settings)
			if err != nil {
				return err
			}

			mode := "full"
			if creds.FreeMode {
				mode = "free"
			}

			result := map[string]string{
				"status":     "valid",
				"account_id": orNotAvailable(creds.AccountID),
				"tier":       mode,
			}

			return render(cmd.OutOrStdout(), result, func(table *tablewriter.Table) {
				table.Header("Property", "Value")

				keys := make([]string, 0, len(result))
				for key := range result {
					keys = append(keys, key)
				}

				sort.Strings(keys)

				for _, key := range keys {
					_ = table.Append(key, result[key])
				}
			})
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file",
		Long: `Create a YAML config file from the current settings, prompting for
any required value that is still missing. Secrets are read without echo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				defaultPath, err := defaultConfigPath()
				if err != nil {
					return err
				}

				path = defaultPath
			}

			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return fmt.Errorf("%w: %s (use --force to overwrite)", os.ErrExist, path)
				}
			}

			settings, err := LoadSettings()
			if err != nil && !errors.Is(err, constants.ErrConfigFileNotFound) {
				return err
			}

			if settings == nil {
				settings = map[string]string{}
			}

			err = promptSettings(cmd.InOrStdin(), cmd.ErrOrStderr(), settings)
			if err != nil {
				return err
			}

			_, err = twapi.ValidateSettings(settings)
			if err != nil {
				return err
			}

			err = writeConfigFile(path, settings)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

			return err
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "file to write (default is $HOME/.twapi/config.yml)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// promptSettings asks for each missing required setting.
func promptSettings(in io.Reader, out io.Writer, settings map[string]string) error {
	reader := bufio.NewReader(in)

	for _, key := range twapi.RequiredSettings {
		if strings.TrimSpace(settings[key]) != "" {
			continue
		}

		_, _ = fmt.Fprintf(out, "%s: ", key)

		value, err := readValue(in, reader, config.IsSecret(key))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}

		if value != "" {
			settings[key] = value
		}
	}

	return nil
}

// readValue reads one line, without echo for secrets on a terminal.
func readValue(in io.Reader, reader *bufio.Reader, secret bool) (string, error) {
	if file, ok := in.(*os.File); ok && secret && term.IsTerminal(int(file.Fd())) {
		bytes, err := term.ReadPassword(int(file.Fd()))
		if err != nil {
			return "", err
		}

		return strings.TrimSpace(string(bytes)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".twapi", "config.yml"), nil
}

// writeConfigFile stores settings as YAML with owner-only permissions.
func writeConfigFile(path string, settings map[string]string) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
