package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/twapi/internal/config"
	"github.com/fivetwenty-io/twapi/internal/constants"
)

// Log formats accepted by --log-format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// NewRootCommand creates the twapi command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "twapi",
		Short: "Twitter API v2 CLI",
		Long: `A command-line interface for the Twitter API v2.

Credentials are read from a config file (yaml, json or .env), from TWITTER_*
environment variables, or from flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureRuntime(cmd.ErrOrStderr())
		},
	}

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is ./.env or $HOME/.twapi/config.yml)")
	flags.StringP("output", "o", "", "output format (table, json, yaml); table when stdout is a terminal")
	flags.BoolP("verbose", "v", false, "log HTTP requests and responses")
	flags.String("log-format", LogFormatText, "log format (text, json)")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	flags.String("account-id", "", "numeric id of the authenticated account")
	flags.Bool("free-mode", false, "restrict field selections to the free API tier")
	flags.String("api-url", "", "override the REST API root")
	flags.String("upload-url", "", "override the media upload root")

	bindings := map[string]string{
		"config":       "config",
		"output":       "output",
		"verbose":      "verbose",
		"log_format":   "log-format",
		"metrics_addr": "metrics-addr",
		"account_id":   "account-id",
		"free_mode":    "free-mode",
		"api_url":      "api-url",
		"upload_url":   "upload-url",
	}
	for key, flag := range bindings {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewTweetCommand())
	rootCmd.AddCommand(NewTimelineCommand())
	rootCmd.AddCommand(NewUsersCommand())
	rootCmd.AddCommand(NewFollowsCommand())
	rootCmd.AddCommand(NewBlocksCommand())
	rootCmd.AddCommand(NewMutesCommand())
	rootCmd.AddCommand(NewLikesCommand())
	rootCmd.AddCommand(NewRetweetCommand())
	rootCmd.AddCommand(NewRepliesCommand())
	rootCmd.AddCommand(NewMediaCommand())

	return rootCmd
}

func initConfig() {
	config.NewLoader(viper.GetViper())
}

// configureRuntime validates the global flags and sets up logging.
func configureRuntime(stderr io.Writer) error {
	_, err := outputFormat()
	if err != nil {
		return err
	}

	logger, err := NewLogger(stderr, viper.GetString("log_format"), viper.GetBool("verbose"))
	if err != nil {
		return err
	}

	state.logger = logger

	return nil
}

// NewLogger builds the CLI logger. Verbose enables debug level.
func NewLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(format) {
	case "", LogFormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrInvalidLogFormat, format)
	}
}
