package constants

import "errors"

// Configuration errors.
var (
	ErrConfigFileNotFound   = errors.New("config file not found")
	ErrUnsupportedConfigExt = errors.New("unsupported config file extension, use .yaml, .yml, .json or .env")
)

// Command errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, use table, json or yaml")
	ErrInvalidLogFormat    = errors.New("invalid log format, use text or json")
	ErrNoSearchFilter      = errors.New("at least one of --keyword, --from, --to or --conversation is required")
	ErrTextRequired        = errors.New("tweet text is required")
	ErrNotRegularFile      = errors.New("path is not a regular file")
	ErrNoUserSelector      = errors.New("provide ids with --id or usernames with --username")
)
