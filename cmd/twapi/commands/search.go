package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

type searchOptions struct {
	keywords        []string
	keywordOperator string
	from            []string
	fromOperator    string
	to              []string
	toOperator      string
	conversation    string
	locales         []string
	onlyMedia       bool
	maxResults      int
	metrics         bool
	userDetails     bool
	mediaDetails    bool
	paginationToken string
	oauth1          bool
}

// NewSearchCommand creates the recent search command.
func NewSearchCommand() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search recent tweets",
		Long: `Search tweets from the last seven days.

At least one of --keyword, --from, --to or --conversation is required. Each
keyword matches both the quoted word and the hashtag.`,
		Example: `  twapi search --keyword golang --max-results 10
  twapi search --keyword go --keyword rust --keyword-operator AND --lang en`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.keywords, "keyword", "k", nil, "keyword to match (repeatable)")
	flags.StringVar(&opts.keywordOperator, "keyword-operator", string(twapi.OperatorOr), "operator between keywords (OR, AND)")
	flags.StringArrayVar(&opts.from, "from", nil, "author username (repeatable)")
	flags.StringVar(&opts.fromOperator, "from-operator", string(twapi.OperatorOr), "operator between authors (OR, AND)")
	flags.StringArrayVar(&opts.to, "to", nil, "reply target username (repeatable)")
	flags.StringVar(&opts.toOperator, "to-operator", string(twapi.OperatorOr), "operator between reply targets (OR, AND)")
	flags.StringVar(&opts.conversation, "conversation", "", "conversation id")
	flags.StringArrayVar(&opts.locales, "lang", nil, "language code (repeatable)")
	flags.BoolVar(&opts.onlyMedia, "has-media", false, "only tweets with media")
	flags.IntVar(&opts.maxResults, "max-results", 0, fmt.Sprintf("results per page (%d-%d)", constants.MinMaxResults, constants.MaxMaxResults))
	flags.BoolVar(&opts.metrics, "metrics", false, "include public metrics")
	flags.BoolVar(&opts.userDetails, "user-details", false, "expand authors")
	flags.BoolVar(&opts.mediaDetails, "media-details", false, "include media fields")
	flags.StringVar(&opts.paginationToken, "pagination-token", "", "token of the page to fetch")
	flags.BoolVar(&opts.oauth1, "user-context", false, "sign with the user's OAuth 1.0a tokens instead of the bearer token")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *searchOptions) error {
	if len(opts.keywords) == 0 && len(opts.from) == 0 && len(opts.to) == 0 && opts.conversation == "" {
		return constants.ErrNoSearchFilter
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	search := client.Search().
		Keywords(opts.keywords...).
		KeywordOperator(twapi.Operator(opts.keywordOperator)).
		FromUsers(opts.from...).
		FromOperator(twapi.Operator(opts.fromOperator)).
		ToUsers(opts.to...).
		ToOperator(twapi.Operator(opts.toOperator)).
		Conversation(opts.conversation).
		Locales(opts.locales...).
		MaxResults(opts.maxResults).
		PaginationToken(opts.paginationToken)

	if opts.onlyMedia {
		search = search.OnlyWithMedia()
	}

	if opts.metrics {
		search = search.ShowMetrics()
	}

	if opts.userDetails {
		search = search.ShowUserDetails()
	}

	if opts.mediaDetails {
		search = search.ShowMediaDetails()
	}

	if opts.oauth1 {
		search = search.WithAuthMode(twapi.AuthOAuth1)
	}

	resp, err := search.Perform(cmd.Context(), nil)
	if err != nil {
		return fmt.Errorf("failed to search tweets: %w", err)
	}

	return renderTweets(cmd.OutOrStdout(), resp)
}
