package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// NewTimelineCommand creates the timeline command group.
func NewTimelineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Read timelines",
		Long:  "Read user timelines and the home timeline of the configured account",
	}

	cmd.AddCommand(newTimelineCommand("mentions USER_ID", "Recent mentions of a user",
		func(t twapi.TimelineClient, args []string) twapi.TimelineClient { return t.RecentMentions(args[0]) }))
	cmd.AddCommand(newTimelineCommand("tweets USER_ID", "Recent tweets of a user",
		func(t twapi.TimelineClient, args []string) twapi.TimelineClient { return t.RecentTweets(args[0]) }))
	cmd.AddCommand(newTimelineCommand("home", "Home timeline of the configured account",
		func(t twapi.TimelineClient, _ []string) twapi.TimelineClient { return t.ReverseChronological() }))

	return cmd
}

func newTimelineCommand(use, short string, selectOp func(twapi.TimelineClient, []string) twapi.TimelineClient) *cobra.Command {
	var (
		maxResults      int
		paginationToken string
	)

	validateArgs := cobra.ExactArgs(1)
	if use == "home" {
		validateArgs = cobra.NoArgs
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  validateArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			timeline := selectOp(client.Timeline(), args).
				MaxResults(maxResults).
				PaginationToken(paginationToken)

			resp, err := timeline.Perform(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to read timeline: %w", err)
			}

			return renderTweets(cmd.OutOrStdout(), resp)
		},
	}

	addPagingFlags(cmd, &maxResults, &paginationToken)

	return cmd
}
