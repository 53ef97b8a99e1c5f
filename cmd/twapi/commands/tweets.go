package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twapi/internal/constants"
)

// NewTweetCommand creates the tweet command group.
func NewTweetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tweet",
		Aliases: []string{"tweets"},
		Short:   "Manage tweets",
		Long:    "Look up, create and delete tweets",
	}

	cmd.AddCommand(newTweetGetCommand())
	cmd.AddCommand(newTweetCreateCommand())
	cmd.AddCommand(newTweetDeleteCommand())
	cmd.AddCommand(newTweetQuotesCommand())

	return cmd
}

func newTweetGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TWEET_ID...",
		Short: "Get tweets by id",
		Long:  "Look up one or more tweets by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Tweets().Fetch(args...).Perform(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to get tweets: %w", err)
			}

			return renderTweets(cmd.OutOrStdout(), resp)
		},
	}
}

func newTweetCreateCommand() *cobra.Command {
	var (
		mediaIDs []string
		replyTo  string
	)

	cmd := &cobra.Command{
		Use:   "create [TEXT]",
		Short: "Post a tweet",
		Long:  "Post a tweet as the authenticated user, optionally with uploaded media",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) > 0 {
				text = strings.TrimSpace(args[0])
			}
			if text == "" && len(mediaIDs) == 0 {
				return constants.ErrTextRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			body := map[string]any{}
			if text != "" {
				body["text"] = text
			}

			if len(mediaIDs) > 0 {
				body["media"] = map[string]any{"media_ids": mediaIDs}
			}

			if replyTo != "" {
				body["reply"] = map[string]any{"in_reply_to_tweet_id": replyTo}
			}

			resp, err := client.Tweets().Create(text).Perform(cmd.Context(), body)
			if err != nil {
				return fmt.Errorf("failed to create tweet: %w", err)
			}

			return renderResult(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringArrayVar(&mediaIDs, "media-id", nil, "media id from 'twapi media upload' (repeatable)")
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "id of the tweet to reply to")

	return cmd
}

func newTweetDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete TWEET_ID",
		Short: "Delete a tweet",
		Long:  "Delete a tweet owned by the authenticated user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Tweets().Delete(args[0]).Perform(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to delete tweet: %w", err)
			}

			return renderResult(cmd.OutOrStdout(), resp)
		},
	}
}

func newTweetQuotesCommand() *cobra.Command {
	var (
		maxResults      int
		paginationToken string
	)

	cmd := &cobra.Command{
		Use:   "quotes TWEET_ID",
		Short: "List quote tweets",
		Long:  "List the tweets quoting a tweet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Quotes().QuoteTweets(args[0]).
				MaxResults(maxResults).
				PaginationToken(paginationToken).
				Perform(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to list quote tweets: %w", err)
			}

			return renderTweets(cmd.OutOrStdout(), resp)
		},
	}

	addPagingFlags(cmd, &maxResults, &paginationToken)

	return cmd
}

// addPagingFlags registers --max-results and --pagination-token.
func addPagingFlags(cmd *cobra.Command, maxResults *int, paginationToken *string) {
	cmd.Flags().IntVar(maxResults, "max-results", 0, "results per page")
	cmd.Flags().StringVar(paginationToken, "pagination-token", "", "token of the page to fetch")
}
