package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// NewLikesCommand creates the likes command group.
func NewLikesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "likes",
		Aliases: []string{"like"},
		Short:   "Manage likes",
		Long:    "List liked tweets and liking users, and like or unlike tweets as the configured account",
	}

	cmd.AddCommand(newLikedTweetsCommand())
	cmd.AddCommand(newListCommandWithArg("users TWEET_ID", "List users who liked a tweet",
		func(c twapi.Client, id string, maxResults int, token string) twapi.Requester {
			return c.Likes().LikingUsers(id).MaxResults(maxResults).PaginationToken(token)
		}))
	cmd.AddCommand(newTargetCommand("add TWEET_ID", "Like a tweet", "failed to like tweet",
		func(c twapi.Client, id string) twapi.Requester { return c.Likes().Like(id) }))
	cmd.AddCommand(newTargetCommand("remove TWEET_ID", "Unlike a tweet", "failed to unlike tweet",
		func(c twapi.Client, id string) twapi.Requester { return c.Likes().Unlike(id) }))

	return cmd
}

func newLikedTweetsCommand() *cobra.Command {
	var (
		maxResults      int
		paginationToken string
	)

	cmd := &cobra.Command{
		Use:   "tweets USER_ID",
		Short: "List tweets liked by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Likes().LikedTweets(args[0]).
				MaxResults(maxResults).
				PaginationToken(paginationToken).
				Perform(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to list liked tweets: %w", err)
			}

			return renderTweets(cmd.OutOrStdout(), resp)
		},
	}

	addPagingFlags(cmd, &maxResults, &paginationToken)

	return cmd
}

// newListCommandWithArg builds a paged user listing keyed by one id.
func newListCommandWithArg(use, short string, build func(twapi.Client, string, int, string) twapi.Requester) *cobra.Command {
	var (
		maxResults      int
		paginationToken string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := build(client, args[0], maxResults, paginationToken).Perform(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return renderUsers(cmd.OutOrStdout(), resp)
		},
	}

	addPagingFlags(cmd, &maxResults, &paginationToken)

	return cmd
}

// NewRetweetCommand creates the retweet command.
func NewRetweetCommand() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "retweet TWEET_ID",
		Short: "Retweet a tweet",
		Long:  "Retweet a tweet as the configured account, or undo a retweet with --undo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			retweets := client.Retweets().Retweet(args[0])
			if undo {
				retweets = client.Retweets().Undo(args[0])
			}

			resp, err := retweets.Perform(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to retweet: %w", err)
			}

			return renderResult(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "undo the retweet")

	return cmd
}

// NewRepliesCommand creates the replies command group.
func NewRepliesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replies",
		Short: "Hide or unhide replies",
		Long:  "Hide or unhide replies to tweets of the configured account",
	}

	cmd.AddCommand(newTargetCommand("hide TWEET_ID", "Hide a reply", "failed to hide reply",
		func(c twapi.Client, id string) twapi.Requester { return c.Replies().Hide(id) }))
	cmd.AddCommand(newTargetCommand("unhide TWEET_ID", "Unhide a reply", "failed to unhide reply",
		func(c twapi.Client, id string) twapi.Requester { return c.Replies().Unhide(id) }))

	return cmd
}
