package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// NewFollowsCommand creates the follows command group.
func NewFollowsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "follows",
		Aliases: []string{"follow"},
		Short:   "Manage follows",
		Long:    "List and change the follow graph of the configured account",
	}

	cmd.AddCommand(newListCommand("followers", "List followers of the configured account",
		func(c twapi.Client, maxResults int, token string) twapi.Requester {
			return c.Follows().Followers().MaxResults(maxResults).PaginationToken(token)
		}))
	cmd.AddCommand(newListCommand("following", "List accounts the configured account follows",
		func(c twapi.Client, maxResults int, token string) twapi.Requester {
			return c.Follows().Following().MaxResults(maxResults).PaginationToken(token)
		}))
	cmd.AddCommand(newTargetCommand("add USER_ID", "Follow a user", "failed to follow user",
		func(c twapi.Client, id string) twapi.Requester { return c.Follows().Follow(id) }))
	cmd.AddCommand(newTargetCommand("remove USER_ID", "Unfollow a user", "failed to unfollow user",
		func(c twapi.Client, id string) twapi.Requester { return c.Follows().Unfollow(id) }))

	return cmd
}

// NewBlocksCommand creates the blocks command group.
func NewBlocksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blocks",
		Aliases: []string{"block"},
		Short:   "Manage blocks",
		Long:    "List and change the accounts blocked by the configured account",
	}

	cmd.AddCommand(newListCommand("list", "List blocked accounts",
		func(c twapi.Client, maxResults int, token string) twapi.Requester {
			return c.Blocks().Lookup().MaxResults(maxResults).PaginationToken(token)
		}))
	cmd.AddCommand(newTargetCommand("add USER_ID", "Block a user", "failed to block user",
		func(c twapi.Client, id string) twapi.Requester { return c.Blocks().Block(id) }))
	cmd.AddCommand(newTargetCommand("remove USER_ID", "Unblock a user", "failed to unblock user",
		func(c twapi.Client, id string) twapi.Requester { return c.Blocks().Unblock(id) }))

	return cmd
}

// NewMutesCommand creates the mutes command group.
func NewMutesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mutes",
		Aliases: []string{"mute"},
		Short:   "Manage mutes",
		Long:    "List and change the accounts muted by the configured account",
	}

	cmd.AddCommand(newListCommand("list", "List muted accounts",
		func(c twapi.Client, maxResults int, token string) twapi.Requester {
			return c.Mutes().Lookup().MaxResults(maxResults).PaginationToken(token)
		}))
	cmd.AddCommand(newTargetCommand("add USER_ID", "Mute a user", "failed to mute user",
		func(c twapi.Client, id string) twapi.Requester { return c.Mutes().Mute(id) }))
	cmd.AddCommand(newTargetCommand("remove USER_ID", "Unmute a user", "failed to unmute user",
		func(c twapi.Client, id string) twapi.Requester { return c.Mutes().Unmute(id) }))

	return cmd
}

// newListCommand builds a paged user listing.
func newListCommand(use, short string, build func(twapi.Client, int, string) twapi.Requester) *cobra.Command {
	var (
		maxResults      int
		paginationToken string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := build(client, maxResults, paginationToken).Perform(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return renderUsers(cmd.OutOrStdout(), resp)
		},
	}

	addPagingFlags(cmd, &maxResults, &paginationToken)

	return cmd
}

// newTargetCommand builds a write operation taking a single id argument.
func newTargetCommand(use, short, failure string, build func(twapi.Client, string) twapi.Requester) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := build(client, args[0]).Perform(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("%s: %w", failure, err)
			}

			return renderResult(cmd.OutOrStdout(), resp)
		},
	}
}
