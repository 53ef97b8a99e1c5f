package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Look up users",
		Long:    "Look up users by id or username, or show the authenticated user",
	}

	cmd.AddCommand(newUsersLookupCommand())
	cmd.AddCommand(newUsersMeCommand())

	return cmd
}

func newUsersLookupCommand() *cobra.Command {
	var (
		ids             []string
		usernames       []string
		paginationToken string
		oauth1          bool
	)

	cmd := &cobra.Command{
		Use:     "lookup",
		Short:   "Look up users by id or username",
		Example: `  twapi users lookup --username jack
  twapi users lookup --id 12 --id 13`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := selectUsers(ids, usernames)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			lookup := users(client.Users()).PaginationToken(paginationToken)
			if oauth1 {
				lookup = lookup.WithAuthMode(twapi.AuthOAuth1)
			}

			resp, err := lookup.Perform(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to look up users: %w", err)
			}

			return renderUsers(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringArrayVar(&ids, "id", nil, "user id (repeatable)")
	cmd.Flags().StringArrayVar(&usernames, "username", nil, "username (repeatable)")
	cmd.Flags().StringVar(&paginationToken, "pagination-token", "", "token of the page to fetch")
	cmd.Flags().BoolVar(&oauth1, "user-context", false, "sign with the user's OAuth 1.0a tokens instead of the bearer token")
	cmd.MarkFlagsMutuallyExclusive("id", "username")

	return cmd
}

// selectUsers picks the lookup operation for the given selectors.
func selectUsers(ids, usernames []string) (func(twapi.UsersClient) twapi.UsersClient, error) {
	switch {
	case len(ids) == 1:
		return func(u twapi.UsersClient) twapi.UsersClient { return u.ByID(ids[0]) }, nil
	case len(ids) > 1:
		return func(u twapi.UsersClient) twapi.UsersClient { return u.ByIDs(ids...) }, nil
	case len(usernames) == 1:
		return func(u twapi.UsersClient) twapi.UsersClient { return u.ByUsername(usernames[0]) }, nil
	case len(usernames) > 1:
		return func(u twapi.UsersClient) twapi.UsersClient { return u.ByUsernames(usernames...) }, nil
	default:
		return nil, constants.ErrNoUserSelector
	}
}

func newUsersMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Me().Perform(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("failed to get authenticated user: %w", err)
			}

			return renderUsers(cmd.OutOrStdout(), resp)
		},
	}
}
