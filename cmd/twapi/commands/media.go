package commands

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/twapi/internal/constants"
)

// NewMediaCommand creates the media command group.
func NewMediaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Upload media",
		Long:  "Upload images for use in tweets",
	}

	cmd.AddCommand(newMediaUploadCommand())

	return cmd
}

func newMediaUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "upload FILE",
		Short:   "Upload an image",
		Long:    "Upload an image and print the media id to pass to 'twapi tweet create --media-id'",
		Args:    cobra.ExactArgs(1),
		Example: `  twapi media upload ./cat.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readMediaFile(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			upload, err := client.Media().Upload(cmd.Context(), base64.StdEncoding.EncodeToString(data))
			if err != nil {
				return fmt.Errorf("failed to upload media: %w", err)
			}

			return render(cmd.OutOrStdout(), upload, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Media ID", upload.MediaIDString)
				_ = table.Append("Size", strconv.FormatInt(upload.Size, 10))

				if upload.ExpiresAfter > 0 {
					_ = table.Append("Expires After (s)", strconv.FormatInt(upload.ExpiresAfter, 10))
				}
			})
		},
	}
}

func readMediaFile(path string) ([]byte, error) {
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read media file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotRegularFile, path)
	}

	// #nosec G304 -- path is supplied by the user on purpose
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read media file: %w", err)
	}

	return data, nil
}
