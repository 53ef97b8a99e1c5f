package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// outputFormat returns the selected format. Without --output it is table on
// a terminal and JSON otherwise.
func outputFormat() (string, error) {
	format := strings.ToLower(viper.GetString("output"))

	switch format {
	case "":
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return constants.FormatTable, nil
		}

		return constants.FormatJSON, nil
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, format)
	}
}

// render writes value as JSON or YAML, or calls table for table output.
func render(w io.Writer, value any, table func(*tablewriter.Table)) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		err = encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		err = encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return nil
	default:
		t := tablewriter.NewWriter(w)
		table(t)

		err = t.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// renderTweets renders a page of tweets.
func renderTweets(w io.Writer, resp *twapi.Response) error {
	var page twapi.ListResponse[twapi.Tweet]

	err := resp.Decode(&page)
	if err != nil {
		return err
	}

	authors := make(map[string]string, len(page.Includes.Users))
	for _, user := range page.Includes.Users {
		authors[user.ID] = "@" + user.Username
	}

	err = render(w, resp.Payload, func(table *tablewriter.Table) {
		table.Header("ID", "Author", "Created", "Text")

		for _, tweet := range page.Data {
			author := authors[tweet.AuthorID]
			if author == "" {
				author = orNotAvailable(tweet.AuthorID)
			}

			_ = table.Append(tweet.ID, author, orNotAvailable(tweet.CreatedAt), truncate(tweet.Text, constants.TextDisplayLength))
		}
	})
	if err != nil {
		return err
	}

	return renderNextToken(w, page.Meta)
}

// renderUsers renders a page of users, or a single user.
func renderUsers(w io.Writer, resp *twapi.Response) error {
	users, meta, err := decodeUsers(resp)
	if err != nil {
		return err
	}

	err = render(w, resp.Payload, func(table *tablewriter.Table) {
		table.Header("ID", "Username", "Name", "Description")

		for _, user := range users {
			_ = table.Append(user.ID, "@"+user.Username, user.Name,
				truncate(user.Description, constants.DescriptionDisplayLength))
		}
	})
	if err != nil {
		return err
	}

	return renderNextToken(w, meta)
}

func decodeUsers(resp *twapi.Response) ([]twapi.User, twapi.Meta, error) {
	if _, single := resp.Data().(map[string]any); single {
		var one struct {
			Data twapi.User `json:"data"`
		}

		err := resp.Decode(&one)
		if err != nil {
			return nil, twapi.Meta{}, err
		}

		return []twapi.User{one.Data}, twapi.Meta{}, nil
	}

	var page twapi.ListResponse[twapi.User]

	err := resp.Decode(&page)
	if err != nil {
		return nil, twapi.Meta{}, err
	}

	return page.Data, page.Meta, nil
}

// renderResult renders the "data" object of a write operation as
// property/value rows.
func renderResult(w io.Writer, resp *twapi.Response) error {
	data, _ := resp.Data().(map[string]any)

	return render(w, resp.Payload, func(table *tablewriter.Table) {
		table.Header("Property", "Value")

		keys := make([]string, 0, len(data))
		for key := range data {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			_ = table.Append(key, fmt.Sprint(data[key]))
		}
	})
}

// renderNextToken prints the pagination hint below a table.
func renderNextToken(w io.Writer, meta twapi.Meta) error {
	format, err := outputFormat()
	if err != nil || format != constants.FormatTable || meta.NextToken == "" {
		return err
	}

	_, err = fmt.Fprintf(w, "\nMore results: --pagination-token %s\n", meta.NextToken)

	return err
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n-3]) + "..."
}

func orNotAvailable(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return s
}
