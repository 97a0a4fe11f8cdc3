package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/sprout/internal/cli"
	"github.com/thenoetrevino/sprout/internal/cli/handler"
	"github.com/thenoetrevino/sprout/internal/unsplash"
)

// SearchCmd returns the search command
func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Unsplash for plant photos",
		Long: `Search Unsplash for photos. Requires SPROUT_UNSPLASH_ACCESS_KEY.

Examples:
  sprout search tomato plant
  sprout search basil --page 2 --json
`,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runSearch)),
	}

	cmd.Flags().Int("page", 1, "Result page (1-based)")
	cli.AddOutputFlags(cmd)

	return cmd
}

// searchResult is the output of search
type searchResult struct {
	Query string `json:"query"`
	Page  int    `json:"page"`
	*unsplash.SearchResult
}

func (r searchResult) GetIDs() []string {
	ids := make([]string, len(r.Results))
	for i, p := range r.Results {
		ids[i] = p.ID
	}
	return ids
}

func (r searchResult) String() string {
	if len(r.Results) == 0 {
		return fmt.Sprintf("No photos found for %q", r.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Page %d of %d (%d photos) for %q:\n\n", r.Page, r.TotalPages, r.Total, r.Query)
	for _, p := range r.Results {
		description := p.Description
		if description == "" {
			description = "(no description)"
		}
		fmt.Fprintf(&b, "  %s\n    %s\n    by %s %s\n", description, p.URLs.Regular, p.User.Name, p.User.AttributionURL())
	}
	return strings.TrimRight(b.String(), "\n")
}

func runSearch(ctx context.Context, c *cli.CLI, args *handler.Arguments) (any, error) {
	query := strings.TrimSpace(strings.Join(args.Args, " "))
	page := args.GetInt("page", 1)
	if page < 1 {
		page = 1
	}

	result, err := c.App.Unsplash.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return searchResult{Query: query, Page: page, SearchResult: result}, nil
}
