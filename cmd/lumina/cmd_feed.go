package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/lumina/internal/models"
)

func feedCmd() *cobra.Command {
	var (
		persons    []string
		sources    []string
		tags       []string
		query      string
		sortBy     string
		limit      int
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Refresh the feed once and print the items",
		Example: `  lumina feed --person "Taylor Swift" --sort top
  lumina feed --source r/unixporn --source 4chan/g --tag ricing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			f := models.InitialFilters()
			f.Persons = append(f.Persons, persons...)
			f.Sources = append(f.Sources, sources...)
			f.Tags = append(f.Tags, tags...)
			f.SearchQuery = query
			f.SortBy = models.SortOption(sortBy)
			if !f.SortBy.IsValid() {
				return fmt.Errorf("feed: invalid --sort %q (latest, top or random)", sortBy)
			}

			a, err := newApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("feed: %w", err)
			}
			defer func() { _ = a.Close() }()

			res := a.feed.Refresh(cmd.Context(), f)
			items := res.Items
			if limit > 0 && len(items) > limit {
				items = items[:limit]
			}

			if outputJSON {
				out, marshalErr := json.MarshalIndent(map[string]any{"origin": res.Origin, "items": items}, "", "  ")
				if marshalErr != nil {
					return fmt.Errorf("feed: marshaling JSON: %w", marshalErr)
				}
				fmt.Println(string(out))
				return nil
			}

			if len(items) == 0 {
				fmt.Println("No results found. Try different filters or run again.")
				return nil
			}
			fmt.Printf("%d items (%s)\n\n", len(res.Items), res.Origin)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SOURCE\tTYPE\tLIKES\tCAPTION")
			for i := range items {
				it := &items[i]
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", it.Source, it.Type, it.Likes, truncate(it.Caption, 70))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringArrayVar(&persons, "person", nil, "Person name or alias (repeatable)")
	cmd.Flags().StringArrayVar(&sources, "source", nil, "Source: r/<sub>, 4chan/<board>, <host>/<board> or feed URL (repeatable)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Free-text search query")
	cmd.Flags().StringVar(&sortBy, "sort", string(models.SortRandom), "Sort order: latest, top or random")
	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "Maximum items to print (0 = all)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")

	return cmd
}

func threadCmd() *cobra.Command {
	var (
		outputJSON bool
		knownBody  string
	)

	cmd := &cobra.Command{
		Use:   "thread <permalink>",
		Short: "Show the filtered discussion of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			a, err := newApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("thread: %w", err)
			}
			defer func() { _ = a.Close() }()

			tc := a.threads.ThreadContext(cmd.Context(), args[0], knownBody)

			if outputJSON {
				out, marshalErr := json.MarshalIndent(tc, "", "  ")
				if marshalErr != nil {
					return fmt.Errorf("thread: marshaling JSON: %w", marshalErr)
				}
				fmt.Println(string(out))
				return nil
			}

			if tc.BodyText != "" {
				fmt.Println(tc.BodyText)
				fmt.Println()
			}
			if len(tc.Comments) == 0 {
				fmt.Println("No comments.")
			}
			for _, c := range tc.Comments {
				fmt.Printf("[%d] %s: %s\n", c.Score, c.Author, truncate(c.Body, 120))
				for _, r := range c.Replies {
					fmt.Printf("    [%d] %s: %s\n", r.Score, r.Author, truncate(r.Body, 110))
				}
			}
			for _, rt := range tc.RelatedThreads {
				fmt.Printf("related (%s): %s %s\n", rt.Subreddit, rt.Title, rt.URL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&knownBody, "body", "", "Body text already known for the post")
	return cmd
}
