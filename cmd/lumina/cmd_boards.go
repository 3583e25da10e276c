package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/lumina/internal/models"
)

func boardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Manage saved boards",
	}

	cmd.AddCommand(
		boardsListCmd(),
		boardsSaveCmd(),
		boardsDeleteCmd(),
	)

	return cmd
}

func boardsListCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved boards, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), newLogger())
			if err != nil {
				return fmt.Errorf("boards list: %w", err)
			}
			defer func() { _ = a.Close() }()

			boards := a.curation.Boards(cmd.Context())
			if outputJSON {
				out, marshalErr := json.MarshalIndent(boards, "", "  ")
				if marshalErr != nil {
					return fmt.Errorf("boards list: marshaling JSON: %w", marshalErr)
				}
				fmt.Println(string(out))
				return nil
			}
			if len(boards) == 0 {
				fmt.Println("No saved boards.")
				return nil
			}
			for _, b := range boards {
				created := time.UnixMilli(b.CreatedAt).Format("2006-01-02")
				fmt.Printf("%-38s %-30s %s  sources: %s\n", b.ID, b.Name, created, strings.Join(b.Filters.Sources, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	return cmd
}

func boardsSaveCmd() *cobra.Command {
	var (
		name    string
		persons []string
		sources []string
		tags    []string
		query   string
		sortBy  string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a filter combination as a board",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := models.InitialFilters()
			f.Persons = append(f.Persons, persons...)
			f.Sources = append(f.Sources, sources...)
			f.Tags = append(f.Tags, tags...)
			f.SearchQuery = query
			f.SortBy = models.SortOption(sortBy)
			if !f.SortBy.IsValid() {
				return fmt.Errorf("boards save: invalid --sort %q", sortBy)
			}

			a, err := newApp(cmd.Context(), newLogger())
			if err != nil {
				return fmt.Errorf("boards save: %w", err)
			}
			defer func() { _ = a.Close() }()

			b, err := a.curation.SaveBoard(cmd.Context(), name, f)
			if err != nil {
				return fmt.Errorf("boards save: %w", err)
			}
			fmt.Printf("Saved board %q (%s)\n", b.Name, b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Board name (suggested from the filters when empty)")
	cmd.Flags().StringArrayVar(&persons, "person", nil, "Person (repeatable)")
	cmd.Flags().StringArrayVar(&sources, "source", nil, "Source (repeatable)")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query")
	cmd.Flags().StringVar(&sortBy, "sort", string(models.SortRandom), "Sort order: latest, top or random")
	return cmd
}

func boardsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), newLogger())
			if err != nil {
				return fmt.Errorf("boards delete: %w", err)
			}
			defer func() { _ = a.Close() }()

			if err := a.curation.DeleteBoard(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("boards delete: %w", err)
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}
