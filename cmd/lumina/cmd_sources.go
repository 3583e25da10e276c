package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/lumina/internal/source"
)

func sourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Inspect source strings",
	}
	cmd.AddCommand(sourcesParseCmd())
	return cmd
}

func sourcesParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <source>...",
		Short: "Classify source strings as subreddit, imageboard or feed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				d, ok := source.Parse(arg)
				if !ok {
					fmt.Printf("%-40s unrecognized\n", arg)
					continue
				}
				out, err := json.Marshal(d)
				if err != nil {
					return fmt.Errorf("sources parse: %w", err)
				}
				fmt.Printf("%-40s %s\n", arg, out)
			}
			return nil
		},
	}
}
