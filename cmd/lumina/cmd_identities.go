package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func identitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identities",
		Short: "Manage the identity graph",
	}

	cmd.AddCommand(
		identitiesListCmd(),
		identitiesGetCmd(),
		identitiesSearchCmd(),
		identitiesExportCmd(),
		identitiesImportCmd(),
	)

	return cmd
}

func identitiesListCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all identity profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), newLogger())
			if err != nil {
				return fmt.Errorf("identities list: %w", err)
			}
			defer func() { _ = a.Close() }()

			profiles := a.identities.List(cmd.Context())
			if outputJSON {
				out, marshalErr := json.MarshalIndent(profiles, "", "  ")
				if marshalErr != nil {
					return fmt.Errorf("identities list: marshaling JSON: %w", marshalErr)
				}
				fmt.Println(string(out))
				return nil
			}

			if len(profiles) == 0 {
				fmt.Println("No identities found.")
				return nil
			}
			for i := range profiles {
				p := &profiles[i]
				fmt.Printf("%-24s %-24s aliases: %s\n", p.ID, p.Name, strings.Join(p.Aliases, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output as JSON")
	return cmd
}

func identitiesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one identity profile with its relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, newLogger())
			if err != nil {
				return fmt.Errorf("identities get: %w", err)
			}
			defer func() { _ = a.Close() }()

			p, err := a.identities.Lookup(ctx, args[0])
			if err != nil {
				return fmt.Errorf("identities get: %w", err)
			}
			out, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return fmt.Errorf("identities get: marshaling JSON: %w", err)
			}
			fmt.Println(string(out))
			for _, rel := range p.Relationships {
				fmt.Printf("%s -> %s (%s)\n", p.Name, a.identities.DisplayName(ctx, rel.TargetID), rel.Type)
			}
			return nil
		},
	}
}

func identitiesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Resolve free text to an identity by alias",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), newLogger())
			if err != nil {
				return fmt.Errorf("identities search: %w", err)
			}
			defer func() { _ = a.Close() }()

			p, ok := a.identities.FindByText(cmd.Context(), strings.Join(args, " "))
			if !ok {
				fmt.Println("No matching identity.")
				return nil
			}
			fmt.Printf("%s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
}

func identitiesExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the identity graph as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), newLogger())
			if err != nil {
				return fmt.Errorf("identities export: %w", err)
			}
			defer func() { _ = a.Close() }()

			if outPath == "" {
				return a.identities.Export(cmd.Context(), os.Stdout)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("identities export: creating %s: %w", outPath, err)
			}
			if err := a.identities.Export(cmd.Context(), f); err != nil {
				_ = f.Close()
				return fmt.Errorf("identities export: %w", err)
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func identitiesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the identity graph with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), newLogger())
			if err != nil {
				return fmt.Errorf("identities import: %w", err)
			}
			defer func() { _ = a.Close() }()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("identities import: %w", err)
			}
			defer func() { _ = f.Close() }()

			if err := a.identities.Import(cmd.Context(), f); err != nil {
				return fmt.Errorf("identities import: %w", err)
			}
			fmt.Printf("Imported %d identities.\n", len(a.identities.List(cmd.Context())))
			return nil
		},
	}
}
