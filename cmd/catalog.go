package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/startpage/internal/catalog"
	"github.com/xvierd/startpage/internal/domain"
	"github.com/xvierd/startpage/internal/services"
)

var (
	catalogCategory    string
	catalogDescription string
	catalogShortcut    bool
	catalogFormat      string
	catalogYes         bool
)

// catalogCmd groups the link catalog commands.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the links shown on the start page",
	Long: `Manage the link catalog. Shortcuts are always on the grid; other links
appear when the search text matches them and inside the panel named by their
category.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List links",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := services.ListLinksRequest{}
		if catalogCategory != "" {
			req.Category = &catalogCategory
		}
		links, err := app.links.ListLinks(context.Background(), req)
		if err != nil {
			return fmt.Errorf("failed to list links: %w", err)
		}
		return printLinks(cmd.OutOrStdout(), links, "No links found.")
	},
}

var catalogAddCmd = &cobra.Command{
	Use:   "add [name] [url]",
	Short: "Add a link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := app.links.AddLink(context.Background(), services.AddLinkRequest{
			Name:        args[0],
			URL:         args[1],
			Category:    catalogCategory,
			Description: catalogDescription,
			Shortcut:    catalogShortcut,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateLink) {
				return fmt.Errorf("a link to %s already exists", args[1])
			}
			return fmt.Errorf("failed to add link: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, linkJSON(link))
		}
		fmt.Fprintf(out, "✅ Link added: %s (ID: %s)\n", link.Name, link.ID)
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import links from a JSON, TOML or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		links, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		saved, err := app.links.ImportLinks(context.Background(), links)
		if err != nil {
			return fmt.Errorf("failed to import links: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]interface{}{
				"imported": saved,
				"skipped":  len(links) - saved,
			})
		}
		fmt.Fprintf(out, "📥 Imported %d of %d links from %s\n", saved, len(links), args[0])
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every link as a catalog file to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := catalog.Format(strings.ToLower(catalogFormat))
		switch format {
		case catalog.FormatJSON, catalog.FormatTOML, catalog.FormatYAML:
		default:
			return fmt.Errorf("%w: %s", catalog.ErrUnknownFormat, catalogFormat)
		}

		stored, err := app.links.ListLinks(context.Background(), services.ListLinksRequest{})
		if err != nil {
			return fmt.Errorf("failed to list links: %w", err)
		}
		links := make([]domain.Link, 0, len(stored))
		for _, l := range stored {
			links = append(links, *l)
		}
		data, err := catalog.Encode(links, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fuzzy search links by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		links, err := app.links.SearchLinks(context.Background(), query)
		if err != nil {
			return fmt.Errorf("failed to search links: %w", err)
		}
		return printLinks(cmd.OutOrStdout(), links, fmt.Sprintf("No links match %q.", query))
	},
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove [link-id]",
	Short: "Remove a link",
	Long:  `Remove a link by its ID. Use with caution - this cannot be undone.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()
		id := args[0]

		link, err := app.links.GetLink(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrLinkNotFound) {
				return fmt.Errorf("link not found: %s", id)
			}
			return fmt.Errorf("failed to get link: %w", err)
		}

		if !jsonOutput && !catalogYes {
			fmt.Fprintf(out, "Are you sure you want to remove '%s' (%s)? [y/N]: ", link.Name, shortID(link.ID))
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.TrimSpace(answer)
			if answer != "y" && answer != "Y" {
				fmt.Fprintln(out, "Removal cancelled.")
				return nil
			}
		}

		if err := app.links.RemoveLink(ctx, id); err != nil {
			return fmt.Errorf("failed to remove link: %w", err)
		}

		if jsonOutput {
			return printJSON(out, map[string]interface{}{"removed": true, "link_id": id})
		}
		fmt.Fprintf(out, "✅ Link '%s' removed.\n", link.Name)
		return nil
	},
}

func init() {
	catalogListCmd.Flags().StringVarP(&catalogCategory, "category", "c", "", "Only list links in this category")

	catalogAddCmd.Flags().StringVarP(&catalogCategory, "category", "c", "", "Category; links in a panel's category show up in that panel")
	catalogAddCmd.Flags().StringVarP(&catalogDescription, "description", "d", "", "Short description shown on the grid")
	catalogAddCmd.Flags().BoolVarP(&catalogShortcut, "shortcut", "s", false, "Always show the link on the grid")

	catalogExportCmd.Flags().StringVarP(&catalogFormat, "format", "f", "json", "Output format: json, toml or yaml")

	catalogRemoveCmd.Flags().BoolVarP(&catalogYes, "yes", "y", false, "Do not ask for confirmation")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogRemoveCmd)
}

func printLinks(out io.Writer, links []*domain.Link, empty string) error {
	if jsonOutput {
		list := make([]map[string]interface{}, 0, len(links))
		for _, l := range links {
			list = append(list, linkJSON(l))
		}
		return printJSON(out, map[string]interface{}{
			"links": list,
			"count": len(list),
		})
	}

	if len(links) == 0 {
		fmt.Fprintln(out, empty)
		return nil
	}

	fmt.Fprintf(out, "🔗 Links (%d):\n\n", len(links))
	for _, l := range links {
		fmt.Fprintf(out, "%s %s  %s (ID: %s)\n", kindIcon(l.Kind), l.Name, l.URL, shortID(l.ID))
		if l.Category != "" || l.Description != "" {
			fmt.Fprintf(out, "   %s\n", strings.TrimSpace(l.Category+"  "+l.Description))
		}
	}
	return nil
}

func linkJSON(l *domain.Link) map[string]interface{} {
	return map[string]interface{}{
		"id":          l.ID,
		"name":        l.Name,
		"url":         l.URL,
		"category":    l.Category,
		"description": l.Description,
		"kind":        string(l.Kind),
	}
}

func kindIcon(kind domain.LinkKind) string {
	if kind == domain.KindShortcut {
		return "⭐"
	}
	return "•"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
