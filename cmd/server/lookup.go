package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dex-api/internal/entities/catalog"
	"github.com/KirkDiggler/dex-api/internal/orchestrators/dex"
)

var (
	asJSON     bool
	evolutions bool
	maxResults int
	popular    bool
	imageName  string
	imageForm  string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Run catalog lookups in-process",
	Long:  `Lookup commands run the resolution engine directly against the catalog API and print the result.`,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [query]",
	Short: "Resolve an id or name into records",
	Long: `Resolve a query the same way the HTTP API does. Examples:

  lookup resolve 25
  lookup resolve 皮卡 --evolutions
  lookup resolve charizard --json`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [query]",
	Short: "Rank autocomplete suggestions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSuggest,
}

var imagesCmd = &cobra.Command{
	Use:   "images [id]",
	Short: "Show the image chain for an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runImages,
}

func init() {
	lookupCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of text")

	resolveCmd.Flags().BoolVar(&evolutions, "evolutions", false, "append evolution chain members")
	resolveCmd.Flags().IntVar(&maxResults, "max", 0, "maximum number of results")
	suggestCmd.Flags().IntVar(&maxResults, "max", 0, "maximum number of suggestions")
	suggestCmd.Flags().BoolVar(&popular, "popular", false, "list the popular terms instead")
	imagesCmd.Flags().StringVar(&imageName, "name", "", "canonical name (defaults to the reference entry)")
	imagesCmd.Flags().StringVar(&imageForm, "form", "", "form to select")

	lookupCmd.AddCommand(resolveCmd)
	lookupCmd.AddCommand(suggestCmd)
	lookupCmd.AddCommand(imagesCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	out, err := a.service.ResolveByQuery(cmd.Context(), &dex.ResolveByQueryInput{
		Query:             args[0],
		IncludeEvolutions: evolutions,
		MaxResults:        maxResults,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", args[0], err)
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), out.Results)
	}
	return writeResults(cmd.OutOrStdout(), out.Results, out.Offline)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	var query string
	if len(args) > 0 {
		query = args[0]
	}
	out, err := a.service.Suggest(cmd.Context(), &dex.SuggestInput{Query: query, MaxCount: maxResults, Popular: popular})
	if err != nil {
		return fmt.Errorf("failed to suggest for %q: %w", query, err)
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), out.Suggestions)
	}
	return writeSuggestions(cmd.OutOrStdout(), out.Suggestions)
}

func runImages(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("id must be numeric, got %q", args[0])
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	out, err := a.service.ImagesFor(cmd.Context(), &dex.ImagesForInput{ID: id, Name: imageName, Form: imageForm})
	if err != nil {
		return fmt.Errorf("failed to resolve images for %d: %w", id, err)
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), out.Images)
	}
	return writeImages(cmd.OutOrStdout(), out.Images)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeResults(w io.Writer, results []*catalog.Pokemon, offline bool) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}
	if offline {
		fmt.Fprintln(w, "(offline: showing stored results)")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tENGLISH\tTYPES\tIMAGE")
	for _, p := range results {
		types := make([]string, 0, len(p.Types))
		for _, t := range p.Types {
			types = append(types, t.Local)
		}
		name := p.Names.Local
		if p.IsVariant {
			name += " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, name, p.Names.Canonical, strings.Join(types, "/"), p.Images.Primary)
	}
	return tw.Flush()
}

func writeSuggestions(w io.Writer, suggestions []catalog.Suggestion) error {
	if len(suggestions) == 0 {
		_, err := fmt.Fprintln(w, "No suggestions")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEXT\tLANG\tSCORE\tMATCH\tID")
	for _, s := range suggestions {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%d\n", s.Text, s.Lang, s.Score, s.MatchType, s.ID)
	}
	return tw.Flush()
}

func writeImages(w io.Writer, set catalog.ImageSet) error {
	fmt.Fprintf(w, "primary:     %s\n", set.Primary)
	fmt.Fprintf(w, "fallback:    %s\n", set.Fallback)
	for i, alt := range set.Alternatives {
		fmt.Fprintf(w, "alt[%d]:      %s\n", i, alt)
	}
	_, err := fmt.Fprintf(w, "placeholder: %s\n", set.Placeholder)
	return err
}
