// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/prompt-extract/internal/extract"
	"github.com/pdiddy/prompt-extract/internal/index"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search the prompt index",
	Long: `Search queries the SQLite prompt index written by "extract --index".
Every term must appear in the prompt. Use --folder to restrict results to a
folder and its subfolders.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("index", "", "prompt index database (default: the configured index, or prompts.db)")
	searchCmd.Flags().String("folder", "", "restrict results to this folder and its subfolders")
	searchCmd.Flags().Int("limit", 20, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	folder, _ := cmd.Flags().GetString("folder")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	opts := index.SearchOptions{
		Query:      strings.Join(args, " "),
		Folder:     folder,
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("search terms or --folder required")
	}

	store, err := index.NewStore(indexPath(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(cmd.Context(), opts)
	if err != nil {
		return err
	}
	return formatSearchOutput(cmd.OutOrStdout(), results, jsonOutput)
}

// indexPath picks the database from --index, then the configured index, then
// the default, resolved against the configured working directory.
func indexPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("index")
	if path == "" {
		path = viper.GetString("index")
	}
	if path == "" {
		path = index.DefaultPath
	}
	return extract.ResolvePath(viper.GetString("workdir"), path)
}

func formatSearchOutput(w io.Writer, results []index.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-40s  %s\n", "Image", "Prompt")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range results {
		path := truncateLeft(r.Path, 40)
		prompt := truncateRight(strings.Join(strings.Fields(r.Prompt), " "), 68)
		fmt.Fprintf(w, "%-40s  %s\n", path, prompt)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// truncateLeft keeps the last n runes of s, marking the cut with "...".
func truncateLeft(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return "..." + string(runes[len(runes)-n+3:])
}

// truncateRight keeps the first n runes of s, marking the cut with "...".
func truncateRight(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
