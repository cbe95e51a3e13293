package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/faq-assistant/services"
)

// sourceCLI labels searches issued from the command line.
const sourceCLI = "cli"

func searchCmd() *cobra.Command {
	var (
		asJSON  bool
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Rank the FAQ corpus for a question",
		Long: `Rank the configured FAQ store for a question and print the best matches.
An empty store is seeded with the built-in corpus first.

Examples:
  faq-assistant search "What is deuce?"
  faq-assistant search "how do I pay" --explain
  faq-assistant search "tiebreak" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			if _, err := a.engine.SeedIfEmpty(ctx); err != nil {
				return fmt.Errorf("failed to seed store: %w", err)
			}

			query := strings.Join(args, " ")
			result, err := a.engine.Search(ctx, services.SearchQuery{Query: query, Explain: explain, Source: sourceCLI})
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return outputJSON(out, query, result)
			}
			return outputHuman(out, query, result)
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")
	cmd.Flags().BoolVarP(&explain, "explain", "e", false, "show the per-feature score breakdown")

	return cmd
}

func outputJSON(w io.Writer, query string, result services.SearchResult) error {
	output := struct {
		Query string `json:"query"`
		services.SearchResult
	}{
		Query:        query,
		SearchResult: result,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputHuman(out io.Writer, query string, result services.SearchResult) error {
	// bufio keeps the first write error and Flush reports it.
	w := bufio.NewWriter(out)

	if len(result.Hits) == 0 {
		fmt.Fprintf(w, "No results for \"%s\"\n", query)
		return w.Flush()
	}

	fmt.Fprintf(w, "Results for \"%s\" (%d results, %dms)\n\n", query, len(result.Hits), result.Took)

	for i, hit := range result.Hits {
		fmt.Fprintf(w, "%d. [%s] %s  (score: %.2f)\n", i+1, hit.Category, hit.Question, hit.RelevanceScore)

		preview := []rune(strings.ReplaceAll(hit.Answer, "\n", " "))
		if len(preview) > 200 {
			preview = append(preview[:200], []rune("...")...)
		}
		fmt.Fprintf(w, "   %s\n", string(preview))

		if b := hit.Breakdown; b != nil {
			fmt.Fprintf(w, "   keyword %.2f | question %.2f | scoring %.2f | tennis %.2f | challenge %.2f\n",
				b.Keyword, b.QuestionSimilarity, b.ScoringTerms, b.TennisTerms, b.ChallengeTerms)
			fmt.Fprintf(w, "   category %.2f | answer %.2f | priority %.2f | exact %.2f\n",
				b.Category, b.AnswerSimilarity, b.Priority, b.ExactPhrase)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
