package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/newtab/internal/cli/styles"
	"github.com/bnema/newtab/internal/domain/url"
)

var (
	suggestPageURL string
	suggestJSON    bool
	searchDryRun   bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <query>",
	Short: "Print search suggestions for a query",
	Long: `Fetch suggestions the way the page does. Queries shorter than two
characters and provider failures print nothing.

Examples:
  newtab suggest golang
  newtab suggest --json "weather in"
  newtab suggest --page-url moz-extension://abc/newtab.html golang`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search the web or open an address",
	Long: `Resolve text like the search bar does and open it in the default
browser. Addresses open directly; anything else goes to the search engine.

Examples:
  newtab search golang generics
  newtab search github.com
  newtab search --dry-run "weather today"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(searchCmd)
	suggestCmd.Flags().StringVar(&suggestPageURL, "page-url", "", "pretend the page was loaded from this URL")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "print a JSON array")
	searchCmd.Flags().BoolVar(&searchDryRun, "dry-run", false, "print the navigation instead of opening it")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	fetch, err := app.Suggestions(suggestPageURL)
	if err != nil {
		return err
	}
	results := fetch.Execute(app.Ctx(), strings.Join(args, " "))

	out := cmd.OutOrStdout()
	if suggestJSON {
		return json.NewEncoder(out).Encode(results)
	}
	arrow := lipgloss.NewStyle().Foreground(app.Theme.Accent).Render(styles.IconSearch)
	for _, s := range results {
		fmt.Fprintf(out, "%s %s\n", arrow, s)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	search := app.Search()
	out := cmd.OutOrStdout()

	if searchDryRun {
		nav, ok := search.Resolve(text)
		if !ok {
			return fmt.Errorf("nothing to search")
		}
		fmt.Fprintln(out, describeNavigation(nav))
		return nil
	}

	nav, ok, err := search.Submit(app.Ctx(), text)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("nothing to search")
	}
	fmt.Fprintln(out, app.Theme.Subtle.Render("Opened "+describeNavigation(nav)))
	return nil
}

func describeNavigation(nav url.Navigation) string {
	kind := "address"
	if nav.IsSearch {
		kind = "search"
	}
	return fmt.Sprintf("%s (%s, %s)", nav.URL, kind, nav.Target)
}
