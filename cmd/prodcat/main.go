// Package main provides the prodcat CLI: generate a product catalog page
// from products.xlsx, or re-sync an edited products.json into the page.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shengshui/prodcat/patch"
	"github.com/shengshui/prodcat/render"
	"github.com/shengshui/prodcat/schema"
	"github.com/shengshui/prodcat/workbook"
)

// Built-in defaults, overridable by environment (PRODCAT_XLSX, PRODCAT_HTML,
// PRODCAT_JSON) and flags, in that order of increasing precedence.
const (
	defaultXLSX = "products.xlsx"
	defaultHTML = "products.html"
	defaultJSON = "products.json"
)

var (
	outputPath string
	htmlPath   string
	cardLimit  int
)

func main() {
	// Optional .env in the working directory; absence is not an error.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "prodcat",
		Short: "Generate a static product catalog page from a spreadsheet",
		Long: `prodcat reads the first worksheet of an .xlsx workbook, maps its
name/image/desc/url columns to product records, and renders a static HTML
catalog page. The sync subcommand patches an edited products.json back into
a previously generated page.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newGenerateCmd(), newSyncCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// envOr returns the value of the environment variable key, or def when the
// variable is unset or empty.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [products.xlsx]",
		Short: "Extract products from a workbook and write the catalog page",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGenerate,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output HTML path (default $PRODCAT_HTML or products.html)")
	cmd.Flags().IntVar(&cardLimit, "limit", render.DefaultCardLimit, "Maximum number of product cards on the page")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	input := envOr("PRODCAT_XLSX", defaultXLSX)
	if len(args) == 1 {
		input = args[0]
	}
	output := outputPath
	if output == "" {
		output = envOr("PRODCAT_HTML", defaultHTML)
	}

	if _, err := os.Stat(input); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", input)
	}

	wb, err := workbook.Open(input)
	if err != nil {
		return err
	}
	defer wb.Close()

	tbl, err := wb.Table()
	if err != nil {
		return err
	}
	if n := tbl.Diag.UnresolvedSharedStrings; n > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d cell(s) in sheet %q reference shared strings that could not be resolved; raw index text was kept\n", n, tbl.Name)
	}

	products, err := schema.Map(tbl.Rows)
	if err != nil {
		return err
	}

	html, err := render.Page(products, cardLimit)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, html, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("Generated: %s (%d products)\n", output, len(products))
	return nil
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [products.json]",
		Short: "Patch an edited products.json into a generated catalog page",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSync,
	}
	cmd.Flags().StringVar(&htmlPath, "html", "", "Catalog page to patch (default $PRODCAT_HTML or products.html)")
	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	input := envOr("PRODCAT_JSON", defaultJSON)
	if len(args) == 1 {
		input = args[0]
	}
	target := htmlPath
	if target == "" {
		target = envOr("PRODCAT_HTML", defaultHTML)
	}

	jsonData, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	doc, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("read %s: %w", target, err)
	}

	patched, err := patch.Apply(doc, jsonData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, patched, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("Synced %s -> %s\n", input, target)
	return nil
}
