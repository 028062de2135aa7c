package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loom-arch/loom/internal/enrich"
	"github.com/loom-arch/loom/internal/graph"
)

// RunOptionsImport holds the arguments of the catalog import command.
type RunOptionsImport struct {
	URL  string
	File string
}

var (
	importOptions RunOptionsImport

	exampleImportUsage = `  # Import a catalog document over HTTP
  loom catalog import --url https://example.com/components.json

  # Import a local catalog document
  loom catalog import --file ./components.json`
)

var importCmd = &cobra.Command{
	Use:                   "import {--url URL | --file PATH}",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleImportUsage,
	Short:                 "Import catalog components from a URL or local file",
	RunE:                  runImportCommand,
}

func runImportCommand(cmd *cobra.Command, args []string) error {
	if cmd.Flags().NFlag() == 0 {
		return cmd.Help()
	}

	if err := validateImportArgs(&importOptions, args); err != nil {
		logger.Error("invalid catalog import arguments", "error", err)
		return fmt.Errorf("invalid catalog import arguments: %w", err)
	}

	g := graph.New(AppConfig, logger)
	g.Load()

	importer := enrich.NewImporter(AppConfig, g, logger)

	var (
		stats graph.LoadStats
		err   error
	)
	if importOptions.URL != "" {
		stats, err = importer.ImportFromURL(importOptions.URL)
	} else {
		stats, err = importer.ImportFromFile(importOptions.File)
	}
	if err != nil {
		logger.Error("import command failed", "error", err)
		return err
	}

	fmt.Printf("Imported %d component(s), skipped %d malformed entr(ies).\n",
		stats.ComponentsLoaded, stats.ComponentsSkipped)
	return nil
}

func init() {
	importCmd.Flags().StringVar(&importOptions.URL, "url", "", "URL of a catalog document in the exchange format.")
	importCmd.Flags().StringVar(&importOptions.File, "file", "", "Path to a local catalog document.")
	importCmd.Flags().BoolP("help", "h", false, "Show help for the catalog import command.")
}
