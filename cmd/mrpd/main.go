package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"mrpkit/pkg/interfaces/cli/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	var err error

	switch os.Args[1] {
	case "run":
		err = runCommand(ctx, os.Args[2:])
	case "explode":
		err = explodeCommand(ctx, os.Args[2:])
	case "history":
		err = historyCommand(ctx, os.Args[2:])
	case "help", "-help", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var (
		scenarioFile = fs.String("scenario", "", "Path to YAML scenario file")
		itemsFile    = fs.String("items", "", "Path to item master CSV file")
		bomFile      = fs.String("bom", "", "Path to BOM CSV file")
		demandsFile  = fs.String("demands", "", "Path to demands CSV file")
		receiptsFile = fs.String("receipts", "", "Path to scheduled receipts CSV file (optional)")
		periodsFile  = fs.String("periods", "", "Path to planning periods CSV file")
		planName     = fs.String("name", "", "Plan name (overrides scenario name)")
		maxLevel     = fs.Int("max-level", 0, "Maximum BOM depth to plan")
		parallelism  = fs.Int("parallelism", 0, "Concurrent item calculations per level")
		storeFile    = fs.String("store", "", "SQLite file to persist the run result (optional)")
		outputDir    = fs.String("output", "", "Output directory for results (optional)")
		format       = fs.String("format", "text", "Output format: text, json, csv")
		verbose      = fs.Bool("verbose", false, "Enable verbose output with run progress")
		help         = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	config := commands.Config{
		ScenarioFile: *scenarioFile,
		ItemsFile:    *itemsFile,
		BOMFile:      *bomFile,
		DemandsFile:  *demandsFile,
		ReceiptsFile: *receiptsFile,
		PeriodsFile:  *periodsFile,
		PlanName:     *planName,
		MaxLevel:     *maxLevel,
		Parallelism:  *parallelism,
		StoreFile:    *storeFile,
		OutputDir:    *outputDir,
		Format:       *format,
		Verbose:      *verbose,
		Help:         *help,
	}

	return commands.NewRunCommand(config).Execute(ctx)
}

func explodeCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("explode", flag.ExitOnError)
	var (
		scenarioFile = fs.String("scenario", "", "Path to YAML scenario file")
		itemsFile    = fs.String("items", "", "Path to item master CSV file")
		bomFile      = fs.String("bom", "", "Path to BOM CSV file")
		itemID       = fs.String("item", "", "Item to explode (required)")
		quantity     = fs.String("qty", "", "Quantity to explode (default: 1)")
		maxLevel     = fs.Int("max-level", 0, "Maximum BOM depth")
		asOf         = fs.String("as-of", "", "Effectivity date, YYYY-MM-DD (default: today)")
		help         = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	config := commands.ExplodeConfig{
		ScenarioFile: *scenarioFile,
		ItemsFile:    *itemsFile,
		BOMFile:      *bomFile,
		ItemID:       *itemID,
		Quantity:     *quantity,
		MaxLevel:     *maxLevel,
		AsOf:         *asOf,
		Help:         *help,
	}

	return commands.NewExplodeCommand(config).Execute(ctx)
}

func historyCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	var (
		storeFile = fs.String("store", "", "SQLite run store file (required)")
		planID    = fs.String("plan", "", "Plan ID to re-render")
		format    = fs.String("format", "text", "Output format: text, json")
		verbose   = fs.Bool("verbose", false, "Include net requirements in text output")
		help      = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	config := commands.HistoryConfig{
		StoreFile: *storeFile,
		PlanID:    *planID,
		Format:    *format,
		Verbose:   *verbose,
		Help:      *help,
	}

	return commands.NewHistoryCommand(config).Execute(ctx)
}

func printUsage() {
	fmt.Printf(`mrpd - Material Requirements Planning engine

USAGE:
    mrpd <command> [options]

COMMANDS:
    run        Execute a planning run from a scenario or CSV files
    explode    Expand a product structure for a quantity
    history    Inspect persisted planning runs
    help       Show this message

Run 'mrpd <command> -help' for command-specific options.
`)
}
