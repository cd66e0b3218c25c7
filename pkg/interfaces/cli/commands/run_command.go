// Package commands implements the CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"mrpkit/pkg/application/services/planning"
	"mrpkit/pkg/domain/entities"
	"mrpkit/pkg/infrastructure/events"
	"mrpkit/pkg/infrastructure/repositories/csv"
	"mrpkit/pkg/infrastructure/repositories/memory"
	"mrpkit/pkg/infrastructure/repositories/scenario"
	"mrpkit/pkg/infrastructure/repositories/sqlite"
	"mrpkit/pkg/interfaces/cli/output"
)

// Config holds configuration for the run command
type Config struct {
	ScenarioFile string
	ItemsFile    string
	BOMFile      string
	DemandsFile  string
	ReceiptsFile string
	PeriodsFile  string
	PlanName     string
	MaxLevel     int
	Parallelism  int
	StoreFile    string
	OutputDir    string
	Format       string
	Verbose      bool
	Help         bool
}

// planInputs is everything a run needs, regardless of how it was loaded.
type planInputs struct {
	name     string
	asOf     time.Time
	maxLevel int
	items    []*entities.Item
	bomLines []*entities.BOMLine
	receipts []*entities.ScheduledReceipt
	demands  []entities.Demand
	horizon  entities.Horizon
}

// RunCommand executes a full planning run from scenario or CSV inputs.
type RunCommand struct {
	config Config
}

// NewRunCommand creates a new run command with the given configuration
func NewRunCommand(config Config) *RunCommand {
	return &RunCommand{
		config: config,
	}
}

// Execute runs the planning command
func (c *RunCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	inputs, err := c.loadInputs()
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("Loaded planning inputs:\n")
		fmt.Printf("  Items: %d\n", len(inputs.items))
		fmt.Printf("  BOM Lines: %d\n", len(inputs.bomLines))
		fmt.Printf("  Scheduled Receipts: %d\n", len(inputs.receipts))
		fmt.Printf("  Demands: %d\n", len(inputs.demands))
		fmt.Printf("  Periods: %d\n", len(inputs.horizon))
		fmt.Println()
	}

	itemRepo := memory.NewItemRepository(len(inputs.items))
	if err := itemRepo.LoadItems(inputs.items); err != nil {
		return fmt.Errorf("failed to load items into repository: %w", err)
	}

	bomRepo := memory.NewBOMRepository(len(inputs.bomLines))
	if err := bomRepo.LoadBOMLines(inputs.bomLines); err != nil {
		return fmt.Errorf("failed to load BOM lines into repository: %w", err)
	}

	receiptRepo := memory.NewScheduledReceiptRepository(len(inputs.receipts))
	if err := receiptRepo.LoadReceipts(inputs.receipts); err != nil {
		return fmt.Errorf("failed to load scheduled receipts into repository: %w", err)
	}

	orchestrator := planning.NewOrchestratorWithConfig(itemRepo, bomRepo, receiptRepo, planning.Config{
		Parallelism: c.config.Parallelism,
	})

	eventStore := events.NewInMemoryEventStore()
	orchestrator.SetEventStore(eventStore)
	if c.config.Verbose {
		if err := eventStore.Subscribe(progressEventTypes(), newProgressPrinter()); err != nil {
			return fmt.Errorf("failed to subscribe progress printer: %w", err)
		}
	}

	plan := entities.NewPlan(inputs.name, inputs.demands, inputs.horizon, inputs.maxLevel, inputs.asOf)

	if c.config.Verbose {
		fmt.Printf("Running plan %q (%s)...\n\n", plan.Name, plan.ID)
	}

	result, err := orchestrator.ExecutePlan(ctx, plan)
	if err != nil {
		return fmt.Errorf("error executing plan: %w", err)
	}

	if err := output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.StoreFile != "" {
		store, err := sqlite.Open(c.config.StoreFile)
		if err != nil {
			return fmt.Errorf("error opening run store: %w", err)
		}
		defer store.Close()

		if err := store.SaveResult(plan.Name, result); err != nil {
			return fmt.Errorf("error persisting run: %w", err)
		}
		if c.config.Verbose {
			fmt.Printf("Run persisted to: %s\n", store.DBPath)
		}
	}

	if !result.Success {
		return fmt.Errorf("plan failed: %s", result.ErrorMessage)
	}
	return nil
}

// validateInputs validates the command configuration
func (c *RunCommand) validateInputs() error {
	if c.config.ScenarioFile != "" {
		return nil
	}
	if c.config.ItemsFile == "" || c.config.BOMFile == "" ||
		c.config.DemandsFile == "" || c.config.PeriodsFile == "" {
		return fmt.Errorf("must specify either -scenario file or -items, -bom, -demands and -periods CSV files")
	}
	return nil
}

// loadInputs loads planning data from a scenario file or individual CSVs
func (c *RunCommand) loadInputs() (*planInputs, error) {
	if c.config.ScenarioFile != "" {
		return c.loadScenario()
	}
	return c.loadCSVFiles()
}

func (c *RunCommand) loadScenario() (*planInputs, error) {
	scn, err := scenario.Load(c.config.ScenarioFile)
	if err != nil {
		return nil, fmt.Errorf("error loading scenario: %w", err)
	}

	inputs := &planInputs{
		name:     scn.Name,
		asOf:     scn.AsOf,
		maxLevel: scn.MaxLevel,
		items:    scn.Items,
		bomLines: scn.BOMLines,
		receipts: scn.Receipts,
		demands:  scn.Demands,
		horizon:  scn.Horizon,
	}
	if c.config.PlanName != "" {
		inputs.name = c.config.PlanName
	}
	if c.config.MaxLevel > 0 {
		inputs.maxLevel = c.config.MaxLevel
	}
	return inputs, nil
}

func (c *RunCommand) loadCSVFiles() (*planInputs, error) {
	for name, path := range map[string]string{
		"items":   c.config.ItemsFile,
		"bom":     c.config.BOMFile,
		"demands": c.config.DemandsFile,
		"periods": c.config.PeriodsFile,
	} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	loader := csv.NewLoader()

	items, err := loader.LoadItems(c.config.ItemsFile)
	if err != nil {
		return nil, fmt.Errorf("error loading items: %w", err)
	}
	bomLines, err := loader.LoadBOM(c.config.BOMFile)
	if err != nil {
		return nil, fmt.Errorf("error loading BOM: %w", err)
	}
	demands, err := loader.LoadDemands(c.config.DemandsFile)
	if err != nil {
		return nil, fmt.Errorf("error loading demands: %w", err)
	}
	horizon, err := loader.LoadPeriods(c.config.PeriodsFile)
	if err != nil {
		return nil, fmt.Errorf("error loading periods: %w", err)
	}

	var receipts []*entities.ScheduledReceipt
	if c.config.ReceiptsFile != "" {
		receipts, err = loader.LoadReceipts(c.config.ReceiptsFile)
		if err != nil {
			return nil, fmt.Errorf("error loading scheduled receipts: %w", err)
		}
	}

	name := c.config.PlanName
	if name == "" {
		name = "cli run"
	}
	return &planInputs{
		name:     name,
		maxLevel: c.config.MaxLevel,
		items:    items,
		bomLines: bomLines,
		receipts: receipts,
		demands:  demands,
		horizon:  horizon,
	}, nil
}

// showHelp displays the help message
func (c *RunCommand) showHelp() {
	fmt.Printf(`mrpd run - Execute a material requirements planning run

USAGE:
    mrpd run -scenario <file>                        # Use a YAML scenario file
    mrpd run -items <file> -bom <file> ...           # Use individual CSV files

OPTIONS:
    -scenario <file>    Path to YAML scenario file
    -items <file>       Path to item master CSV file
    -bom <file>         Path to BOM CSV file
    -demands <file>     Path to demands CSV file
    -receipts <file>    Path to scheduled receipts CSV file (optional)
    -periods <file>     Path to planning periods CSV file
    -name <name>        Plan name (overrides scenario name)
    -max-level <n>      Maximum BOM depth to plan (default: 10)
    -parallelism <n>    Concurrent item calculations per level (default: CPUs)
    -store <file>       SQLite file to persist the run result (optional)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -verbose            Enable verbose output with run progress
    -help               Show this help message

SCENARIO FILE:
    name: bicycle demo
    as_of: 2024-01-01
    max_level: 10
    items:
      - id: BIKE
        lead_time_days: 5
        lot_sizing_method: lot_for_lot
        manufactured: true
    bom:
      - parent: BIKE
        component: WHEEL
        quantity_per: "2"
    demands:
      - item: BIKE
        quantity: "100"
        need_date: 2024-02-01
        source: FORECAST
    periods:
      - start: 2024-01-01
        end: 2024-01-08

EXAMPLES:
    # Run a scenario with progress output
    mrpd run -scenario scenarios/bicycle.yaml -verbose

    # Run from CSV files and persist the result
    mrpd run -items data/items.csv -bom data/bom.csv -demands data/demands.csv \
        -periods data/periods.csv -store runs.db

    # Generate JSON output
    mrpd run -scenario scenarios/bicycle.yaml -format json -output results/
`)
}
