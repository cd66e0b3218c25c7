package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/application/services/explosion"
	"mrpkit/pkg/domain/entities"
	"mrpkit/pkg/infrastructure/repositories/csv"
	"mrpkit/pkg/infrastructure/repositories/memory"
	"mrpkit/pkg/infrastructure/repositories/scenario"
	"mrpkit/pkg/interfaces/cli/output"
)

// ExplodeConfig holds configuration for the explode command
type ExplodeConfig struct {
	ScenarioFile string
	ItemsFile    string
	BOMFile      string
	ItemID       string
	Quantity     string
	MaxLevel     int
	AsOf         string
	Help         bool
}

// ExplodeCommand expands a product structure without running a full plan.
type ExplodeCommand struct {
	config ExplodeConfig
}

// NewExplodeCommand creates a new explode command with the given configuration
func NewExplodeCommand(config ExplodeConfig) *ExplodeCommand {
	return &ExplodeCommand{
		config: config,
	}
}

// Execute runs the explode command
func (c *ExplodeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.ItemID == "" {
		return fmt.Errorf("validation error: -item is required")
	}
	if c.config.ScenarioFile == "" && (c.config.ItemsFile == "" || c.config.BOMFile == "") {
		return fmt.Errorf("validation error: must specify either -scenario file or -items and -bom CSV files")
	}

	quantity := decimal.NewFromInt(1)
	if c.config.Quantity != "" {
		var err error
		quantity, err = decimal.NewFromString(c.config.Quantity)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", c.config.Quantity, err)
		}
	}

	asOf := time.Now()
	if c.config.AsOf != "" {
		var err error
		asOf, err = time.Parse("2006-01-02", c.config.AsOf)
		if err != nil {
			return fmt.Errorf("invalid as-of date %q: %w", c.config.AsOf, err)
		}
	}

	itemRepo, bomRepo, err := c.loadRepositories()
	if err != nil {
		return err
	}

	engine := explosion.NewEngine(itemRepo, bomRepo)
	result, err := engine.ExplodeAsOf(ctx, entities.ItemID(c.config.ItemID), quantity, c.config.MaxLevel, asOf)
	if err != nil {
		return fmt.Errorf("error exploding BOM: %w", err)
	}

	output.RenderExplosion(result.Items, result.Exceptions)
	return nil
}

func (c *ExplodeCommand) loadRepositories() (*memory.ItemRepository, *memory.BOMRepository, error) {
	var items []*entities.Item
	var bomLines []*entities.BOMLine

	if c.config.ScenarioFile != "" {
		scn, err := scenario.Load(c.config.ScenarioFile)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading scenario: %w", err)
		}
		items, bomLines = scn.Items, scn.BOMLines
	} else {
		loader := csv.NewLoader()
		var err error
		if items, err = loader.LoadItems(c.config.ItemsFile); err != nil {
			return nil, nil, fmt.Errorf("error loading items: %w", err)
		}
		if bomLines, err = loader.LoadBOM(c.config.BOMFile); err != nil {
			return nil, nil, fmt.Errorf("error loading BOM: %w", err)
		}
	}

	itemRepo := memory.NewItemRepository(len(items))
	if err := itemRepo.LoadItems(items); err != nil {
		return nil, nil, fmt.Errorf("failed to load items into repository: %w", err)
	}
	bomRepo := memory.NewBOMRepository(len(bomLines))
	if err := bomRepo.LoadBOMLines(bomLines); err != nil {
		return nil, nil, fmt.Errorf("failed to load BOM lines into repository: %w", err)
	}
	return itemRepo, bomRepo, nil
}

// showHelp displays the help message
func (c *ExplodeCommand) showHelp() {
	fmt.Printf(`mrpd explode - Expand a product structure for a quantity

USAGE:
    mrpd explode -scenario <file> -item <id> [-qty <n>]
    mrpd explode -items <file> -bom <file> -item <id> [-qty <n>]

OPTIONS:
    -scenario <file>    Path to YAML scenario file
    -items <file>       Path to item master CSV file
    -bom <file>         Path to BOM CSV file
    -item <id>          Item to explode (required)
    -qty <n>            Quantity to explode (default: 1)
    -max-level <n>      Maximum BOM depth (default: 10)
    -as-of <date>       Effectivity date, YYYY-MM-DD (default: today)
    -help               Show this help message

EXAMPLES:
    mrpd explode -scenario scenarios/bicycle.yaml -item BIKE -qty 10
    mrpd explode -items data/items.csv -bom data/bom.csv -item WHEEL -as-of 2024-06-01
`)
}
