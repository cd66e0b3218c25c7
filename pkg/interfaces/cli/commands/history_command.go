package commands

import (
	"context"
	"fmt"
	"time"

	"mrpkit/pkg/infrastructure/repositories/sqlite"
	"mrpkit/pkg/interfaces/cli/output"
)

// HistoryConfig holds configuration for the history command
type HistoryConfig struct {
	StoreFile string
	PlanID    string
	Format    string
	Verbose   bool
	Help      bool
}

// HistoryCommand lists persisted runs or re-renders one of them.
type HistoryCommand struct {
	config HistoryConfig
}

// NewHistoryCommand creates a new history command with the given configuration
func NewHistoryCommand(config HistoryConfig) *HistoryCommand {
	return &HistoryCommand{
		config: config,
	}
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.StoreFile == "" {
		return fmt.Errorf("validation error: -store is required")
	}

	store, err := sqlite.Open(c.config.StoreFile)
	if err != nil {
		return fmt.Errorf("error opening run store: %w", err)
	}
	defer store.Close()

	if c.config.PlanID != "" {
		result, err := store.LoadResult(c.config.PlanID)
		if err != nil {
			return fmt.Errorf("error loading run: %w", err)
		}
		return output.Generate(result, output.Config{
			Format:  c.config.Format,
			Verbose: c.config.Verbose,
		})
	}

	summaries, err := store.ListRuns()
	if err != nil {
		return fmt.Errorf("error listing runs: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No persisted runs.")
		return nil
	}

	fmt.Printf("%-38s %-20s %-10s %-8s %-12s %s\n",
		"Plan ID", "Name", "Status", "Orders", "Exceptions", "Executed At")
	for _, summary := range summaries {
		status := "failed"
		if summary.Success {
			status = "completed"
		}
		fmt.Printf("%-38s %-20s %-10s %-8d %-12d %s\n",
			summary.PlanID, summary.Name, status,
			summary.PlannedOrders, summary.Exceptions,
			summary.ExecutedAt.Format(time.RFC3339))
	}
	return nil
}

// showHelp displays the help message
func (c *HistoryCommand) showHelp() {
	fmt.Printf(`mrpd history - Inspect persisted planning runs

USAGE:
    mrpd history -store <file>                  # List all persisted runs
    mrpd history -store <file> -plan <id>       # Re-render one run

OPTIONS:
    -store <file>       SQLite run store file (required)
    -plan <id>          Plan ID to re-render
    -format <fmt>       Output format for -plan: text, json (default: text)
    -verbose            Include net requirements in text output
    -help               Show this help message
`)
}
