// Package output renders planning run results as text, JSON, or CSV.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"mrpkit/pkg/application/dto"
	"mrpkit/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate creates output in the specified format
func Generate(result *dto.MRPCalculationResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.MRPCalculationResult, config Config) error {
	fmt.Printf("MRP Run Summary\n")
	fmt.Printf("===============\n\n")

	fmt.Printf("Plan ID: %s\n", result.PlanID)
	if result.Success {
		fmt.Printf("Status: completed\n")
	} else {
		fmt.Printf("Status: failed (%s)\n", result.ErrorMessage)
	}
	fmt.Printf("Items Processed: %d\n", result.TotalItemsProcessed)
	fmt.Printf("Planned Orders: %d\n", result.PlannedOrdersCreated)
	fmt.Printf("Exceptions: %d\n", result.ExceptionsGenerated)
	fmt.Printf("Execution Time: %v\n\n", result.ExecutionTime)

	if len(result.PlannedOrders) > 0 {
		fmt.Printf("Planned Orders:\n")
		fmt.Printf("%-15s %-12s %-12s %-12s %-12s %-6s\n",
			"Item", "Qty", "Release", "Due", "Type", "Level")
		fmt.Printf("%-15s %-12s %-12s %-12s %-12s %-6s\n",
			"---------------", "------------", "------------", "------------", "------------", "------")

		for _, order := range result.PlannedOrders {
			fmt.Printf("%-15s %-12s %-12s %-12s %-12s %-6d\n",
				order.ItemID,
				order.Quantity.String(),
				order.ReleaseDate.Format(dateLayout),
				order.DueDate.Format(dateLayout),
				order.OrderType.String(),
				order.Level)
		}
		fmt.Println()
	}

	if len(result.Exceptions) > 0 {
		fmt.Printf("Exceptions:\n")
		fmt.Printf("%-20s %-10s %-15s %-8s %s\n",
			"Kind", "Severity", "Item", "Period", "Detail")
		fmt.Printf("%-20s %-10s %-15s %-8s %s\n",
			"--------------------", "----------", "---------------", "--------", "------")

		for _, exc := range result.Exceptions {
			period := "-"
			if exc.PeriodIndex >= 0 {
				period = strconv.Itoa(exc.PeriodIndex)
			}
			fmt.Printf("%-20s %-10s %-15s %-8s %s\n",
				exc.Kind.String(), exc.Severity.String(), exc.ItemID, period, exc.Detail)
		}
		fmt.Println()
	}

	if config.Verbose && len(result.Requirements) > 0 {
		fmt.Printf("Net Requirements:\n")
		fmt.Printf("%-15s %-6s %-8s %-12s %-12s %-12s %-12s\n",
			"Item", "Level", "Period", "Gross", "Net", "Projected", "Start")
		fmt.Printf("%-15s %-6s %-8s %-12s %-12s %-12s %-12s\n",
			"---------------", "------", "--------", "------------", "------------", "------------", "------------")

		for _, req := range result.Requirements {
			fmt.Printf("%-15s %-6d %-8d %-12s %-12s %-12s %-12s\n",
				req.ItemID,
				req.Level,
				req.PeriodIndex,
				req.GrossRequirement.String(),
				req.NetRequirement.String(),
				req.ProjectedAvailable.String(),
				req.Period.Start.Format(dateLayout))
		}
		fmt.Println()
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, "mrp_results.json")
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write results file: %w", err)
		}
		if config.Verbose {
			fmt.Printf("Results saved to: %s\n", filename)
		}
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.MRPCalculationResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "mrp_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput creates one CSV file per result section
func generateCSVOutput(result *dto.MRPCalculationResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ordersFile := filepath.Join(config.OutputDir, "planned_orders.csv")
	if err := writeOrdersCSV(result.PlannedOrders, ordersFile); err != nil {
		return fmt.Errorf("failed to write planned orders CSV: %w", err)
	}

	requirementsFile := filepath.Join(config.OutputDir, "requirements.csv")
	if err := writeRequirementsCSV(result.Requirements, requirementsFile); err != nil {
		return fmt.Errorf("failed to write requirements CSV: %w", err)
	}

	exceptionsFile := filepath.Join(config.OutputDir, "exceptions.csv")
	if err := writeExceptionsCSV(result.Exceptions, exceptionsFile); err != nil {
		return fmt.Errorf("failed to write exceptions CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("CSV results saved to:\n")
		fmt.Printf("  Planned Orders: %s\n", ordersFile)
		fmt.Printf("  Requirements: %s\n", requirementsFile)
		fmt.Printf("  Exceptions: %s\n", exceptionsFile)
	}

	return nil
}

func writeOrdersCSV(orders []entities.PlannedOrder, filename string) error {
	records := [][]string{
		{"item_id", "quantity", "release_date", "due_date", "order_type", "level", "source_period", "source"},
	}
	for _, order := range orders {
		records = append(records, []string{
			string(order.ItemID),
			order.Quantity.String(),
			order.ReleaseDate.Format(dateLayout),
			order.DueDate.Format(dateLayout),
			order.OrderType.String(),
			strconv.Itoa(order.Level),
			strconv.Itoa(order.SourcePeriodIndex),
			order.Source,
		})
	}
	return writeCSVFile(filename, records)
}

func writeRequirementsCSV(requirements []entities.Requirement, filename string) error {
	records := [][]string{
		{"item_id", "level", "period_index", "period_start", "period_end",
			"gross", "on_hand", "receipts", "safety_stock", "net", "projected"},
	}
	for _, req := range requirements {
		records = append(records, []string{
			string(req.ItemID),
			strconv.Itoa(req.Level),
			strconv.Itoa(req.PeriodIndex),
			req.Period.Start.Format(dateLayout),
			req.Period.End.Format(dateLayout),
			req.GrossRequirement.String(),
			req.OnHand.String(),
			req.ScheduledReceipts.String(),
			req.SafetyStock.String(),
			req.NetRequirement.String(),
			req.ProjectedAvailable.String(),
		})
	}
	return writeCSVFile(filename, records)
}

func writeExceptionsCSV(exceptions []entities.Exception, filename string) error {
	records := [][]string{
		{"kind", "severity", "item_id", "period_index", "order_ref", "detail"},
	}
	for _, exc := range exceptions {
		records = append(records, []string{
			exc.Kind.String(),
			exc.Severity.String(),
			string(exc.ItemID),
			strconv.Itoa(exc.PeriodIndex),
			exc.OrderRef,
			exc.Detail,
		})
	}
	return writeCSVFile(filename, records)
}

func writeCSVFile(filename string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// RenderExplosion prints a flattened BOM explosion as an indented tree.
func RenderExplosion(items []entities.BOMExplosionItem, exceptions []entities.Exception) {
	fmt.Printf("BOM Explosion\n")
	fmt.Printf("=============\n\n")
	fmt.Printf("%-6s %-20s %-15s %-12s %-12s %-6s\n",
		"Level", "Item", "Parent", "Required", "Cumulative", "Lead")
	fmt.Printf("%-6s %-20s %-15s %-12s %-12s %-6s\n",
		"------", "--------------------", "---------------", "------------", "------------", "------")

	for _, item := range items {
		indent := ""
		for i := 0; i < item.Level; i++ {
			indent += "  "
		}
		fmt.Printf("%-6d %-20s %-15s %-12s %-12s %-6d\n",
			item.Level,
			indent+string(item.ItemID),
			item.ParentItemID,
			item.RequiredQuantity.String(),
			item.CumulativeQuantity.String(),
			item.LeadTimeDays)
	}
	fmt.Println()

	if len(exceptions) > 0 {
		fmt.Printf("Exceptions:\n")
		for _, exc := range exceptions {
			fmt.Printf("  [%s] %s\n", exc.Kind.String(), exc.Detail)
		}
		fmt.Println()
	}

	fmt.Printf("Total components: %d\n", len(items))
}
