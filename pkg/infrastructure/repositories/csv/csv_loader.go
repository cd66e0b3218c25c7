// Package csv loads planning scenario data from CSV files: item master,
// BOM lines, scheduled receipts, demands, and periods.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

// Loader handles loading MRP data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

func (l *Loader) readAll(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s must have a header row", filename)
	}
	if !headerMatches(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s header mismatch. Expected: %v, Got: %v", filename, expectedHeader, records[0])
	}
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

// LoadItems loads item master data from a CSV file
func (l *Loader) LoadItems(filename string) ([]*entities.Item, error) {
	header := []string{
		"item_id", "description", "lead_time_days", "safety_lead_time_days",
		"safety_stock", "on_hand", "lot_sizing_method", "min_qty", "max_qty",
		"order_multiple", "economic_order_qty", "periods_of_supply",
		"purchased", "manufactured", "unit_of_measure",
	}
	records, err := l.readAll(filename, header)
	if err != nil {
		return nil, err
	}

	var items []*entities.Item
	for i, record := range records {
		item, err := parseItem(record)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filename, i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func parseItem(record []string) (*entities.Item, error) {
	leadTime, err := strconv.Atoi(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid lead_time_days: %w", err)
	}
	safetyLeadTime, err := strconv.Atoi(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid safety_lead_time_days: %w", err)
	}
	safetyStock, err := parseQuantity(record[4], "safety_stock")
	if err != nil {
		return nil, err
	}
	onHand, err := parseQuantity(record[5], "on_hand")
	if err != nil {
		return nil, err
	}
	method, err := entities.ParseLotSizingMethod(record[6])
	if err != nil {
		return nil, err
	}
	minQty, err := parseQuantity(record[7], "min_qty")
	if err != nil {
		return nil, err
	}
	maxQty, err := parseQuantity(record[8], "max_qty")
	if err != nil {
		return nil, err
	}
	orderMultiple, err := parseQuantity(record[9], "order_multiple")
	if err != nil {
		return nil, err
	}
	eoq, err := parseQuantity(record[10], "economic_order_qty")
	if err != nil {
		return nil, err
	}
	periodsOfSupply, err := strconv.Atoi(record[11])
	if err != nil {
		return nil, fmt.Errorf("invalid periods_of_supply: %w", err)
	}
	purchased, err := strconv.ParseBool(record[12])
	if err != nil {
		return nil, fmt.Errorf("invalid purchased flag: %w", err)
	}
	manufactured, err := strconv.ParseBool(record[13])
	if err != nil {
		return nil, fmt.Errorf("invalid manufactured flag: %w", err)
	}

	policy := entities.LotSizingPolicy{
		Method:           method,
		MinQty:           minQty,
		MaxQty:           maxQty,
		OrderMultiple:    orderMultiple,
		EconomicOrderQty: eoq,
		PeriodsOfSupply:  periodsOfSupply,
	}
	return entities.NewItem(
		entities.ItemID(record[0]), record[1],
		leadTime, safetyLeadTime,
		safetyStock, onHand,
		policy, purchased, manufactured, record[14],
	)
}

// LoadBOM loads BOM lines from a CSV file
func (l *Loader) LoadBOM(filename string) ([]*entities.BOMLine, error) {
	header := []string{
		"parent_id", "component_id", "quantity_per", "scrap_factor",
		"phantom", "effective_from", "effective_to",
	}
	records, err := l.readAll(filename, header)
	if err != nil {
		return nil, err
	}

	var lines []*entities.BOMLine
	for i, record := range records {
		line, err := parseBOMLine(record)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filename, i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func parseBOMLine(record []string) (*entities.BOMLine, error) {
	quantityPer, err := parseQuantity(record[2], "quantity_per")
	if err != nil {
		return nil, err
	}
	scrapFactor := decimal.NewFromInt(1)
	if record[3] != "" {
		scrapFactor, err = parseQuantity(record[3], "scrap_factor")
		if err != nil {
			return nil, err
		}
	}
	phantom := false
	if record[4] != "" {
		phantom, err = strconv.ParseBool(record[4])
		if err != nil {
			return nil, fmt.Errorf("invalid phantom flag: %w", err)
		}
	}
	effectiveFrom, err := parseOptionalDate(record[5], "effective_from")
	if err != nil {
		return nil, err
	}
	effectiveTo, err := parseOptionalDate(record[6], "effective_to")
	if err != nil {
		return nil, err
	}

	return entities.NewBOMLine(
		entities.ItemID(record[0]), entities.ItemID(record[1]),
		quantityPer, scrapFactor, phantom, effectiveFrom, effectiveTo,
	)
}

// LoadDemands loads top-level demands from a CSV file
func (l *Loader) LoadDemands(filename string) ([]entities.Demand, error) {
	header := []string{"item_id", "quantity", "need_date", "source"}
	records, err := l.readAll(filename, header)
	if err != nil {
		return nil, err
	}

	var demands []entities.Demand
	for i, record := range records {
		quantity, err := parseQuantity(record[1], "quantity")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filename, i+2, err)
		}
		needDate, err := time.Parse(dateLayout, record[2])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid need_date: %w", filename, i+2, err)
		}
		demand, err := entities.NewDemand(entities.ItemID(record[0]), quantity, needDate, record[3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filename, i+2, err)
		}
		demands = append(demands, *demand)
	}
	return demands, nil
}

// LoadReceipts loads scheduled receipts from a CSV file
func (l *Loader) LoadReceipts(filename string) ([]*entities.ScheduledReceipt, error) {
	header := []string{"item_id", "quantity", "due_date", "source"}
	records, err := l.readAll(filename, header)
	if err != nil {
		return nil, err
	}

	var receipts []*entities.ScheduledReceipt
	for i, record := range records {
		quantity, err := parseQuantity(record[1], "quantity")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filename, i+2, err)
		}
		dueDate, err := time.Parse(dateLayout, record[2])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid due_date: %w", filename, i+2, err)
		}
		receipts = append(receipts, &entities.ScheduledReceipt{
			ItemID:   entities.ItemID(record[0]),
			Quantity: quantity,
			DueDate:  dueDate,
			Source:   record[3],
		})
	}
	return receipts, nil
}

// LoadPeriods loads the planning horizon from a CSV file
func (l *Loader) LoadPeriods(filename string) (entities.Horizon, error) {
	header := []string{"start", "end"}
	records, err := l.readAll(filename, header)
	if err != nil {
		return nil, err
	}

	var periods []entities.Period
	for i, record := range records {
		start, err := time.Parse(dateLayout, record[0])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid start: %w", filename, i+2, err)
		}
		end, err := time.Parse(dateLayout, record[1])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid end: %w", filename, i+2, err)
		}
		period, err := entities.NewPeriod(start, end)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filename, i+2, err)
		}
		periods = append(periods, *period)
	}
	return entities.NewHorizon(periods)
}

func parseQuantity(value, field string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	qty, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return qty, nil
}

func parseOptionalDate(value, field string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return &t, nil
}

func headerMatches(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, column := range expected {
		if strings.TrimSpace(header[i]) != column {
			return false
		}
	}
	return true
}
