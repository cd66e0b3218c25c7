// Package scenario loads a complete planning scenario from a single
// YAML file: item master, BOM, scheduled receipts, demands, horizon,
// and run options.
package scenario

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"mrpkit/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

// Scenario is the parsed, validated content of a scenario file.
type Scenario struct {
	Name     string
	AsOf     time.Time
	MaxLevel int
	Items    []*entities.Item
	BOMLines []*entities.BOMLine
	Receipts []*entities.ScheduledReceipt
	Demands  []entities.Demand
	Horizon  entities.Horizon
}

type scenarioYAML struct {
	Name     string        `yaml:"name"`
	AsOf     string        `yaml:"as_of"`
	MaxLevel int           `yaml:"max_level"`
	Items    []itemYAML    `yaml:"items"`
	BOM      []bomLineYAML `yaml:"bom"`
	Receipts []receiptYAML `yaml:"receipts"`
	Demands  []demandYAML  `yaml:"demands"`
	Periods  []periodYAML  `yaml:"periods"`
}

type itemYAML struct {
	ID                 string `yaml:"id"`
	Description        string `yaml:"description"`
	LeadTimeDays       int    `yaml:"lead_time_days"`
	SafetyLeadTimeDays int    `yaml:"safety_lead_time_days"`
	SafetyStock        string `yaml:"safety_stock"`
	OnHand             string `yaml:"on_hand"`
	LotSizingMethod    string `yaml:"lot_sizing_method"`
	MinQty             string `yaml:"min_qty"`
	MaxQty             string `yaml:"max_qty"`
	OrderMultiple      string `yaml:"order_multiple"`
	EconomicOrderQty   string `yaml:"economic_order_qty"`
	PeriodsOfSupply    int    `yaml:"periods_of_supply"`
	Purchased          bool   `yaml:"purchased"`
	Manufactured       bool   `yaml:"manufactured"`
	UnitOfMeasure      string `yaml:"unit_of_measure"`
}

type bomLineYAML struct {
	Parent        string `yaml:"parent"`
	Component     string `yaml:"component"`
	QuantityPer   string `yaml:"quantity_per"`
	ScrapFactor   string `yaml:"scrap_factor"`
	Phantom       bool   `yaml:"phantom"`
	EffectiveFrom string `yaml:"effective_from"`
	EffectiveTo   string `yaml:"effective_to"`
}

type receiptYAML struct {
	Item     string `yaml:"item"`
	Quantity string `yaml:"quantity"`
	DueDate  string `yaml:"due_date"`
	Source   string `yaml:"source"`
}

type demandYAML struct {
	Item     string `yaml:"item"`
	Quantity string `yaml:"quantity"`
	NeedDate string `yaml:"need_date"`
	Source   string `yaml:"source"`
}

type periodYAML struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates scenario YAML content.
func Parse(data []byte) (*Scenario, error) {
	var raw scenarioYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	s := &Scenario{
		Name:     raw.Name,
		MaxLevel: raw.MaxLevel,
	}

	if raw.AsOf != "" {
		asOf, err := time.Parse(dateLayout, raw.AsOf)
		if err != nil {
			return nil, fmt.Errorf("invalid as_of date %q: %w", raw.AsOf, err)
		}
		s.AsOf = asOf
	}

	for i, it := range raw.Items {
		item, err := buildItem(it)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, it.ID, err)
		}
		s.Items = append(s.Items, item)
	}

	for i, bl := range raw.BOM {
		line, err := buildBOMLine(bl)
		if err != nil {
			return nil, fmt.Errorf("bom line %d (%s -> %s): %w", i, bl.Parent, bl.Component, err)
		}
		s.BOMLines = append(s.BOMLines, line)
	}

	for i, rc := range raw.Receipts {
		quantity, err := parseQuantity(rc.Quantity, "quantity")
		if err != nil {
			return nil, fmt.Errorf("receipt %d: %w", i, err)
		}
		dueDate, err := time.Parse(dateLayout, rc.DueDate)
		if err != nil {
			return nil, fmt.Errorf("receipt %d: invalid due_date %q: %w", i, rc.DueDate, err)
		}
		s.Receipts = append(s.Receipts, &entities.ScheduledReceipt{
			ItemID:   entities.ItemID(rc.Item),
			Quantity: quantity,
			DueDate:  dueDate,
			Source:   rc.Source,
		})
	}

	for i, d := range raw.Demands {
		quantity, err := parseQuantity(d.Quantity, "quantity")
		if err != nil {
			return nil, fmt.Errorf("demand %d: %w", i, err)
		}
		needDate, err := time.Parse(dateLayout, d.NeedDate)
		if err != nil {
			return nil, fmt.Errorf("demand %d: invalid need_date %q: %w", i, d.NeedDate, err)
		}
		demand, err := entities.NewDemand(entities.ItemID(d.Item), quantity, needDate, d.Source)
		if err != nil {
			return nil, fmt.Errorf("demand %d: %w", i, err)
		}
		s.Demands = append(s.Demands, *demand)
	}

	var periods []entities.Period
	for i, p := range raw.Periods {
		start, err := time.Parse(dateLayout, p.Start)
		if err != nil {
			return nil, fmt.Errorf("period %d: invalid start %q: %w", i, p.Start, err)
		}
		end, err := time.Parse(dateLayout, p.End)
		if err != nil {
			return nil, fmt.Errorf("period %d: invalid end %q: %w", i, p.End, err)
		}
		period, err := entities.NewPeriod(start, end)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", i, err)
		}
		periods = append(periods, *period)
	}
	if len(periods) > 0 {
		horizon, err := entities.NewHorizon(periods)
		if err != nil {
			return nil, fmt.Errorf("invalid horizon: %w", err)
		}
		s.Horizon = horizon
	}

	return s, nil
}

func buildItem(it itemYAML) (*entities.Item, error) {
	safetyStock, err := parseQuantity(it.SafetyStock, "safety_stock")
	if err != nil {
		return nil, err
	}
	onHand, err := parseQuantity(it.OnHand, "on_hand")
	if err != nil {
		return nil, err
	}
	method := entities.LotForLot
	if it.LotSizingMethod != "" {
		method, err = entities.ParseLotSizingMethod(it.LotSizingMethod)
		if err != nil {
			return nil, err
		}
	}
	minQty, err := parseQuantity(it.MinQty, "min_qty")
	if err != nil {
		return nil, err
	}
	maxQty, err := parseQuantity(it.MaxQty, "max_qty")
	if err != nil {
		return nil, err
	}
	orderMultiple, err := parseQuantity(it.OrderMultiple, "order_multiple")
	if err != nil {
		return nil, err
	}
	eoq, err := parseQuantity(it.EconomicOrderQty, "economic_order_qty")
	if err != nil {
		return nil, err
	}

	policy := entities.LotSizingPolicy{
		Method:           method,
		MinQty:           minQty,
		MaxQty:           maxQty,
		OrderMultiple:    orderMultiple,
		EconomicOrderQty: eoq,
		PeriodsOfSupply:  it.PeriodsOfSupply,
	}
	return entities.NewItem(
		entities.ItemID(it.ID), it.Description,
		it.LeadTimeDays, it.SafetyLeadTimeDays,
		safetyStock, onHand,
		policy, it.Purchased, it.Manufactured, it.UnitOfMeasure,
	)
}

func buildBOMLine(bl bomLineYAML) (*entities.BOMLine, error) {
	quantityPer, err := parseQuantity(bl.QuantityPer, "quantity_per")
	if err != nil {
		return nil, err
	}
	scrapFactor := decimal.NewFromInt(1)
	if bl.ScrapFactor != "" {
		scrapFactor, err = parseQuantity(bl.ScrapFactor, "scrap_factor")
		if err != nil {
			return nil, err
		}
	}
	effectiveFrom, err := parseOptionalDate(bl.EffectiveFrom, "effective_from")
	if err != nil {
		return nil, err
	}
	effectiveTo, err := parseOptionalDate(bl.EffectiveTo, "effective_to")
	if err != nil {
		return nil, err
	}
	return entities.NewBOMLine(
		entities.ItemID(bl.Parent), entities.ItemID(bl.Component),
		quantityPer, scrapFactor, bl.Phantom, effectiveFrom, effectiveTo,
	)
}

func parseQuantity(value, field string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	qty, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return qty, nil
}

func parseOptionalDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return &t, nil
}
