// Package sqlite persists planning run results in an embedded SQLite
// database so completed runs can be inspected after the fact.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"mrpkit/pkg/application/dto"
	"mrpkit/pkg/domain/entities"
)

const timeLayout = time.RFC3339

// Store manages planning run history in SQLite.
type Store struct {
	DBPath string
	db     *sql.DB
}

// RunSummary is one row of the run history listing.
type RunSummary struct {
	PlanID        string
	Name          string
	Success       bool
	PlannedOrders int
	Exceptions    int
	ExecutedAt    time.Time
}

// Open opens or creates the run history database.
func Open(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve run db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure run db dir: %w", err)
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open run db: %w", err)
	}

	store := &Store{DBPath: absPath, db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			plan_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			success INTEGER NOT NULL,
			items_processed INTEGER NOT NULL,
			orders_created INTEGER NOT NULL,
			exceptions_generated INTEGER NOT NULL,
			execution_ms INTEGER NOT NULL,
			error_message TEXT,
			executed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS requirements (
			plan_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			period_index INTEGER NOT NULL,
			period_start TEXT NOT NULL,
			period_end TEXT NOT NULL,
			gross TEXT NOT NULL,
			on_hand TEXT NOT NULL,
			receipts TEXT NOT NULL,
			safety_stock TEXT NOT NULL,
			net TEXT NOT NULL,
			projected TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS planned_orders (
			plan_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			quantity TEXT NOT NULL,
			release_date TEXT NOT NULL,
			due_date TEXT NOT NULL,
			order_type TEXT NOT NULL,
			level INTEGER NOT NULL,
			source_period INTEGER NOT NULL,
			source TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS exceptions (
			plan_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			severity TEXT NOT NULL,
			item_id TEXT,
			period_index INTEGER NOT NULL,
			order_ref TEXT,
			detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_requirements_plan ON requirements(plan_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_plan ON planned_orders(plan_id)`,
		`CREATE INDEX IF NOT EXISTS idx_exceptions_plan ON exceptions(plan_id)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure run db schema: %w", err)
		}
	}
	return nil
}

// SaveResult persists a run result, replacing any previous record for
// the same plan.
func (s *Store) SaveResult(name string, result *dto.MRPCalculationResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"runs", "requirements", "planned_orders", "exceptions"} {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE plan_id = ?", table), result.PlanID); err != nil {
			return fmt.Errorf("clear previous run: %w", err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO runs (plan_id, name, success, items_processed, orders_created,
			exceptions_generated, execution_ms, error_message, executed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.PlanID, name, boolToInt(result.Success),
		result.TotalItemsProcessed, result.PlannedOrdersCreated, result.ExceptionsGenerated,
		result.ExecutionTime.Milliseconds(), result.ErrorMessage,
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, req := range result.Requirements {
		_, err = tx.Exec(
			`INSERT INTO requirements (plan_id, item_id, level, period_index,
				period_start, period_end, gross, on_hand, receipts, safety_stock, net, projected)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.PlanID, string(req.ItemID), req.Level, req.PeriodIndex,
			req.Period.Start.UTC().Format(timeLayout), req.Period.End.UTC().Format(timeLayout),
			req.GrossRequirement.String(), req.OnHand.String(), req.ScheduledReceipts.String(),
			req.SafetyStock.String(), req.NetRequirement.String(), req.ProjectedAvailable.String(),
		)
		if err != nil {
			return fmt.Errorf("insert requirement: %w", err)
		}
	}

	for _, order := range result.PlannedOrders {
		_, err = tx.Exec(
			`INSERT INTO planned_orders (plan_id, item_id, quantity, release_date,
				due_date, order_type, level, source_period, source)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.PlanID, string(order.ItemID), order.Quantity.String(),
			order.ReleaseDate.UTC().Format(timeLayout), order.DueDate.UTC().Format(timeLayout),
			order.OrderType.String(), order.Level, order.SourcePeriodIndex, order.Source,
		)
		if err != nil {
			return fmt.Errorf("insert planned order: %w", err)
		}
	}

	for _, exc := range result.Exceptions {
		_, err = tx.Exec(
			`INSERT INTO exceptions (plan_id, kind, severity, item_id, period_index, order_ref, detail)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			result.PlanID, exc.Kind.String(), exc.Severity.String(),
			string(exc.ItemID), exc.PeriodIndex, exc.OrderRef, exc.Detail,
		)
		if err != nil {
			return fmt.Errorf("insert exception: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// LoadResult reconstructs a persisted run result.
func (s *Store) LoadResult(planID string) (*dto.MRPCalculationResult, error) {
	result := &dto.MRPCalculationResult{PlanID: planID}

	var success int
	var executionMs int64
	var errorMessage sql.NullString
	var name, executedAt string
	err := s.db.QueryRow(
		`SELECT name, success, items_processed, orders_created, exceptions_generated,
			execution_ms, error_message, executed_at
		 FROM runs WHERE plan_id = ?`, planID,
	).Scan(&name, &success, &result.TotalItemsProcessed, &result.PlannedOrdersCreated,
		&result.ExceptionsGenerated, &executionMs, &errorMessage, &executedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", planID)
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}
	result.Success = success != 0
	result.ExecutionTime = time.Duration(executionMs) * time.Millisecond
	result.ErrorMessage = errorMessage.String

	if result.Requirements, err = s.loadRequirements(planID); err != nil {
		return nil, err
	}
	if result.PlannedOrders, err = s.loadOrders(planID); err != nil {
		return nil, err
	}
	if result.Exceptions, err = s.loadExceptions(planID); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) loadRequirements(planID string) ([]entities.Requirement, error) {
	rows, err := s.db.Query(
		`SELECT item_id, level, period_index, period_start, period_end,
			gross, on_hand, receipts, safety_stock, net, projected
		 FROM requirements WHERE plan_id = ? ORDER BY rowid`, planID)
	if err != nil {
		return nil, fmt.Errorf("load requirements: %w", err)
	}
	defer rows.Close()

	var requirements []entities.Requirement
	for rows.Next() {
		var req entities.Requirement
		var itemID, periodStart, periodEnd string
		var gross, onHand, receipts, safetyStock, net, projected string
		if err := rows.Scan(&itemID, &req.Level, &req.PeriodIndex, &periodStart, &periodEnd,
			&gross, &onHand, &receipts, &safetyStock, &net, &projected); err != nil {
			return nil, fmt.Errorf("scan requirement: %w", err)
		}
		req.ItemID = entities.ItemID(itemID)
		if req.Period.Start, err = time.Parse(timeLayout, periodStart); err != nil {
			return nil, fmt.Errorf("parse period start: %w", err)
		}
		if req.Period.End, err = time.Parse(timeLayout, periodEnd); err != nil {
			return nil, fmt.Errorf("parse period end: %w", err)
		}
		for dst, src := range map[*decimal.Decimal]string{
			&req.GrossRequirement:   gross,
			&req.OnHand:             onHand,
			&req.ScheduledReceipts:  receipts,
			&req.SafetyStock:        safetyStock,
			&req.NetRequirement:     net,
			&req.ProjectedAvailable: projected,
		} {
			if *dst, err = decimal.NewFromString(src); err != nil {
				return nil, fmt.Errorf("parse requirement quantity %q: %w", src, err)
			}
		}
		requirements = append(requirements, req)
	}
	return requirements, rows.Err()
}

func (s *Store) loadOrders(planID string) ([]entities.PlannedOrder, error) {
	rows, err := s.db.Query(
		`SELECT item_id, quantity, release_date, due_date, order_type, level, source_period, source
		 FROM planned_orders WHERE plan_id = ? ORDER BY rowid`, planID)
	if err != nil {
		return nil, fmt.Errorf("load planned orders: %w", err)
	}
	defer rows.Close()

	var orders []entities.PlannedOrder
	for rows.Next() {
		var order entities.PlannedOrder
		var itemID, quantity, releaseDate, dueDate, orderType string
		var source sql.NullString
		if err := rows.Scan(&itemID, &quantity, &releaseDate, &dueDate, &orderType,
			&order.Level, &order.SourcePeriodIndex, &source); err != nil {
			return nil, fmt.Errorf("scan planned order: %w", err)
		}
		order.ItemID = entities.ItemID(itemID)
		order.Source = source.String
		if order.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return nil, fmt.Errorf("parse order quantity %q: %w", quantity, err)
		}
		if order.ReleaseDate, err = time.Parse(timeLayout, releaseDate); err != nil {
			return nil, fmt.Errorf("parse release date: %w", err)
		}
		if order.DueDate, err = time.Parse(timeLayout, dueDate); err != nil {
			return nil, fmt.Errorf("parse due date: %w", err)
		}
		if orderType == entities.Purchase.String() {
			order.OrderType = entities.Purchase
		} else {
			order.OrderType = entities.Production
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (s *Store) loadExceptions(planID string) ([]entities.Exception, error) {
	rows, err := s.db.Query(
		`SELECT kind, severity, item_id, period_index, order_ref, detail
		 FROM exceptions WHERE plan_id = ? ORDER BY rowid`, planID)
	if err != nil {
		return nil, fmt.Errorf("load exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []entities.Exception
	for rows.Next() {
		var exc entities.Exception
		var kind, severity string
		var itemID, orderRef, detail sql.NullString
		if err := rows.Scan(&kind, &severity, &itemID, &exc.PeriodIndex, &orderRef, &detail); err != nil {
			return nil, fmt.Errorf("scan exception: %w", err)
		}
		exc.Kind = parseExceptionKind(kind)
		if severity == entities.SeverityError.String() {
			exc.Severity = entities.SeverityError
		}
		exc.ItemID = entities.ItemID(itemID.String)
		exc.OrderRef = orderRef.String
		exc.Detail = detail.String
		exceptions = append(exceptions, exc)
	}
	return exceptions, rows.Err()
}

func parseExceptionKind(kind string) entities.ExceptionKind {
	switch kind {
	case entities.PastDueOrder.String():
		return entities.PastDueOrder
	case entities.UnresolvedShortage.String():
		return entities.UnresolvedShortage
	case entities.NegativeInput.String():
		return entities.NegativeInput
	default:
		return entities.CyclicBOM
	}
}

// ListRuns returns summaries of all persisted runs, newest first.
func (s *Store) ListRuns() ([]RunSummary, error) {
	rows, err := s.db.Query(
		`SELECT plan_id, name, success, orders_created, exceptions_generated, executed_at
		 FROM runs ORDER BY executed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var summary RunSummary
		var success int
		var executedAt string
		if err := rows.Scan(&summary.PlanID, &summary.Name, &success,
			&summary.PlannedOrders, &summary.Exceptions, &executedAt); err != nil {
			return nil, fmt.Errorf("scan run summary: %w", err)
		}
		summary.Success = success != 0
		if summary.ExecutedAt, err = time.Parse(timeLayout, executedAt); err != nil {
			return nil, fmt.Errorf("parse executed_at: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
