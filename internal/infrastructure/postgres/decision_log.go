package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/watermelon/decision-engine/internal/domain/model"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
	pkgpostgres "github.com/watermelon/decision-engine/pkg/postgres"
)

// DB is the subset of *pgxpool.Pool the logs use.
type DB interface {
	pkgpostgres.Beginner
	pkgpostgres.Querier
}

// appendIndexed inserts a row at the next index of table. The table lock
// serialises appenders so indexes are dense and follow commit order.
func appendIndexed(ctx context.Context, db DB, table string, insert func(tx pgx.Tx, index int) error) (int, error) {
	var index int
	err := pkgpostgres.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "LOCK TABLE "+table+" IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return fmt.Errorf("failed to lock %s: %w", table, err)
		}
		if err := tx.QueryRow(ctx, "SELECT COALESCE(MAX(idx) + 1, 0) FROM "+table).Scan(&index); err != nil {
			return fmt.Errorf("failed to read next index of %s: %w", table, err)
		}
		return insert(tx, index)
	})
	if err != nil {
		return 0, err
	}
	return index, nil
}

// SupplierLog implements port.SupplierLog using PostgreSQL.
type SupplierLog struct {
	db DB
}

// NewSupplierLog creates a new PostgreSQL-backed supplier log.
func NewSupplierLog(db DB) *SupplierLog {
	return &SupplierLog{db: db}
}

// Append persists record at the next index.
func (l *SupplierLog) Append(ctx context.Context, record *model.SupplierRecord) (int, error) {
	return appendIndexed(ctx, l.db, "supplier_decisions", func(tx pgx.Tx, index int) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO supplier_decisions (
				idx, id, supplier_name, invoice_amount, contract_terms,
				credit_score, risk_level, status, processed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			index,
			record.ID(),
			record.Name(),
			record.InvoiceAmount(),
			record.Terms().String(),
			record.CreditScore(),
			record.RiskLevel().String(),
			record.Status().String(),
			record.ProcessedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert supplier decision: %w", err)
		}
		return nil
	})
}

// List returns the last limit records, oldest first.
func (l *SupplierLog) List(ctx context.Context, limit int) ([]*model.SupplierRecord, error) {
	rows, err := l.db.Query(ctx, `
		SELECT idx, id, supplier_name, invoice_amount, contract_terms,
			credit_score, risk_level, status, processed_at
		FROM (
			SELECT * FROM supplier_decisions ORDER BY idx DESC LIMIT $1
		) recent
		ORDER BY idx ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier decisions: %w", err)
	}
	defer rows.Close()

	var records []*model.SupplierRecord
	for rows.Next() {
		var (
			index       int
			id          uuid.UUID
			name        string
			amount      decimal.Decimal
			terms       string
			creditScore float64
			riskStr     string
			statusStr   string
			processedAt time.Time
		)
		if err := rows.Scan(&index, &id, &name, &amount, &terms, &creditScore, &riskStr, &statusStr, &processedAt); err != nil {
			return nil, fmt.Errorf("failed to scan supplier decision: %w", err)
		}

		risk, err := valueobject.RiskLevelFromString(riskStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse risk level: %w", err)
		}
		status, err := valueobject.DecisionStatusFromString(statusStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse status: %w", err)
		}

		records = append(records, model.ReconstructSupplierRecord(
			id, index, name, amount, valueobject.ContractTermsFromStored(terms),
			creditScore, risk, status, processedAt.UTC(),
		))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate supplier decisions: %w", err)
	}

	return records, nil
}

// BuyerLog implements port.BuyerLog using PostgreSQL.
type BuyerLog struct {
	db DB
}

// NewBuyerLog creates a new PostgreSQL-backed buyer log.
func NewBuyerLog(db DB) *BuyerLog {
	return &BuyerLog{db: db}
}

// Append persists record at the next index.
func (l *BuyerLog) Append(ctx context.Context, record *model.BuyerRecord) (int, error) {
	return appendIndexed(ctx, l.db, "buyer_analyses", func(tx pgx.Tx, index int) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO buyer_analyses (
				idx, buyer_id, buyer_name, last_order_at, order_frequency, basket_size,
				days_since_last_order, churn_probability, risk_tier, action_taken, processed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			index,
			record.ID(),
			record.Name(),
			record.LastOrderAt(),
			record.OrderFrequency(),
			record.BasketSize(),
			record.DaysSinceLastOrder(),
			record.ChurnProbability(),
			record.Tier().String(),
			record.Action().String(),
			record.ProcessedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert buyer analysis: %w", err)
		}
		return nil
	})
}

// List returns the last limit records, oldest first.
func (l *BuyerLog) List(ctx context.Context, limit int) ([]*model.BuyerRecord, error) {
	rows, err := l.db.Query(ctx, `
		SELECT buyer_id, buyer_name, last_order_at, order_frequency, basket_size,
			days_since_last_order, churn_probability, risk_tier, action_taken, processed_at
		FROM (
			SELECT * FROM buyer_analyses ORDER BY idx DESC LIMIT $1
		) recent
		ORDER BY idx ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query buyer analyses: %w", err)
	}
	defer rows.Close()

	var records []*model.BuyerRecord
	for rows.Next() {
		var (
			id, name    string
			lastOrderAt time.Time
			frequency   int
			basket      decimal.Decimal
			days        int
			probability float64
			tierStr     string
			actionStr   string
			processedAt time.Time
		)
		if err := rows.Scan(&id, &name, &lastOrderAt, &frequency, &basket, &days, &probability, &tierStr, &actionStr, &processedAt); err != nil {
			return nil, fmt.Errorf("failed to scan buyer analysis: %w", err)
		}

		tier, err := valueobject.ChurnTierFromString(tierStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse churn tier: %w", err)
		}
		action, err := valueobject.ChurnActionFromString(actionStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse churn action: %w", err)
		}

		records = append(records, model.ReconstructBuyerRecord(
			id, name, lastOrderAt.UTC(), frequency, basket, days, probability, tier, action, processedAt.UTC(),
		))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buyer analyses: %w", err)
	}

	return records, nil
}

// ForecastLog implements port.ForecastLog using PostgreSQL.
type ForecastLog struct {
	db DB
}

// NewForecastLog creates a new PostgreSQL-backed forecast log.
func NewForecastLog(db DB) *ForecastLog {
	return &ForecastLog{db: db}
}

// Append persists forecast at the next index.
func (l *ForecastLog) Append(ctx context.Context, forecast *model.ProductForecast) (int, error) {
	return appendIndexed(ctx, l.db, "demand_forecasts", func(tx pgx.Tx, index int) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO demand_forecasts (
				idx, product_id, historical_avg, predicted_demand, current_inventory,
				alert_threshold, inventory_risk, alert_sent, processed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			index,
			forecast.ProductID(),
			forecast.HistoricalAverage(),
			forecast.PredictedDemand(),
			forecast.CurrentInventory(),
			forecast.AlertThreshold(),
			forecast.InventoryRisk().String(),
			forecast.AlertSent(),
			forecast.ProcessedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert demand forecast: %w", err)
		}
		return nil
	})
}

// List returns the last limit forecasts, oldest first.
func (l *ForecastLog) List(ctx context.Context, limit int) ([]*model.ProductForecast, error) {
	rows, err := l.db.Query(ctx, `
		SELECT product_id, historical_avg, predicted_demand, current_inventory,
			alert_threshold, inventory_risk, alert_sent, processed_at
		FROM (
			SELECT * FROM demand_forecasts ORDER BY idx DESC LIMIT $1
		) recent
		ORDER BY idx ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query demand forecasts: %w", err)
	}
	defer rows.Close()

	var forecasts []*model.ProductForecast
	for rows.Next() {
		var (
			productID   string
			average     float64
			demand      int
			inventory   int
			threshold   int
			riskStr     string
			alertSent   bool
			processedAt time.Time
		)
		if err := rows.Scan(&productID, &average, &demand, &inventory, &threshold, &riskStr, &alertSent, &processedAt); err != nil {
			return nil, fmt.Errorf("failed to scan demand forecast: %w", err)
		}

		risk, err := valueobject.InventoryRiskFromString(riskStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse inventory risk: %w", err)
		}

		forecasts = append(forecasts, model.ReconstructProductForecast(
			productID, average, demand, inventory, threshold, risk, alertSent, processedAt.UTC(),
		))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate demand forecasts: %w", err)
	}

	return forecasts, nil
}
