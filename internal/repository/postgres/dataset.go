package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// DatasetRepository persists the canonical record collection. The dataset
// is small enough to live in memory, so postgres only serves durability:
// the full set is loaded once at startup and replaced wholesale on upload.
type DatasetRepository struct {
	db *DB
}

func NewDatasetRepository(db *DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS shipment_records (
		id BIGSERIAL PRIMARY KEY,
		month TEXT NOT NULL,
		enquiries INTEGER NOT NULL DEFAULT 0,
		converted_shipments INTEGER NOT NULL DEFAULT 0,
		total_shipments INTEGER NOT NULL DEFAULT 0,
		volume DOUBLE PRECISION NOT NULL DEFAULT 0,
		weight DOUBLE PRECISION NOT NULL DEFAULT 0,
		customer TEXT NOT NULL DEFAULT '',
		salesman TEXT NOT NULL DEFAULT '',
		agent TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		branch TEXT NOT NULL DEFAULT '',
		service TEXT NOT NULL DEFAULT '',
		trade TEXT NOT NULL DEFAULT '',
		tradelane TEXT NOT NULL DEFAULT '',
		carrier TEXT NOT NULL DEFAULT '',
		product TEXT NOT NULL DEFAULT '',
		tos TEXT NOT NULL DEFAULT '',
		shipment_date TEXT NOT NULL DEFAULT ''
	)`

// EnsureSchema creates the dataset table when missing.
func (r *DatasetRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("failed to create shipment_records table: %w", err)
	}
	return nil
}

// LoadAll reads the whole dataset in insertion order.
func (r *DatasetRepository) LoadAll(ctx context.Context) ([]domain.ShipmentRecord, error) {
	var records []domain.ShipmentRecord
	query := `
		SELECT month, enquiries, converted_shipments, total_shipments,
		       volume, weight, customer, salesman, agent, country, branch,
		       service, trade, tradelane, carrier, product, tos, shipment_date
		FROM shipment_records
		ORDER BY id`
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to load shipment records: %w", err)
	}
	return records, nil
}

const insertQuery = `
	INSERT INTO shipment_records (
		month, enquiries, converted_shipments, total_shipments,
		volume, weight, customer, salesman, agent, country, branch,
		service, trade, tradelane, carrier, product, tos, shipment_date
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
	)`

// Replace swaps the stored dataset for the given records in one
// transaction, so readers never see a mix of old and new data.
func (r *DatasetRepository) Replace(ctx context.Context, records []domain.ShipmentRecord) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM shipment_records"); err != nil {
			return fmt.Errorf("failed to clear shipment records: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, insertQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			_, err := stmt.ExecContext(ctx,
				rec.Month,
				rec.Enquiries,
				rec.ConvertedShipments,
				rec.TotalShipments,
				rec.Volume,
				rec.Weight,
				rec.Customer,
				rec.Salesman,
				rec.Agent,
				rec.Country,
				rec.Branch,
				rec.Service,
				rec.Trade,
				rec.Tradelane,
				rec.Carrier,
				rec.Product,
				rec.TOS,
				rec.ShipmentDate,
			)
			if err != nil {
				return fmt.Errorf("failed to insert shipment record: %w", err)
			}
		}
		return nil
	})
}
