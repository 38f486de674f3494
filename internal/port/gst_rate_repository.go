package port

import (
	"context"

	"github.com/shopspring/decimal"
)

// GSTRate is one row of the GST reference table: an HSN/SAC code or item name
// with its category and statutory rate.
type GSTRate struct {
	Code     string          `db:"hsn_code"`
	Name     string          `db:"item_name"`
	Category string          `db:"item_category"`
	Rate     decimal.Decimal `db:"gst_rate"`
}

// GSTRateRepository defines the contract for storing and loading the GST reference table.
type GSTRateRepository interface {
	LoadAll(ctx context.Context) ([]GSTRate, error)
	InsertBatch(ctx context.Context, rows []GSTRate) (int, error)
}

// RateLookup resolves an item name or HSN/SAC code against reference data.
type RateLookup interface {
	Lookup(nameOrCode string) (GSTRate, bool)
}
