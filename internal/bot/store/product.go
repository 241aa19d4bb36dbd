package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kart-io/shopbot/internal/model"
	"github.com/kart-io/shopbot/internal/pkg/sqlguard"
)

// ErrQueryRejected is returned when a statement fails the read-only
// guard.
var ErrQueryRejected = fmt.Errorf("query rejected: only SELECT statements are allowed")

// ProductStore runs read-only queries against the product catalog.
type ProductStore interface {
	// Query executes a SELECT statement and returns the result rows.
	Query(ctx context.Context, query string) ([]model.Row, error)
}

// SQLProductStore implements ProductStore over a GORM connection.
type SQLProductStore struct {
	db *gorm.DB
}

// NewSQLProductStore creates a catalog store.
func NewSQLProductStore(db *gorm.DB) *SQLProductStore {
	return &SQLProductStore{db: db}
}

// Query executes a SELECT statement and materializes every row into a
// column-keyed map. Non-SELECT statements are rejected before touching
// the database.
func (s *SQLProductStore) Query(ctx context.Context, query string) ([]model.Row, error) {
	if !sqlguard.IsReadOnly(query) {
		return nil, ErrQueryRejected
	}

	rows, err := s.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var results []model.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(model.Row, len(cols))
		for i, col := range cols {
			v := values[i]
			// Drivers hand text columns back as []byte.
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[col] = v
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return results, nil
}

var _ ProductStore = (*SQLProductStore)(nil)
