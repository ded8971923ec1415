// Package demodata seeds a new mirror database with a sample storefront.
package demodata

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed sample.sql
var sampleSQL string

// Load inserts the sample catalog and download links in one transaction.
// Call it only on a freshly migrated database.
func Load(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin demo data: %w", err)
	}
	if _, err := tx.Exec(sampleSQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert demo data: %w", err)
	}
	return tx.Commit()
}
