package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/GuiaBolso/darwin"
	_ "github.com/mattn/go-sqlite3"

	"acbuy.com/showcase/internal/logx"
)

// ApplicationID is the SQLite application_id for showcase mirror databases.
// "SHOW" in ASCII: S=0x53, H=0x48, O=0x4F, W=0x57
const ApplicationID = 0x53484F57

// ErrInvalidDatabase is returned when the database is not a showcase mirror.
var ErrInvalidDatabase = errors.New("not a valid 'showcase' database")

// defineMigrations returns the mirror schema, one step per row.
// The tables mirror the hosted store column for column so rows can be
// copied across unchanged.
// *NEVER* change/remove a step once released! darwin stores a checksum per step.
func defineMigrations() []darwin.Migration {
	m := []darwin.Migration{

		// 0x53484F57 = "SHOW"
		{Version: 1.00, Description: "Set application_id", Script: `
		PRAGMA application_id = 0x53484F57;`},

		{Version: 1.01, Description: "Create Table 'products'", Script: `
		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			original_price REAL,
			current_price REAL NOT NULL DEFAULT 0,
			image_url TEXT,
			purchase_link TEXT,
			inquiry_link TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			is_recommended INTEGER NOT NULL DEFAULT 0
		);`},

		{Version: 1.02, Description: "Create Table 'campaign_products'", Script: `
		CREATE TABLE IF NOT EXISTS campaign_products (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			original_price REAL,
			current_price REAL NOT NULL DEFAULT 0,
			image_url TEXT,
			purchase_link TEXT,
			inquiry_link TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			is_recommended INTEGER NOT NULL DEFAULT 1
		);`},

		{Version: 1.03, Description: "Create Index 'idx_campaign_products_created_at'", Script: `
		CREATE INDEX IF NOT EXISTS idx_campaign_products_created_at ON campaign_products (created_at DESC);`},

		{Version: 1.04, Description: "Create Table 'app_downloads'", Script: `
		CREATE TABLE IF NOT EXISTS app_downloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ios_app_store TEXT,
			android_google_play TEXT,
			android_direct_download TEXT,
			huawei_app_gallery TEXT,
			xiaomi_app_store TEXT,
			oppo_app_store TEXT,
			vivo_app_store TEXT,
			samsung_galaxy_store TEXT
		);`},
	}
	return m
}

// changes returns a user-friendly display of database version changes
func changes(v1, v2 float64) string {
	if v1 != v2 {
		return fmt.Sprintf("DB Version: %.2f (migrated from %.2f to %.2f)", v2, v1, v2)
	}
	return fmt.Sprintf("DB Version: %.2f", v1)
}

// currentVersion reports how many steps are recorded and the highest version applied.
func currentVersion(db *sql.DB) (count int, ver float64, err error) {
	s := `select count(*) as n from sqlite_master where tbl_name = 'darwin_migrations';`
	err = db.QueryRow(s).Scan(&count)
	if err != nil || count == 0 {
		return 0, 0, err
	}

	s = `select count(*) as n, max(version) as ver from darwin_migrations;`
	err = db.QueryRow(s).Scan(&count, &ver)
	return count, ver, err
}

// minifiedMigrations strips formatting from each script so whitespace and
// comment edits keep the stored checksum stable.
func minifiedMigrations() []darwin.Migration {
	migrations := defineMigrations()
	for i := range migrations {
		migrations[i].Script = minify(migrations[i].Script)
	}
	return migrations
}

func minify(script string) string {
	b := strings.Builder{}
	s := strings.ToLower(strings.ReplaceAll(script, "/*", "--"))
	for _, line := range strings.Split(s, "\n") {
		if i := strings.Index(line, "--"); i != -1 {
			line = line[0:i]
		}
		b.WriteString(strings.TrimSpace(line) + "\n")
	}
	result := strings.TrimSpace(strings.ReplaceAll(b.String(), "\t", " "))
	for before := -1; len(result) != before; {
		before = len(result)
		result = strings.ReplaceAll(result, "  ", " ")
	}
	return strings.TrimSpace(result)
}

func progress(ch <-chan darwin.MigrationInfo) string {
	var b strings.Builder
	for info := range ch {
		_, _ = fmt.Fprintf(&b, "v%.2f: \"%s\" (%s) Error: %v\n",
			info.Migration.Version, info.Migration.Description, info.Status.String(), info.Error)
	}
	return b.String()
}

// Schema returns the mirror definitions for display.
func Schema() string {
	var b strings.Builder
	for _, m := range defineMigrations() {
		_, _ = fmt.Fprintf(&b, "-- %s (%.2f)\n%s\n\n", m.Description, m.Version, m.Script)
	}
	return b.String()
}

// VerifyApplicationID accepts empty databases and showcase mirrors.
// Anything else yields ErrInvalidDatabase.
func VerifyApplicationID(db *sql.DB) error {
	var appID int
	if err := db.QueryRow("PRAGMA application_id;").Scan(&appID); err != nil {
		return fmt.Errorf("read application_id: %w", err)
	}

	switch {
	case appID == ApplicationID:
		return nil
	case appID != 0:
		return fmt.Errorf("%w (application_id 0x%X)", ErrInvalidDatabase, appID)
	}

	var tableCount int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check tables: %w", err)
	}
	if tableCount > 0 {
		return fmt.Errorf("%w (has tables but no application_id)", ErrInvalidDatabase)
	}

	return nil
}

// RunMigrations applies all migrations to an already-open *sql.DB.
func RunMigrations(db *sql.DB) error {
	if err := VerifyApplicationID(db); err != nil {
		return err
	}

	count, v1, err := currentVersion(db)
	if err != nil {
		return err
	}

	migrations := minifiedMigrations()
	if count == len(migrations) && v1 == migrations[count-1].Version {
		logx.Debug().Float64("version", v1).Msg("database schema is current")
		return nil
	}

	driver := darwin.NewGenericDriver(db, darwin.SqliteDialect{})
	infoChan := make(chan darwin.MigrationInfo, len(migrations))
	d := darwin.New(driver, migrations, infoChan)

	var v2 float64
	if err := d.Migrate(); err != nil {
		close(infoChan)
		_, v2, _ = currentVersion(db)
		prog := progress(infoChan)
		logx.Error().Err(err).Float64("from", v1).Float64("to", v2).Str("progress", prog).Msg("migration failed")
		return fmt.Errorf("migration error: %w\n%s", err, prog)
	}
	close(infoChan)

	_, v2, err = currentVersion(db)
	if err != nil {
		return err
	}

	logx.Info().Msg(changes(v1, v2))
	return nil
}
