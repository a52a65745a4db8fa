package pgdesk

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionDescriptor describes how to reach a database: either an opaque
// connection string or discrete fields.
type ConnectionDescriptor struct {
	ConnString string `json:"conn_string,omitempty"`

	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Database string `json:"database,omitempty"`
	Username string `json:"username,omitempty"`
	SSLMode  string `json:"sslmode,omitempty"`
}

// DSN renders the descriptor as a libpq keyword DSN. When ConnString is set
// it is returned verbatim and password is ignored (assumed embedded).
func (d ConnectionDescriptor) DSN(password string) string {
	if strings.TrimSpace(d.ConnString) != "" {
		return d.ConnString
	}
	host := d.Host
	if host == "" {
		host = "localhost"
	}
	port := d.Port
	if port == 0 {
		port = 5432
	}
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", host, port, d.Database, sslmode)
	if d.Username != "" {
		dsn += " user=" + d.Username
	}
	if password != "" {
		dsn += " password=" + password
	}
	return dsn
}

// OpenPostgres opens a GORM DB for the given DSN with a silent logger.
// Automatic ping is off: the Manager runs its own ping so that failure
// cleanup stays in one place.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	}
	return gorm.Open(postgres.Open(dsn), cfg)
}

// tableColumns reads column metadata for schema.table from
// information_schema, marking primary key members via key_column_usage.
func tableColumns(db *gorm.DB, schema, table string) ([]ColumnDef, error) {
	if schema == "" {
		schema = "public"
	}
	type col struct {
		Name       string
		DataType   string
		IsNullable string
	}
	var cols []col
	err := db.Raw(
		`SELECT column_name AS name, data_type AS data_type, is_nullable AS is_nullable
		 FROM information_schema.columns
		 WHERE table_schema = ? AND table_name = ?
		 ORDER BY ordinal_position`,
		schema, table,
	).Scan(&cols).Error
	if err != nil {
		return nil, err
	}
	type pkRow struct{ Name string }
	var pks []pkRow
	err = db.Raw(
		`SELECT kcu.column_name AS name
		 FROM information_schema.table_constraints tc
		 JOIN information_schema.key_column_usage kcu
		   ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
		 WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema = ? AND tc.table_name = ?`,
		schema, table,
	).Scan(&pks).Error
	if err != nil {
		return nil, err
	}
	pkSet := make(map[string]bool, len(pks))
	for _, p := range pks {
		pkSet[p.Name] = true
	}
	out := make([]ColumnDef, len(cols))
	for i, c := range cols {
		out[i] = ColumnDef{
			Name:       c.Name,
			Type:       c.DataType,
			Nullable:   c.IsNullable == "YES",
			PrimaryKey: pkSet[c.Name],
		}
	}
	return out, nil
}
