package sqlite

import "database/sql"

// schema runs on startup to ensure tables exist.
// Child rows reference (owner, invoice_id) and are rewritten on every save.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS invoices (
    owner TEXT NOT NULL,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    date TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (owner, id)
);

CREATE TABLE IF NOT EXISTS invoice_items (
    owner TEXT NOT NULL,
    invoice_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    qty REAL,
    rate REAL,
    discount_percent REAL,
    PRIMARY KEY (owner, invoice_id, position),
    FOREIGN KEY (owner, invoice_id) REFERENCES invoices(owner, id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payments (
    owner TEXT NOT NULL,
    invoice_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    id TEXT NOT NULL,
    narration TEXT NOT NULL,
    amount REAL,
    PRIMARY KEY (owner, invoice_id, position),
    FOREIGN KEY (owner, invoice_id) REFERENCES invoices(owner, id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_invoices_owner ON invoices(owner);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
