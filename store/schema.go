package store

// embeddedSchema contains the report history schema
const embeddedSchema = `
CREATE TABLE IF NOT EXISTS reports (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    address TEXT NOT NULL,
    property_type TEXT,
    dscr REAL DEFAULT 0.0,
    summary TEXT NOT NULL,

    -- full underwriting record as JSON
    record TEXT NOT NULL,

    -- unix nanoseconds, UTC
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_reports_address ON reports(address);
`
