package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scenarios (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL UNIQUE,
    snapshot             TEXT NOT NULL,
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS app_state (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scenarios_updated ON scenarios(updated_at);
`

const lastActiveKey = "last_active_scenario"
