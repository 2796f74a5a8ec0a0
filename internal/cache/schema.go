package cache

// Schema mirrors the last successful fetch. Rows carry a position column so a
// reload reproduces the backend's original ordering exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS applications (
    id               TEXT PRIMARY KEY,
    company_name     TEXT NOT NULL,
    job_title        TEXT NOT NULL,
    status           TEXT NOT NULL,
    priority         TEXT,
    source           TEXT,
    location         TEXT,
    contact_person   TEXT,
    notes            TEXT,
    applied_date     TEXT,
    last_update_date TEXT,
    interview_date   TEXT,
    urgency_level    TEXT,
    auto_created     INTEGER,
    created_at       TEXT,
    updated_at       TEXT,
    position         INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS emails (
    id             TEXT PRIMARY KEY,
    subject        TEXT NOT NULL,
    sender         TEXT,
    sent_at        TEXT,
    classification TEXT,
    application_id TEXT,
    snippet        TEXT,
    position       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_emails_application ON emails(application_id);

CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
