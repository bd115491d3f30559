package db

const schema = `
-- Bulk load settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA temp_store = MEMORY;

-- Pages: one row per <title>, page_id assigned in dump order starting at 1
CREATE TABLE IF NOT EXISTS wikipedia_pages (
    page_id INTEGER PRIMARY KEY,
    title TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pages_title ON wikipedia_pages(title);

-- Links: targets found in the body of a page, link_id keeps body order.
-- page_id is not a foreign key: a body read before any title is tagged 0.
CREATE TABLE IF NOT EXISTS wikipedia_links (
    link_id INTEGER PRIMARY KEY AUTOINCREMENT,
    page_id INTEGER NOT NULL,
    link TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_links_page ON wikipedia_links(page_id);
CREATE INDEX IF NOT EXISTS idx_links_link ON wikipedia_links(link);

-- Runs: one row per completed load
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    input TEXT NOT NULL,
    page_count INTEGER NOT NULL,
    link_count INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`
