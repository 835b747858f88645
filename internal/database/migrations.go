package database

// migrationsSQL contains all database migrations, applied in order by
// version number.
var migrationsSQL = map[int]string{
	1: migrationV1DeclaredHolidays,
	2: migrationV2SortIndex,
}

// migrationV1DeclaredHolidays creates the declaration store.
//
// Rows are the flat form of a holiday rule: kind selects which of the
// numeric columns are meaningful and the rest stay 0. The same shape is
// used on the wire by the import file and the admin API.
const migrationV1DeclaredHolidays = `
CREATE TABLE IF NOT EXISTS declared_holidays (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Slug, e.g. "thanksgiving"
    name TEXT NOT NULL UNIQUE,

    kind TEXT NOT NULL CHECK (kind IN (
        'fixed',
        'nth_weekday',
        'last_weekday',
        'easter',
        'computed',
        'hebrew',
        'islamic'
    )),

    month INTEGER NOT NULL DEFAULT 0,
    day INTEGER NOT NULL DEFAULT 0,
    n INTEGER NOT NULL DEFAULT 0,
    weekday INTEGER NOT NULL DEFAULT 0 CHECK (weekday BETWEEN 0 AND 6),
    offset_days INTEGER NOT NULL DEFAULT 0,
    computed_name TEXT NOT NULL DEFAULT '',

    -- Tie-break between holidays falling on the same day
    sort_order INTEGER NOT NULL DEFAULT 0,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// migrationV2SortIndex indexes the declaration listing order.
const migrationV2SortIndex = `
CREATE INDEX IF NOT EXISTS idx_declared_holidays_order
    ON declared_holidays(sort_order, id);
`
