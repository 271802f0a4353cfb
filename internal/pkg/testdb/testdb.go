// Package testdb opens in-memory SQLite databases carrying the service schema,
// so repositories and transactions can be exercised without a Postgres server.
package testdb

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE users (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    email       TEXT NOT NULL UNIQUE,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE organizations (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    slug        TEXT NOT NULL UNIQUE,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE members (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    organization_id  TEXT NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
    user_id          TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    role             TEXT NOT NULL DEFAULT 'member',
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (organization_id, user_id)
);

CREATE TABLE crews (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    organization_id  TEXT NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
    member_id        INTEGER REFERENCES members(id) ON DELETE SET NULL,
    name             TEXT,
    role             TEXT,
    status           TEXT NOT NULL DEFAULT 'available',
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE bookings (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    organization_id  TEXT NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
    name             TEXT NOT NULL,
    booking_type     TEXT NOT NULL,
    package_type     TEXT NOT NULL,
    package_cost     REAL NOT NULL DEFAULT 0 CHECK (package_cost >= 0),
    note             TEXT,
    status           TEXT NOT NULL DEFAULT 'active',
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE clients (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    organization_id  TEXT NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
    name             TEXT NOT NULL,
    phone_number     TEXT,
    email            TEXT,
    address          TEXT,
    metadata         TEXT,
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE booking_participants (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    booking_id  INTEGER NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    client_id   INTEGER NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
    role        TEXT NOT NULL,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE shoots (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    booking_id       INTEGER NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    organization_id  TEXT NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
    title            TEXT NOT NULL,
    date             TEXT NOT NULL,
    time             TEXT NOT NULL,
    location         TEXT,
    notes            TEXT,
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE shoot_assignments (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    shoot_id         INTEGER NOT NULL REFERENCES shoots(id) ON DELETE CASCADE,
    crew_id          INTEGER NOT NULL REFERENCES crews(id) ON DELETE CASCADE,
    organization_id  TEXT NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
    is_lead          BOOLEAN NOT NULL DEFAULT 0,
    assigned_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE deliverables (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    booking_id           INTEGER NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    organization_id      TEXT NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
    title                TEXT NOT NULL,
    is_package_included  BOOLEAN NOT NULL DEFAULT 1,
    cost                 REAL NOT NULL DEFAULT 0,
    quantity             INTEGER NOT NULL DEFAULT 1,
    due_date             TEXT,
    created_at           TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE received_amounts (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    booking_id       INTEGER NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    organization_id  TEXT NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
    amount           REAL NOT NULL,
    description      TEXT,
    paid_on          TEXT NOT NULL,
    invoice_id       INTEGER,
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE payment_schedules (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    booking_id       INTEGER NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    organization_id  TEXT NOT NULL REFERENCES organizations(id) ON DELETE CASCADE,
    amount           REAL NOT NULL,
    description      TEXT,
    due_date         TEXT NOT NULL,
    created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

var seq atomic.Int64

// New returns a fresh in-memory database with the schema applied.
// Every call gets its own database; it is closed when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, seq.Add(1))

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// a shared-cache memory database lives as long as one connection does
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("apply schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// Organization inserts an organization and returns its id
func Organization(t testing.TB, db *sqlx.DB, id string) string {
	t.Helper()
	mustExec(t, db, `INSERT INTO organizations (id, name, slug) VALUES (?, ?, ?)`, id, "Studio "+id, id)
	return id
}

// User inserts a user and returns its id
func User(t testing.TB, db *sqlx.DB, id, name string) string {
	t.Helper()
	mustExec(t, db, `INSERT INTO users (id, name, email) VALUES (?, ?, ?)`, id, name, id+"@example.com")
	return id
}

// Member links a user to an organization and returns the membership id
func Member(t testing.TB, db *sqlx.DB, orgID, userID, role string) int64 {
	t.Helper()
	return mustInsert(t, db, `INSERT INTO members (organization_id, user_id, role) VALUES (?, ?, ?)`, orgID, userID, role)
}

// Crew adds a roster entry and returns its id
func Crew(t testing.TB, db *sqlx.DB, orgID, name, role, status string) int64 {
	t.Helper()
	return mustInsert(t, db, `INSERT INTO crews (organization_id, name, role, status) VALUES (?, ?, ?, ?)`, orgID, name, role, status)
}

// MemberCrew adds a roster entry backed by an organization member
func MemberCrew(t testing.TB, db *sqlx.DB, orgID string, memberID int64, role, status string) int64 {
	t.Helper()
	return mustInsert(t, db, `INSERT INTO crews (organization_id, member_id, role, status) VALUES (?, ?, ?, ?)`, orgID, memberID, role, status)
}

// Booking inserts a bare booking row created at createdAt
func Booking(t testing.TB, db *sqlx.DB, orgID, name, packageType string, cost float64, createdAt time.Time) int64 {
	t.Helper()
	return mustInsert(t, db, `
		INSERT INTO bookings (organization_id, name, booking_type, package_type, package_cost, created_at, updated_at)
		VALUES (?, ?, 'wedding', ?, ?, ?, ?)`,
		orgID, name, packageType, cost, createdAt.UTC(), createdAt.UTC())
}

// Count returns the number of rows in table
func Count(t testing.TB, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

// Exec runs a fixture statement
func Exec(t testing.TB, db *sqlx.DB, query string, args ...interface{}) {
	t.Helper()
	mustExec(t, db, query, args...)
}

func mustExec(t testing.TB, db *sqlx.DB, query string, args ...interface{}) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func mustInsert(t testing.TB, db *sqlx.DB, query string, args ...interface{}) int64 {
	t.Helper()
	res, err := db.Exec(query, args...)
	if err != nil {
		t.Fatalf("insert %q: %v", query, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}
