// Package testutil builds throwaway SQLite databases for tests.
package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// SeatsSchema is a small slice of the airline demo database.
const SeatsSchema = `
	CREATE TABLE aircrafts (aircraft_code TEXT PRIMARY KEY, model TEXT, flight_range INTEGER);
	CREATE TABLE seats (aircraft_code TEXT, seat_no TEXT, fare_conditions TEXT);
	INSERT INTO aircrafts VALUES ('320', 'Airbus A320-200', 5700), ('773', 'Boeing 777-300', 11100);
	INSERT INTO seats VALUES
		('320', '1A', 'Business'), ('320', '1C', 'Business'),
		('320', '10A', 'Economy'), ('320', '10B', 'Economy'), ('320', '10C', 'Economy'),
		('773', '1A', 'Business'),
		('773', '20A', 'Comfort'), ('773', '20B', 'Comfort'),
		('773', '30A', 'Economy'), ('773', '30B', 'Economy'), ('773', '30C', 'Economy'), ('773', '30D', 'Economy');
`

// NewSQLiteFile creates a database file under t.TempDir, runs schema
// against it and returns its path.
func NewSQLiteFile(t *testing.T, schema string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open SQLite database: %v", err)
	}
	defer db.Close()

	if schema != "" {
		if _, err := db.Exec(schema); err != nil {
			t.Fatalf("failed to create test tables: %v", err)
		}
	} else if err := db.Ping(); err != nil {
		t.Fatalf("failed to create SQLite database: %v", err)
	}

	return path
}

// NewSeatsDB creates the seats fixture database.
func NewSeatsDB(t *testing.T) string {
	return NewSQLiteFile(t, SeatsSchema)
}

// NewTextFile creates a file that is not a database.
func NewTextFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("this is not a database, just some text that is long enough"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}
