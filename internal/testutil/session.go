package testutil

import (
	"context"
	"testing"

	"github.com/dracory/weeviz/shared/constants"
	"github.com/dracory/weeviz/shared/session"
)

// NewSeatsSession returns a session with the seats fixture open. When
// statement is not blank it is executed so the session has a result.
func NewSeatsSession(t *testing.T, statement string) *session.Session {
	t.Helper()

	s := session.New()
	t.Cleanup(func() { s.Close() })

	if _, err := s.Open(context.Background(), constants.DriverSQLite, NewSeatsDB(t)); err != nil {
		t.Fatalf("failed to open seats database: %v", err)
	}
	if statement != "" {
		if _, err := s.Execute(context.Background(), statement); err != nil {
			t.Fatalf("failed to execute %q: %v", statement, err)
		}
	}
	return s
}
