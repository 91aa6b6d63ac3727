package history

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// ledgerVersion is stored in PRAGMA user_version. Bump it when schema.sql
// changes shape.
const ledgerVersion = 1

// ErrSchemaMismatch reports a ledger written by another schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// migrate creates the ledger on a fresh database and refuses one stamped with
// a different version.
func (s *Store) migrate(ctx context.Context) error {
	var found int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&found); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	switch found {
	case ledgerVersion:
		return nil
	case 0:
	default:
		return fmt.Errorf("%w: %s is at version %d, this build expects %d; remove the file to start over",
			ErrSchemaMismatch, s.path, found, ledgerVersion)
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	steps := []string{
		"BEGIN IMMEDIATE",
		schemaSQL,
		fmt.Sprintf("PRAGMA user_version = %d", ledgerVersion),
		"COMMIT",
	}
	for _, step := range steps {
		if _, err := conn.ExecContext(ctx, step); err != nil {
			_, _ = conn.ExecContext(context.WithoutCancel(ctx), "ROLLBACK")
			return fmt.Errorf("create ledger: %w", err)
		}
	}
	return nil
}
