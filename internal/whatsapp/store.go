package whatsapp

import (
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waLog "go.mau.fi/whatsmeow/util/log"
)

// NewStore opens the whatsmeow credential store. Supported dialects are
// sqlite3 and postgres.
func NewStore(dialect, dsn string) (*sqlstore.Container, error) {
	container, err := sqlstore.New(dialect, dsn, waLog.Noop)
	if err != nil {
		return nil, fmt.Errorf("failed to open whatsapp credential store: %w", err)
	}
	return container, nil
}
