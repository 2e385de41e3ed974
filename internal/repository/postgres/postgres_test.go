package postgres

import (
	"io"
	"log/slog"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func newMockConfig(t *testing.T) (pgxmock.PgxPoolIface, *RepositoryConfig) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, &RepositoryConfig{
		DB:     mock,
		Tables: NewTableNames(""),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
