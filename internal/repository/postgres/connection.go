package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"luman/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	DB     repositories.DBTX
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Organizations string
	Members       string
	Workspaces    string
	Folders       string
	Notes         string
	Tasks         string
	Events        string
	ChatMessages  string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Organizations: prefix + "organizations",
		Members:       prefix + "organization_members",
		Workspaces:    prefix + "workspaces",
		Folders:       prefix + "workspace_folders",
		Notes:         prefix + "notes",
		Tasks:         prefix + "tasks",
		Events:        prefix + "events",
		ChatMessages:  prefix + "chat_messages",
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Supabase's transaction pooler (port 6543) does not support prepared
// statements, so when it is detected the pool switches to
// QueryExecModeCacheDescribe, which uses the extended protocol (needed for
// proper JSONB encoding of map[string]interface{}) without creating
// prepared statements. An explicit default_query_exec_mode in the
// connection string takes precedence.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction;
// otherwise the provided database handle. This lets repositories
// automatically participate in transactions when they exist.
func GetExecutor(ctx context.Context, db repositories.DBTX) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return db
}
