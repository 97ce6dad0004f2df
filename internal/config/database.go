package config

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create users table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			avatar_url TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create groups table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS groups (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_by VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			avatar_url TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create group_members table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS group_members (
			group_id VARCHAR(36) NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role VARCHAR(10) NOT NULL,
			family_role VARCHAR(10),
			joined_at TIMESTAMP NOT NULL,
			PRIMARY KEY (group_id, user_id)
		)
	`)
	if err != nil {
		return err
	}

	// Create group_invitations table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS group_invitations (
			id VARCHAR(36) PRIMARY KEY,
			group_id VARCHAR(36) NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			invited_by VARCHAR(36) NOT NULL REFERENCES users(id),
			email VARCHAR(255) NOT NULL,
			role VARCHAR(10) NOT NULL,
			status VARCHAR(10) NOT NULL,
			token VARCHAR(128) UNIQUE NOT NULL,
			family_role VARCHAR(10),
			expires_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create group_transactions table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS group_transactions (
			id VARCHAR(36) PRIMARY KEY,
			group_id VARCHAR(36) NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			created_by VARCHAR(36) NOT NULL REFERENCES users(id),
			category_id VARCHAR(36),
			type VARCHAR(10) NOT NULL,
			amount NUMERIC(14,2) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			transaction_date TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create group_budgets table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS group_budgets (
			id VARCHAR(36) PRIMARY KEY,
			group_id VARCHAR(36) NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			created_by VARCHAR(36) NOT NULL REFERENCES users(id),
			category_id VARCHAR(36),
			name VARCHAR(255) NOT NULL,
			amount NUMERIC(14,2) NOT NULL,
			period VARCHAR(10) NOT NULL,
			start_date TIMESTAMP NOT NULL,
			end_date TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create activity_log table (append-only)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS activity_log (
			id VARCHAR(36) PRIMARY KEY,
			group_id VARCHAR(36) NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			user_id VARCHAR(36) NOT NULL,
			action VARCHAR(40) NOT NULL,
			entity_type VARCHAR(20) NOT NULL,
			entity_id VARCHAR(36),
			details JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Server-side invite token generation; the application falls back to a
	// local token when this function is missing or fails.
	_, err = db.Exec(`
		CREATE OR REPLACE FUNCTION generate_invite_token() RETURNS TEXT AS $$
			SELECT encode(gen_random_bytes(32), 'hex')
		$$ LANGUAGE SQL VOLATILE
	`)
	if err != nil {
		slog.Warn("failed to create generate_invite_token function", "error", err)
		// Not fatal: invitation issuing degrades to local tokens.
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_group_invitations_email ON group_invitations(email, status)",
		"CREATE INDEX IF NOT EXISTS idx_group_transactions_group ON group_transactions(group_id, transaction_date)",
		"CREATE INDEX IF NOT EXISTS idx_group_budgets_group ON group_budgets(group_id)",
		"CREATE INDEX IF NOT EXISTS idx_activity_log_group ON activity_log(group_id, created_at)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			slog.Warn("failed to create index", "error", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}
