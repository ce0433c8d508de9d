package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (*DBConfig, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	sslMode := getEnv("DB_SSLMODE", "disable")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbHost, dbPort, dbUser, dbPassword, dbName, sslMode)

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(ctx context.Context, cfg *DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(ctx, cfg.DSN)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				logg.Info("connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		logg.WithError(err).Warnf("failed to connect to database (attempt %d/%d), retrying in %v", i+1, maxRetries, retryInterval)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// Schema is applied by AutoMigrate. Every statement is idempotent.
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		phone TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('staff', 'admin')) DEFAULT 'staff',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS currency_rates (
		rate_date DATE PRIMARY KEY,
		usd_to_afn NUMERIC(20,4) NOT NULL CHECK (usd_to_afn > 0),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS gold_rates (
		rate_date DATE PRIMARY KEY,
		price_per_ounce_usd NUMERIC(20,4) NOT NULL CHECK (price_per_ounce_usd > 0),
		price_per_gram_afn NUMERIC(20,4),
		source TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS suppliers (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS supplier_purchases (
		id BIGSERIAL PRIMARY KEY,
		supplier_id BIGINT NOT NULL REFERENCES suppliers(id) ON DELETE CASCADE,
		product_name TEXT NOT NULL,
		gram NUMERIC(20,4) NOT NULL,
		karat INT NOT NULL CHECK (karat BETWEEN 1 AND 24),
		pasa NUMERIC(20,4) NOT NULL DEFAULT 0,
		wage NUMERIC(20,4) NOT NULL DEFAULT 0,
		paid NUMERIC(20,4) NOT NULL DEFAULT 0,
		currency VARCHAR(3) NOT NULL CHECK (currency IN ('AFN', 'USD')),
		purchase_date DATE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		product_name TEXT NOT NULL,
		karat INT NOT NULL CHECK (karat BETWEEN 1 AND 24),
		gram NUMERIC(20,4) NOT NULL,
		purchase_price_to_afn NUMERIC(20,4) NOT NULL DEFAULT 0,
		sale_price NUMERIC(20,4),
		currency VARCHAR(3) NOT NULL DEFAULT 'AFN' CHECK (currency IN ('AFN', 'USD')),
		supplier_id BIGINT REFERENCES suppliers(id) ON DELETE SET NULL,
		image_path TEXT,
		thumb_path TEXT,
		sort_order INT NOT NULL DEFAULT 0,
		is_sold BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE SEQUENCE IF NOT EXISTS bell_number_seq;

	CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT REFERENCES customers(id) ON DELETE SET NULL,
		customer_name TEXT NOT NULL,
		customer_phone TEXT NOT NULL DEFAULT '',
		bell_number BIGINT NOT NULL DEFAULT nextval('bell_number_seq'),
		currency VARCHAR(3) NOT NULL CHECK (currency IN ('AFN', 'USD')),
		discount NUMERIC(20,4) NOT NULL DEFAULT 0,
		total_amount NUMERIC(20,4) NOT NULL,
		paid_amount NUMERIC(20,4) NOT NULL DEFAULT 0,
		remaining_amount NUMERIC(20,4) NOT NULL CHECK (remaining_amount >= 0),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transaction_items (
		id BIGSERIAL PRIMARY KEY,
		transaction_id BIGINT NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
		product_id BIGINT REFERENCES products(id) ON DELETE SET NULL,
		product_name TEXT NOT NULL,
		gram NUMERIC(20,4) NOT NULL,
		karat INT NOT NULL,
		purchase_price_to_afn NUMERIC(20,4) NOT NULL DEFAULT 0,
		sale_price NUMERIC(20,4) NOT NULL,
		sale_currency VARCHAR(3) NOT NULL CHECK (sale_currency IN ('AFN', 'USD'))
	);

	CREATE TABLE IF NOT EXISTS payments (
		id BIGSERIAL PRIMARY KEY,
		transaction_id BIGINT NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
		amount NUMERIC(20,4) NOT NULL CHECK (amount > 0),
		currency VARCHAR(3) NOT NULL CHECK (currency IN ('AFN', 'USD')),
		converted_amount NUMERIC(20,4) NOT NULL,
		rate NUMERIC(20,4),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS expenses (
		id BIGSERIAL PRIMARY KEY,
		type VARCHAR(100) NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		price NUMERIC(20,4) NOT NULL CHECK (price > 0),
		currency VARCHAR(3) NOT NULL CHECK (currency IN ('AFN', 'USD')),
		expense_date DATE NOT NULL,
		account_id BIGINT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS repairs (
		id BIGSERIAL PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_phone TEXT NOT NULL DEFAULT '',
		item TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		gram NUMERIC(20,4) NOT NULL DEFAULT 0,
		price NUMERIC(20,4) NOT NULL DEFAULT 0,
		currency VARCHAR(3) NOT NULL CHECK (currency IN ('AFN', 'USD')),
		status VARCHAR(20) NOT NULL DEFAULT 'received' CHECK (status IN ('received', 'in_progress', 'ready', 'delivered')),
		received_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		delivered_at TIMESTAMP WITH TIME ZONE
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at);
	CREATE INDEX IF NOT EXISTS idx_transactions_customer_id ON transactions(customer_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_remaining ON transactions(remaining_amount) WHERE remaining_amount > 0;
	CREATE INDEX IF NOT EXISTS idx_transaction_items_transaction_id ON transaction_items(transaction_id);
	CREATE INDEX IF NOT EXISTS idx_payments_transaction_id ON payments(transaction_id);
	CREATE INDEX IF NOT EXISTS idx_expenses_expense_date ON expenses(expense_date);
	CREATE INDEX IF NOT EXISTS idx_products_is_sold ON products(is_sold);
	CREATE INDEX IF NOT EXISTS idx_supplier_purchases_supplier_id ON supplier_purchases(supplier_id);

	CREATE OR REPLACE FUNCTION update_updated_at_column()
	RETURNS TRIGGER AS $$
	BEGIN
	   NEW.updated_at = NOW();
	   RETURN NEW;
	END;
	$$ language 'plpgsql';

	DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM pg_trigger
			WHERE tgname = 'set_transactions_updated_at' AND tgrelid = 'transactions'::regclass
		) THEN
			CREATE TRIGGER set_transactions_updated_at
			BEFORE UPDATE ON transactions
			FOR EACH ROW
			EXECUTE FUNCTION update_updated_at_column();
		END IF;
		IF NOT EXISTS (
			SELECT 1 FROM pg_trigger
			WHERE tgname = 'set_products_updated_at' AND tgrelid = 'products'::regclass
		) THEN
			CREATE TRIGGER set_products_updated_at
			BEFORE UPDATE ON products
			FOR EACH ROW
			EXECUTE FUNCTION update_updated_at_column();
		END IF;
	END
	$$;
`

// Execer is the part of a pool AutoMigrate needs
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	logg.Info("AutoMigrate applied successfully")
	return nil
}
