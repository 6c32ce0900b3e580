package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema sentencias idempotentes; se ejecutan en orden dentro de una transacción.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		brand       TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		price       NUMERIC(14,2) NOT NULL CHECK (price >= 0),
		stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		image_url   TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		specs       TEXT[] NOT NULL DEFAULT '{}',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category, name)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id_number  TEXT PRIMARY KEY,
		full_name  TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL,
		address    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                 UUID PRIMARY KEY,
		customer_id_number TEXT NOT NULL REFERENCES customers (id_number),
		customer_name      TEXT NOT NULL,
		customer_phone     TEXT NOT NULL,
		total              NUMERIC(14,2) NOT NULL CHECK (total >= 0),
		payment_method     TEXT NOT NULL CHECK (payment_method IN ('in_store', 'mobile_transfer')),
		payment_reference  TEXT NOT NULL DEFAULT '',
		receipt_image      TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'paid', 'delivered', 'canceled')),
		items              JSONB NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`,
	`CREATE TABLE IF NOT EXISTS order_status_history (
		id          UUID PRIMARY KEY,
		order_id    UUID NOT NULL REFERENCES orders (id),
		from_status TEXT NOT NULL,
		to_status   TEXT NOT NULL,
		actor_id    TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history (order_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		full_name     TEXT NOT NULL,
		id_number     TEXT NOT NULL DEFAULT '',
		phone         TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'cliente' CHECK (role IN ('cliente', 'cajero', 'admin')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (lower(email))`,
}

// Migrate crea las tablas de la tienda si no existen.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", translate(err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, stmt := range schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration: %w", translate(err))
	}
	return nil
}
