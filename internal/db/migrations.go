package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(512),
		phone VARCHAR(32),
		email VARCHAR(255),
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		organization_id BIGINT NOT NULL REFERENCES organizations(id),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		phone VARCHAR(32),
		password_hash VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (email);`,
	`CREATE INDEX IF NOT EXISTS idx_users_organization_id ON users (organization_id);`,
	`CREATE TABLE IF NOT EXISTS warehouses (
		id BIGSERIAL PRIMARY KEY,
		organization_id BIGINT NOT NULL REFERENCES organizations(id),
		name VARCHAR(255) NOT NULL,
		address VARCHAR(512),
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_warehouses_organization_id ON warehouses (organization_id);`,
	`CREATE TABLE IF NOT EXISTS materials (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		unit VARCHAR(32),
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS agreements (
		id BIGSERIAL PRIMARY KEY,
		supplier_id BIGINT NOT NULL REFERENCES users(id),
		customer_id BIGINT NOT NULL REFERENCES users(id),
		supplier_warehouse_id BIGINT NOT NULL REFERENCES warehouses(id),
		customer_warehouse_id BIGINT NOT NULL REFERENCES warehouses(id),
		status VARCHAR(64),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_agreements_supplier_id ON agreements (supplier_id);`,
	`CREATE INDEX IF NOT EXISTS idx_agreements_customer_id ON agreements (customer_id);`,
	// Association removal is handled by the transactional writer, not by a
	// store-level cascade.
	`CREATE TABLE IF NOT EXISTS agreement_materials (
		agreement_id BIGINT NOT NULL REFERENCES agreements(id),
		material_id BIGINT NOT NULL REFERENCES materials(id),
		amount NUMERIC(18,3) NOT NULL,
		PRIMARY KEY (agreement_id, material_id)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_agreement_materials_material_id ON agreement_materials (material_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
