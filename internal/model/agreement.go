package model

import "time"

// Agreement is the root row of the supply agreement aggregate. It references
// the supplier and customer users and one warehouse on each side; the
// associated materials live in agreement_materials and are replaced as a
// whole set on every write that supplies them.
type Agreement struct {
	ID                  int64     `gorm:"primaryKey" json:"id"`
	SupplierID          int64     `gorm:"not null;index" json:"supplier_id"`
	CustomerID          int64     `gorm:"not null;index" json:"customer_id"`
	SupplierWarehouseID int64     `gorm:"not null" json:"supplier_warehouse_id"`
	CustomerWarehouseID int64     `gorm:"not null" json:"customer_warehouse_id"`
	Status              *string   `gorm:"size:64" json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Agreement) TableName() string {
	return "agreements"
}

// AgreementMaterial is one line item of an agreement. The set per agreement
// is owned by the agreement row and deleted with it.
type AgreementMaterial struct {
	AgreementID int64   `gorm:"primaryKey" json:"agreement_id"`
	MaterialID  int64   `gorm:"primaryKey" json:"material_id"`
	Amount      float64 `gorm:"not null" json:"amount"`
}

func (AgreementMaterial) TableName() string {
	return "agreement_materials"
}

// MaterialLine is one resolved {material, amount} pair of a hydrated
// agreement.
type MaterialLine struct {
	Material Material `json:"material"`
	Amount   float64  `json:"amount"`
}

// AgreementView is the hydrated projection returned to callers: the
// agreement row with both parties, their organizations, both warehouses and
// the material lines resolved. Materials is never nil.
type AgreementView struct {
	ID                int64          `json:"id"`
	Supplier          UserView       `json:"supplier"`
	Customer          UserView       `json:"customer"`
	SupplierWarehouse Warehouse      `json:"supplier_warehouse"`
	CustomerWarehouse Warehouse      `json:"customer_warehouse"`
	Status            *string        `json:"status"`
	Materials         []MaterialLine `json:"materials"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
