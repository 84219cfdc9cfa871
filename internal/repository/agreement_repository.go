package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/supply-agreements/internal/apperr"
	"github.com/nurpe/supply-agreements/internal/model"
)

// MaterialInput is one requested {material_id, amount} pair of an agreement
// write.
type MaterialInput struct {
	MaterialID int64   `json:"material_id"`
	Amount     float64 `json:"amount"`
}

// AgreementRepository persists the agreement aggregate. Every write runs as
// one transaction covering the agreement row and its complete material
// association set; a failure at any statement rolls the whole call back.
type AgreementRepository struct {
	db *gorm.DB
}

func NewAgreementRepository(db *gorm.DB) *AgreementRepository {
	return &AgreementRepository{db: db}
}

// Create inserts the agreement row and its material associations in one
// transaction and returns the new id.
func (r *AgreementRepository) Create(ctx context.Context, agreement model.Agreement, materials []MaterialInput) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&agreement).Error; err != nil {
			return apperr.Storage(err)
		}
		return replaceMaterials(tx, agreement.ID, materials, false)
	})
	if err != nil {
		return 0, err
	}
	return agreement.ID, nil
}

// Update applies the supplied scalar columns and, when materials is non-nil,
// replaces the complete association set, all in one transaction. A nil
// materials pointer leaves the existing set untouched; an empty list clears
// it.
func (r *AgreementRepository) Update(ctx context.Context, id int64, fields map[string]interface{}, materials *[]MaterialInput) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			fields["updated_at"] = time.Now().UTC()
			if err := tx.Model(&model.Agreement{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return apperr.Storage(err)
			}
		} else if materials != nil {
			if err := tx.Model(&model.Agreement{}).Where("id = ?", id).
				Update("updated_at", time.Now().UTC()).Error; err != nil {
				return apperr.Storage(err)
			}
		}
		if materials != nil {
			return replaceMaterials(tx, id, *materials, true)
		}
		return nil
	})
}

// Delete removes the agreement and its associations as one unit. Returns
// gorm.ErrRecordNotFound when the id does not exist, so a repeated delete of
// the same id always fails.
func (r *AgreementRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("agreement_id = ?", id).Delete(&model.AgreementMaterial{}).Error; err != nil {
			return apperr.Storage(err)
		}
		result := tx.Where("id = ?", id).Delete(&model.Agreement{})
		if result.Error != nil {
			return apperr.Storage(result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// replaceMaterials validates and inserts the association set for one
// agreement inside the caller's transaction. Elements are processed in list
// order and the first failing element aborts the whole write.
func replaceMaterials(tx *gorm.DB, agreementID int64, materials []MaterialInput, clearExisting bool) error {
	if clearExisting {
		if err := tx.Where("agreement_id = ?", agreementID).Delete(&model.AgreementMaterial{}).Error; err != nil {
			return apperr.Storage(err)
		}
	}
	for _, input := range materials {
		if input.MaterialID <= 0 {
			return apperr.Invalidf("material_id must be a positive integer, got %d", input.MaterialID)
		}
		if input.Amount <= 0 {
			return apperr.Invalidf("material %d: amount must be strictly positive, got %v", input.MaterialID, input.Amount)
		}
		var count int64
		if err := tx.Model(&model.Material{}).Where("id = ?", input.MaterialID).Count(&count).Error; err != nil {
			return apperr.Storage(err)
		}
		if count == 0 {
			return apperr.NotFoundf("material %d does not exist", input.MaterialID)
		}
		association := model.AgreementMaterial{
			AgreementID: agreementID,
			MaterialID:  input.MaterialID,
			Amount:      input.Amount,
		}
		if err := tx.Create(&association).Error; err != nil {
			return apperr.Storage(err)
		}
	}
	return nil
}

// agreementRow is the flat scan target of the hydration join.
type agreementRow struct {
	ID                  int64
	SupplierID          int64
	CustomerID          int64
	SupplierWarehouseID int64
	CustomerWarehouseID int64
	Status              *string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	SupplierName       string
	SupplierEmail      string
	SupplierPhone      string
	SupplierOrgID      int64
	SupplierOrgName    string
	SupplierOrgAddress string
	SupplierOrgPhone   string
	SupplierOrgEmail   string

	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	CustomerOrgID      int64
	CustomerOrgName    string
	CustomerOrgAddress string
	CustomerOrgPhone   string
	CustomerOrgEmail   string

	SupplierWhName    string
	SupplierWhAddress string
	SupplierWhOrgID   int64
	CustomerWhName    string
	CustomerWhAddress string
	CustomerWhOrgID   int64
}

const hydrationSelect = `
	SELECT
		a.id,
		a.supplier_id,
		a.customer_id,
		a.supplier_warehouse_id,
		a.customer_warehouse_id,
		a.status,
		a.created_at,
		a.updated_at,
		su.name AS supplier_name,
		su.email AS supplier_email,
		su.phone AS supplier_phone,
		so.id AS supplier_org_id,
		so.name AS supplier_org_name,
		so.address AS supplier_org_address,
		so.phone AS supplier_org_phone,
		so.email AS supplier_org_email,
		cu.name AS customer_name,
		cu.email AS customer_email,
		cu.phone AS customer_phone,
		co.id AS customer_org_id,
		co.name AS customer_org_name,
		co.address AS customer_org_address,
		co.phone AS customer_org_phone,
		co.email AS customer_org_email,
		sw.name AS supplier_wh_name,
		sw.address AS supplier_wh_address,
		sw.organization_id AS supplier_wh_org_id,
		cw.name AS customer_wh_name,
		cw.address AS customer_wh_address,
		cw.organization_id AS customer_wh_org_id
	FROM agreements a
	JOIN users su ON su.id = a.supplier_id
	JOIN organizations so ON so.id = su.organization_id
	JOIN users cu ON cu.id = a.customer_id
	JOIN organizations co ON co.id = cu.organization_id
	JOIN warehouses sw ON sw.id = a.supplier_warehouse_id
	JOIN warehouses cw ON cw.id = a.customer_warehouse_id
`

// FindAll returns every agreement fully hydrated, ordered by id. An empty
// store yields an empty slice.
func (r *AgreementRepository) FindAll(ctx context.Context) ([]model.AgreementView, error) {
	var rows []agreementRow
	if err := r.db.WithContext(ctx).Raw(hydrationSelect + " ORDER BY a.id ASC").Scan(&rows).Error; err != nil {
		return nil, apperr.Storage(err)
	}

	views := make([]model.AgreementView, 0, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.toView())
		ids = append(ids, row.ID)
	}
	if len(ids) == 0 {
		return views, nil
	}

	lines, err := r.materialLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range views {
		if grouped, ok := lines[views[i].ID]; ok {
			views[i].Materials = grouped
		}
	}
	return views, nil
}

// FindByID returns one hydrated agreement or gorm.ErrRecordNotFound.
func (r *AgreementRepository) FindByID(ctx context.Context, id int64) (*model.AgreementView, error) {
	var row agreementRow
	if err := r.db.WithContext(ctx).Raw(hydrationSelect+" WHERE a.id = ? LIMIT 1", id).Scan(&row).Error; err != nil {
		return nil, apperr.Storage(err)
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	view := row.toView()
	lines, err := r.materialLines(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if grouped, ok := lines[id]; ok {
		view.Materials = grouped
	}
	return &view, nil
}

type materialLineRow struct {
	AgreementID int64
	MaterialID  int64
	Amount      float64
	Name        string
	Unit        string
	Description string
}

func (r *AgreementRepository) materialLines(ctx context.Context, agreementIDs []int64) (map[int64][]model.MaterialLine, error) {
	var rows []materialLineRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			am.agreement_id,
			am.material_id,
			am.amount,
			m.name,
			m.unit,
			m.description
		FROM agreement_materials am
		JOIN materials m ON m.id = am.material_id
		WHERE am.agreement_id IN ?
		ORDER BY am.agreement_id ASC, am.material_id ASC
	`, agreementIDs).Scan(&rows).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}

	grouped := make(map[int64][]model.MaterialLine, len(agreementIDs))
	for _, row := range rows {
		grouped[row.AgreementID] = append(grouped[row.AgreementID], model.MaterialLine{
			Material: model.Material{
				ID:          row.MaterialID,
				Name:        row.Name,
				Unit:        row.Unit,
				Description: row.Description,
			},
			Amount: row.Amount,
		})
	}
	return grouped, nil
}

func (row agreementRow) toView() model.AgreementView {
	return model.AgreementView{
		ID: row.ID,
		Supplier: model.UserView{
			ID:    row.SupplierID,
			Name:  row.SupplierName,
			Email: row.SupplierEmail,
			Phone: row.SupplierPhone,
			Organization: model.Organization{
				ID:      row.SupplierOrgID,
				Name:    row.SupplierOrgName,
				Address: row.SupplierOrgAddress,
				Phone:   row.SupplierOrgPhone,
				Email:   row.SupplierOrgEmail,
			},
		},
		Customer: model.UserView{
			ID:    row.CustomerID,
			Name:  row.CustomerName,
			Email: row.CustomerEmail,
			Phone: row.CustomerPhone,
			Organization: model.Organization{
				ID:      row.CustomerOrgID,
				Name:    row.CustomerOrgName,
				Address: row.CustomerOrgAddress,
				Phone:   row.CustomerOrgPhone,
				Email:   row.CustomerOrgEmail,
			},
		},
		SupplierWarehouse: model.Warehouse{
			ID:             row.SupplierWarehouseID,
			OrganizationID: row.SupplierWhOrgID,
			Name:           row.SupplierWhName,
			Address:        row.SupplierWhAddress,
		},
		CustomerWarehouse: model.Warehouse{
			ID:             row.CustomerWarehouseID,
			OrganizationID: row.CustomerWhOrgID,
			Name:           row.CustomerWhName,
			Address:        row.CustomerWhAddress,
		},
		Status:    row.Status,
		Materials: []model.MaterialLine{},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
