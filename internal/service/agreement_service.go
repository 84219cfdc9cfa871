package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/supply-agreements/internal/apperr"
	"github.com/nurpe/supply-agreements/internal/model"
	"github.com/nurpe/supply-agreements/internal/repository"
	"github.com/nurpe/supply-agreements/internal/search"
)

type ExcelGenerator interface {
	Generate(agreements []model.AgreementView) ([]byte, error)
}

type PDFGenerator interface {
	Generate(agreement model.AgreementView) ([]byte, error)
}

type AgreementService struct {
	repo   *repository.AgreementRepository
	refs   *repository.ReferenceRepository
	ranker *search.Ranker
	excel  ExcelGenerator
	pdf    PDFGenerator
}

func NewAgreementService(
	repo *repository.AgreementRepository,
	refs *repository.ReferenceRepository,
	ranker *search.Ranker,
	excel ExcelGenerator,
	pdf PDFGenerator,
) *AgreementService {
	return &AgreementService{
		repo:   repo,
		refs:   refs,
		ranker: ranker,
		excel:  excel,
		pdf:    pdf,
	}
}

type CreateAgreementInput struct {
	SupplierID          int64
	CustomerID          int64
	SupplierWarehouseID int64
	CustomerWarehouseID int64
	Status              *string
}

type UpdateAgreementInput struct {
	SupplierID          *int64
	CustomerID          *int64
	SupplierWarehouseID *int64
	CustomerWarehouseID *int64
	Status              *string
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *AgreementService) List(ctx context.Context) ([]model.AgreementView, error) {
	return s.repo.FindAll(ctx)
}

func (s *AgreementService) Get(ctx context.Context, id int64) (*model.AgreementView, error) {
	if id <= 0 {
		return nil, apperr.Invalidf("id must be a positive integer, got %d", id)
	}
	view, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("agreement %d does not exist", id)
		}
		return nil, err
	}
	return view, nil
}

// Create validates the four foreign references in a fixed order, then writes
// the agreement row and its material set in one transaction and returns the
// fresh hydrated view. Material elements are validated inside the
// transaction, so a bad element rolls back the whole write.
func (s *AgreementService) Create(ctx context.Context, input CreateAgreementInput, materials []repository.MaterialInput) (*model.AgreementView, error) {
	references := []struct {
		field string
		id    int64
		check func(context.Context, int64) (bool, error)
	}{
		{"supplier_id", input.SupplierID, s.refs.UserExists},
		{"customer_id", input.CustomerID, s.refs.UserExists},
		{"supplier_warehouse_id", input.SupplierWarehouseID, s.refs.WarehouseExists},
		{"customer_warehouse_id", input.CustomerWarehouseID, s.refs.WarehouseExists},
	}
	for _, ref := range references {
		if err := s.checkReference(ctx, ref.field, ref.id, ref.check); err != nil {
			return nil, err
		}
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, model.Agreement{
		SupplierID:          input.SupplierID,
		CustomerID:          input.CustomerID,
		SupplierWarehouseID: input.SupplierWarehouseID,
		CustomerWarehouseID: input.CustomerWarehouseID,
		Status:              status,
	}, materials)
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Update applies the supplied subset of scalar fields and, when materials is
// non-nil, replaces the association set. Supplying neither is an error.
func (s *AgreementService) Update(ctx context.Context, id int64, input UpdateAgreementInput, materials *[]repository.MaterialInput) (*model.AgreementView, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})

	optional := []struct {
		field string
		id    *int64
		check func(context.Context, int64) (bool, error)
	}{
		{"supplier_id", input.SupplierID, s.refs.UserExists},
		{"customer_id", input.CustomerID, s.refs.UserExists},
		{"supplier_warehouse_id", input.SupplierWarehouseID, s.refs.WarehouseExists},
		{"customer_warehouse_id", input.CustomerWarehouseID, s.refs.WarehouseExists},
	}
	for _, ref := range optional {
		if ref.id == nil {
			continue
		}
		if err := s.checkReference(ctx, ref.field, *ref.id, ref.check); err != nil {
			return nil, err
		}
		fields[ref.field] = *ref.id
	}

	if input.Status != nil {
		status, err := normalizeStatus(input.Status)
		if err != nil {
			return nil, err
		}
		fields["status"] = *status
	}

	if len(fields) == 0 && materials == nil {
		return nil, apperr.Invalidf("nothing to update")
	}

	if err := s.repo.Update(ctx, id, fields, materials); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes the agreement and its associations and returns the view as
// it was before deletion. A second delete of the same id reports not-found.
func (s *AgreementService) Delete(ctx context.Context, id int64) (*model.AgreementView, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("agreement %d does not exist", id)
		}
		return nil, err
	}
	return view, nil
}

// Search ranks the full hydrated collection against a free-text query. An
// empty or whitespace-only query is rejected; a query matching nothing
// returns an empty slice.
func (s *AgreementService) Search(ctx context.Context, query string) ([]model.AgreementView, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.Invalidf("search query must not be empty")
	}
	views, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.ranker.Rank(query, views), nil
}

// ExportExcel renders the full hydrated register as a workbook.
func (s *AgreementService) ExportExcel(ctx context.Context) (*ExportResult, error) {
	views, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(views)
	if err != nil {
		return nil, fmt.Errorf("generate workbook: %w", err)
	}
	fileName := fmt.Sprintf("agreements-%s.xlsx", time.Now().UTC().Format("20060102"))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

// ExportPDF renders one agreement as a printable form.
func (s *AgreementService) ExportPDF(ctx context.Context, id int64) (*ExportResult, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*view)
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return &ExportResult{FileName: fmt.Sprintf("agreement-%d.pdf", id), Content: content}, nil
}

func (s *AgreementService) checkReference(ctx context.Context, field string, id int64, check func(context.Context, int64) (bool, error)) error {
	if id <= 0 {
		return apperr.Invalidf("%s must be a positive integer, got %d", field, id)
	}
	ok, err := check(ctx, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if !ok {
		return apperr.NotFoundf("%s %d does not exist", field, id)
	}
	return nil
}

func normalizeStatus(status *string) (*string, error) {
	if status == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*status)
	if trimmed == "" {
		return nil, apperr.Invalidf("status must not be empty")
	}
	return status, nil
}
