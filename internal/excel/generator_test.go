package excel

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/supply-agreements/internal/model"
)

func sampleAgreement() model.AgreementView {
	status := "active"
	return model.AgreementView{
		ID: 1,
		Supplier: model.UserView{
			Name:         "Aigerim Seitova",
			Organization: model.Organization{Name: "Northern Steel Group"},
		},
		Customer: model.UserView{
			Name:         "Oleg Bector",
			Organization: model.Organization{Name: "Baltic Construction"},
		},
		SupplierWarehouse: model.Warehouse{Name: "Mill Yard"},
		CustomerWarehouse: model.Warehouse{Name: "Harbor Depot"},
		Status:            &status,
		Materials: []model.MaterialLine{
			{Material: model.Material{ID: 3, Name: "Steel rebar", Unit: "t"}, Amount: 100},
			{Material: model.Material{ID: 4, Name: "Copper wire", Unit: "kg"}, Amount: 2.5},
		},
	}
}

func TestGenerateWorkbook(t *testing.T) {
	generator := NewGenerator()

	content, err := generator.Generate([]model.AgreementView{sampleAgreement()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("empty workbook")
	}

	file, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer file.Close()

	supplier, err := file.GetCellValue("Agreements", "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if supplier != "Aigerim Seitova" {
		t.Fatalf("expected supplier name in B2, got %q", supplier)
	}

	material, err := file.GetCellValue("Materials", "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if material != "Steel rebar" {
		t.Fatalf("expected material name in B2, got %q", material)
	}
}

func TestGenerateEmptyRegister(t *testing.T) {
	generator := NewGenerator()

	content, err := generator.Generate(nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("empty workbook")
	}
}
