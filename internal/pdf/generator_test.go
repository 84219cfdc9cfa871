package pdf

import (
	"bytes"
	"testing"

	"github.com/nurpe/supply-agreements/internal/model"
)

func TestGenerateAgreementForm(t *testing.T) {
	generator := NewGenerator()
	status := "active"

	content, err := generator.Generate(model.AgreementView{
		ID: 12,
		Supplier: model.UserView{
			Name:         "Aigerim Seitova",
			Email:        "aigerim@northsteel.example",
			Organization: model.Organization{Name: "Northern Steel Group"},
		},
		Customer: model.UserView{
			Name:         "Oleg Bector",
			Organization: model.Organization{Name: "Baltic Construction"},
		},
		SupplierWarehouse: model.Warehouse{Name: "Mill Yard", Address: "1 Mill Rd"},
		CustomerWarehouse: model.Warehouse{Name: "Harbor Depot", Address: "8 Harbor St"},
		Status:            &status,
		Materials: []model.MaterialLine{
			{Material: model.Material{Name: "Steel rebar", Unit: "t"}, Amount: 100},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		t.Fatal("output is not a pdf document")
	}
}

func TestGenerateWithoutMaterials(t *testing.T) {
	generator := NewGenerator()

	content, err := generator.Generate(model.AgreementView{
		ID:        5,
		Supplier:  model.UserView{Name: "S"},
		Customer:  model.UserView{Name: "C"},
		Materials: []model.MaterialLine{},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("empty pdf")
	}
}
