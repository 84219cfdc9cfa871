package excel

import (
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/supply-agreements/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the hydrated agreement register as a two-sheet workbook:
// one row per agreement plus a sheet of material lines.
func (g *Generator) Generate(agreements []model.AgreementView) ([]byte, error) {
	file := excelize.NewFile()

	registerSheet := "Agreements"
	file.SetSheetName("Sheet1", registerSheet)
	if err := g.writeRegister(file, registerSheet, agreements); err != nil {
		return nil, err
	}

	materialSheet := "Materials"
	if _, err := file.NewSheet(materialSheet); err != nil {
		return nil, err
	}
	if err := g.writeMaterials(file, materialSheet, agreements); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeRegister(file *excelize.File, sheet string, agreements []model.AgreementView) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"ID",
		"Supplier",
		"Supplier organization",
		"Customer",
		"Customer organization",
		"Supplier warehouse",
		"Customer warehouse",
		"Status",
		"Material lines",
		"Created at",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, agreement := range agreements {
		row := i + 2
		values := []interface{}{
			agreement.ID,
			agreement.Supplier.Name,
			agreement.Supplier.Organization.Name,
			agreement.Customer.Name,
			agreement.Customer.Organization.Name,
			agreement.SupplierWarehouse.Name,
			agreement.CustomerWarehouse.Name,
			statusLabel(agreement.Status),
			len(agreement.Materials),
			formatTimestamp(agreement.CreatedAt),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			set(cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "B", "G", 30)
	_ = file.SetColWidth(sheet, "H", "J", 16)
	return nil
}

func (g *Generator) writeMaterials(file *excelize.File, sheet string, agreements []model.AgreementView) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Agreement ID", "Material", "Unit", "Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	row := 2
	for _, agreement := range agreements {
		for _, line := range agreement.Materials {
			values := []interface{}{
				agreement.ID,
				line.Material.Name,
				line.Material.Unit,
				line.Amount,
			}
			for j, value := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, row)
				set(cell, value)
			}
			row++
		}
	}

	_ = file.SetColWidth(sheet, "B", "B", 40)
	return nil
}

func statusLabel(status *string) string {
	if status == nil {
		return ""
	}
	return *status
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
