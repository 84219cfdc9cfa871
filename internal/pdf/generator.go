package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/supply-agreements/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders one agreement as a printable form: parties with their
// organizations, both warehouses, the material table and signature blocks.
func (g *Generator) Generate(agreement model.AgreementView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Supply Agreement No. %d", agreement.ID), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Created %s, status: %s", formatDate(agreement.CreatedAt), statusLabel(agreement.Status)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addPartyBlock(pdf, g.fontName, "Supplier", agreement.Supplier, agreement.SupplierWarehouse)
	pdf.Ln(2)
	addPartyBlock(pdf, g.fontName, "Customer", agreement.Customer, agreement.CustomerWarehouse)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Materials", "", 1, "L", false, 0, "")

	if len(agreement.Materials) == 0 {
		pdf.SetFont(g.fontName, "", 11)
		pdf.CellFormat(0, 6, "No material lines.", "", 1, "L", false, 0, "")
	} else {
		headers := []string{"Material", "Unit", "Amount"}
		colWidths := []float64{110, 30, 40}
		drawTableRow(pdf, g.fontName, headers, colWidths, true)
		for _, line := range agreement.Materials {
			row := []string{
				line.Material.Name,
				safeValue(line.Material.Unit),
				fmt.Sprintf("%.3f", line.Amount),
			}
			drawTableRow(pdf, g.fontName, row, colWidths, false)
		}
	}

	pdf.Ln(6)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Signatures", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)

	signatureBlock(pdf, g.fontName, "Supplier", agreement.Supplier.Name)
	signatureBlock(pdf, g.fontName, "Customer", agreement.Customer.Name)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addPartyBlock(pdf *gofpdf.Fpdf, fontName, title string, party model.UserView, warehouse model.Warehouse) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	lines := []string{
		fmt.Sprintf("%s (%s)", party.Name, party.Organization.Name),
		fmt.Sprintf("Email: %s", safeValue(party.Email)),
		fmt.Sprintf("Phone: %s", safeValue(party.Phone)),
		fmt.Sprintf("Warehouse: %s, %s", warehouse.Name, safeValue(warehouse.Address)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func signatureBlock(pdf *gofpdf.Fpdf, fontName, label, name string) {
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s: ______________________ /%s/", label, safeValue(name)), "", 1, "L", false, 0, "")
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func statusLabel(status *string) string {
	if status == nil || strings.TrimSpace(*status) == "" {
		return "-"
	}
	return *status
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}
