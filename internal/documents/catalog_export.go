package documents

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"vms-admin/internal/models"
)

const (
	productsSheet = "Products"
	summarySheet  = "Summary"
)

var exportHeaders = []string{"productName", "productDescription", "category", "unitPrice", "imageURL"}

func exportRow(p models.Product) []string {
	return []string{
		p.ProductName,
		p.ProductDescription,
		string(p.Category),
		models.FormatPrice(p.UnitPrice),
		p.ImageURL,
	}
}

// WriteCatalogCSV writes one line per product card
func WriteCatalogCSV(w io.Writer, cards []models.Product) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, p := range cards {
		if err := writer.Write(exportRow(p)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCatalogXLSX writes the product cards and the count boxes as a workbook
func WriteCatalogXLSX(w io.Writer, cards []models.Product, summary models.CatalogSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", productsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	// Style for header row
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(productsSheet, cell, header)
		f.SetCellStyle(productsSheet, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(productsSheet, colName, colName, 24)
	}

	for r, p := range cards {
		row := r + 2
		values := []interface{}{p.ProductName, p.ProductDescription, string(p.Category), p.UnitPrice, p.ImageURL}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			f.SetCellValue(productsSheet, cell, v)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	f.SetCellValue(summarySheet, "A1", "Metric")
	f.SetCellValue(summarySheet, "B1", "Count")
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
	f.SetCellValue(summarySheet, "A2", "Total unique products")
	f.SetCellValue(summarySheet, "B2", summary.TotalUniqueProducts)
	f.SetCellValue(summarySheet, "A3", "Unique women products")
	f.SetCellValue(summarySheet, "B3", summary.UniqueWomenProducts)
	for i, c := range models.AllCategories {
		row := i + 4
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), c.DisplayName()+" listings")
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), summary.PerCategory[c])
	}
	f.SetColWidth(summarySheet, "A", "A", 28)
	f.SetColWidth(summarySheet, "B", "B", 12)

	sheetIdx, _ := f.GetSheetIndex(productsSheet)
	f.SetActiveSheet(sheetIdx)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
