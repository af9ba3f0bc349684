package documents

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"vms-admin/internal/models"
)

func sampleCards() []models.Product {
	return []models.Product{
		{ProductName: "Oxford", ProductDescription: "Brown leather", Category: models.CategoryMen, UnitPrice: 120.5, ImageURL: "http://127.0.0.1:8001/img/oxford.png"},
		{ProductName: "Flat", ProductDescription: "Ballet flat", Category: models.CategoryWomen, UnitPrice: 80, ImageURL: "http://127.0.0.1:8001/img/flat.png"},
	}
}

// ===========================================
// Catalog export
// ===========================================

func TestWriteCatalogCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCatalogCSV(&buf, sampleCards()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, []string{"Oxford", "Brown leather", "men", "120.5", "http://127.0.0.1:8001/img/oxford.png"}, records[1])
	assert.Equal(t, "80", records[2][3])
}

func TestWriteCatalogCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCatalogCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestWriteCatalogXLSX(t *testing.T) {
	summary := models.CatalogSummary{
		TotalUniqueProducts: 2,
		UniqueWomenProducts: 1,
		PerCategory:         map[models.Category]int{models.CategoryMen: 1, models.CategoryWomen: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCatalogXLSX(&buf, sampleCards(), summary))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(productsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "Oxford", rows[1][0])
	assert.Equal(t, "women", rows[2][2])

	total, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	women, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "1", women)
}

// ===========================================
// Packing slip
// ===========================================

func slipOrder() models.Order {
	return models.Order{
		OrderID:      42,
		ProductName:  "Oxford",
		Category:     "men",
		Size:         "9",
		Quantity:     2,
		CustomerName: "Ana Cruz",
		Address:      "12 Rizal St, Manila",
		TotalPrice:   241,
	}
}

func TestGeneratePackingSlip(t *testing.T) {
	for _, bucket := range []models.Bucket{models.BucketToShip, models.BucketShipped} {
		t.Run(string(bucket), func(t *testing.T) {
			pdf, err := GeneratePackingSlip(PackingSlip{
				StoreName:   "VMS Leather Shoes",
				Order:       slipOrder(),
				Bucket:      bucket,
				GeneratedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			})
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
		})
	}
}

func TestGeneratePackingSlip_NotShippable(t *testing.T) {
	for _, bucket := range []models.Bucket{models.BucketPending, models.BucketRejected} {
		pdf, err := GeneratePackingSlip(PackingSlip{StoreName: "VMS", Order: slipOrder(), Bucket: bucket})
		assert.ErrorIs(t, err, ErrNotShippable)
		assert.Nil(t, pdf)
	}
}
