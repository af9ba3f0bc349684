package documents

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"vms-admin/internal/models"
)

// PackingSlip is the data printed on one packing slip
type PackingSlip struct {
	StoreName   string
	Order       models.Order
	Bucket      models.Bucket
	GeneratedAt time.Time
}

// ErrNotShippable is returned for orders that are neither to ship nor shipped
var ErrNotShippable = errors.New("packing slips are only available for orders to ship or shipped")

// GeneratePackingSlip renders a single-page PDF for an order
func GeneratePackingSlip(slip PackingSlip) ([]byte, error) {
	if slip.Bucket != models.BucketToShip && slip.Bucket != models.BucketShipped {
		return nil, ErrNotShippable
	}
	if slip.GeneratedAt.IsZero() {
		slip.GeneratedAt = time.Now()
	}

	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	addSlipHeader(m, slip)
	addSlipAddress(m, slip)
	addSlipItem(m, slip)

	pdfDoc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdfDoc.GetBytes(), nil
}

func addSlipHeader(m core.Maroto, slip PackingSlip) {
	m.AddRow(30,
		col.New(6).Add(
			text.New(slip.StoreName, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(slip.GeneratedAt.Format("Jan 02, 2006"), props.Text{
				Size:  9,
				Top:   8,
				Align: align.Left,
			}),
		),
		col.New(6).Add(
			text.New("PACKING SLIP", props.Text{
				Size:  20,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
			text.New(fmt.Sprintf("Order # %d", slip.Order.OrderID), props.Text{
				Size:  10,
				Top:   8,
				Align: align.Right,
			}),
			text.New(fmt.Sprintf("Status: %s", slip.Bucket.DisplayName()), props.Text{
				Size:  10,
				Top:   13,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(5, line.NewCol(12))
}

func addSlipAddress(m core.Maroto, slip PackingSlip) {
	m.AddRow(25,
		col.New(12).Add(
			text.New("SHIP TO:", props.Text{
				Size:  10,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(slip.Order.CustomerName, props.Text{
				Size:  10,
				Top:   5,
				Align: align.Left,
			}),
			text.New(slip.Order.Address, props.Text{
				Size:  9,
				Top:   10,
				Align: align.Left,
			}),
		),
	)
	m.AddRow(5, line.NewCol(12))
}

func addSlipItem(m core.Maroto, slip PackingSlip) {
	headers := []struct {
		label string
		width int
		pos   align.Type
	}{
		{"Product", 5, align.Left},
		{"Category", 2, align.Left},
		{"Size", 1, align.Center},
		{"Qty", 1, align.Center},
		{"Total", 3, align.Right},
	}

	headerCols := make([]core.Col, 0, len(headers))
	for _, h := range headers {
		headerCols = append(headerCols, col.New(h.width).Add(
			text.New(h.label, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: h.pos,
			}),
		))
	}
	m.AddRow(8, headerCols...)
	m.AddRow(2, line.NewCol(12))

	o := slip.Order
	values := []string{o.ProductName, o.Category, o.Size, strconv.Itoa(o.Quantity), o.FormatTotal()}
	valueCols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		valueCols = append(valueCols, col.New(h.width).Add(
			text.New(values[i], props.Text{
				Size:  9,
				Align: h.pos,
			}),
		))
	}
	m.AddRow(8, valueCols...)
	m.AddRow(5, line.NewCol(12))
}
