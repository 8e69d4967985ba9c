// Package export builds the admin console's spreadsheet downloads.
package export

import (
	"bytes"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/clynova/haciendacantabriafrontend-sub002/internal/domain"
)

// ProductsXLSX renders the catalog one row per variant, which is how the
// warehouse reconciles stock.
func ProductsXLSX(products []domain.Product) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Productos")
	if err != nil {
		return nil, err
	}

	headers := []string{
		"ProductID", "Nombre", "Slug", "Categorías",
		"VariantID", "SKU", "Peso", "Unidad",
		"PrecioBase", "Descuento%", "PrecioFinal", "Stock", "Predeterminada",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		for _, v := range p.Variants {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(strings.Join(p.Categories, ","))
			row.AddCell().SetValue(v.ID)
			row.AddCell().SetValue(v.SKU)
			row.AddCell().SetValue(v.Weight.String())
			row.AddCell().SetValue(v.Unit)
			row.AddCell().SetValue(v.BasePrice.String())
			row.AddCell().SetValue(v.DiscountPct.String())
			row.AddCell().SetValue(v.Price().String())
			row.AddCell().SetValue(v.Stock)
			row.AddCell().SetValue(v.IsDefault)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
