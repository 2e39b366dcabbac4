package infra

// pdf.go — Presupuesto en PDF con go-pdf/fpdf, pensado para imprimir o
// compartir por el enlace público. Formato A4 con:
//   - Encabezado con el nombre del comercio
//   - Número, fecha de emisión y fecha de vencimiento
//   - Tabla de ítems (producto, cantidad, precio unitario, subtotal)
//   - Descuento (si corresponde) y total en negrita
//   - Notas al pie

import (
	"bytes"
	"fmt"

	"github.com/mateoadann/ferrerp/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarPresupuestoPDF renders the quote document and returns the raw PDF
// bytes, ready to stream over HTTP or attach to an email.
func GenerarPresupuestoPDF(p *model.Presupuesto, nombreComercio string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, nombreComercio, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Presupuesto "+p.NumeroCompleto(), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Fecha: "+p.Fecha.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Válido hasta: "+p.FechaVencimiento.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if nombre := p.NombreCliente(); nombre != "" {
		pdf.CellFormat(contentW, 5, "Cliente: "+nombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Items table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // producto
	col2 := contentW * 0.14 // cantidad
	col3 := contentW * 0.20 // precio unitario
	col4 := contentW * 0.20 // subtotal

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Cant.", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "P. Unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, d := range p.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		if len(nombre) > 45 {
			nombre = nombre[:44] + "…"
		}
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, d.Cantidad.String(), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+d.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+d.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(col1+col2+col3, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "$"+p.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !p.DescuentoMonto.IsZero() {
		label := fmt.Sprintf("Descuento (%s%%):", p.DescuentoPorcentaje.StringFixed(0))
		pdf.CellFormat(col1+col2+col3, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "-$"+p.DescuentoMonto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, "$"+p.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Notes / footer ────────────────────────────────────────────────────────
	if p.Notas != nil && *p.Notas != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, "Notas: "+*p.Notas, "", "L", false)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5,
		"Presupuesto sin valor fiscal. Los precios pueden variar luego del vencimiento.",
		"", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render presupuesto: %w", err)
	}
	return buf.Bytes(), nil
}
