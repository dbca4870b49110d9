package pdf

// Layout del remito (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: REMITO DE DESPACHO  │  N° Orden + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + CUIT + dirección                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Peso (kg) | Precinto            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: N bolsones / NN.NN kg                               │
//	│  Responsable + firmas                                       │
//	└─────────────────────────────────────────────────────────────┘

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
)

// RemitoGenerator implementa despacho.RemitoPDFGenerator usando Maroto v2.
type RemitoGenerator struct{}

// NewRemitoGenerator construye el generador.
func NewRemitoGenerator() *RemitoGenerator { return &RemitoGenerator{} }

// GenerateRemitoPDF genera el remito del despacho y devuelve sus bytes.
func (g *RemitoGenerator) GenerateRemitoPDF(
	_ context.Context,
	despacho *entity.Despacho,
	orden *entity.OrdenVenta,
	cliente *entity.Cliente,
	bolsones []*entity.Bolson,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Remito "+orden.Numero, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(remitoHeaderRow(despacho, orden))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(bolsonTableHeaderRow())
	for _, r := range bolsonDetailRows(bolsones) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(remitoTotalsRow(bolsones))
	m.AddRows(line.NewRow(3))
	m.AddRows(firmasRow(despacho))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar remito: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// remitoHeaderRow: título (izq) y N° de orden + fecha (der).
func remitoHeaderRow(despacho *entity.Despacho, orden *entity.OrdenVenta) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REMITO DE DESPACHO", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Documento no válido como factura", props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Orden "+orden.Numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+despacho.Fecha.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos del destinatario.
func clienteRow(cliente *entity.Cliente) core.Row {
	nombre, cuit, direccion := "—", "—", "—"
	if cliente != nil {
		nombre = cliente.Nombre
		cuit = nonEmpty(cliente.CUIT, "—")
		direccion = nonEmpty(cliente.Direccion, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DESTINATARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nombre, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("CUIT: %s   |   Dirección: %s", cuit, direccion),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// bolsonTableHeaderRow: cabecera de la tabla de bolsones despachados.
func bolsonTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 4, align.Left),
		h("Producto", 4, align.Left),
		h("Peso (kg)", 2, align.Right),
		h("Precinto", 2, align.Right),
	)
}

// bolsonDetailRows: una fila por bolsón del lote.
func bolsonDetailRows(bolsones []*entity.Bolson) []core.Row {
	result := make([]core.Row, 0, len(bolsones))
	for _, b := range bolsones {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(b.Codigo,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(4).Add(text.New(b.Producto,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(b.Peso.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(nonEmpty(b.Precinto, "—"),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// remitoTotalsRow: cantidad de bolsones y peso total del lote.
func remitoTotalsRow(bolsones []*entity.Bolson) core.Row {
	total := decimal.Zero
	for _, b := range bolsones {
		total = total.Add(b.Peso)
	}
	return row.New(10).Add(
		col.New(6),
		col.New(6).Add(
			text.New(fmt.Sprintf("TOTAL: %d bolsones / %s kg", len(bolsones), total.StringFixed(2)),
				props.Text{
					Style: fontstyle.Bold, Size: 10, Align: align.Right,
					Color: colorPrimary, Top: 2, Right: 1,
				}),
		),
	)
}

// firmasRow: responsable del despacho y espacios de firma.
func firmasRow(despacho *entity.Despacho) core.Row {
	return row.New(20).Add(
		col.New(6).Add(
			text.New("Responsable: "+nonEmpty(despacho.Responsable, "—"), props.Text{
				Size: 9, Top: 2,
			}),
			text.New("_____________________", props.Text{Size: 9, Top: 12}),
			text.New("Firma depósito", props.Text{Size: 7, Top: 17, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Observaciones: "+nonEmpty(despacho.Observaciones, "—"), props.Text{
				Size: 9, Top: 2,
			}),
			text.New("_____________________", props.Text{Size: 9, Top: 12, Align: align.Right}),
			text.New("Firma transportista", props.Text{Size: 7, Top: 17, Align: align.Right, Color: colorGray}),
		),
	)
}
