// Package pdf implementa la generación de documentos imprimibles del depósito:
// la etiqueta de bolsón (con código de barras code128) y el remito de despacho.
//
// Layout de la etiqueta (A6 apaisada, una por bolsón):
//
//	┌───────────────────────────────────────┐
//	│  PRODUCTO (grande)                    │
//	│  Peso: NN.NN kg   Precinto: XXXX      │
//	│  ───────────────────────────────────  │
//	│  ║║│║║║│║│║║  (code128)               │
//	│  BOL-20260831-A1B2C3D4                │
//	└───────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/barcode"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Etiqueta de bolsón ────────────────────────────────────────────────────────

// EtiquetaGenerator implementa usecase.EtiquetaPDFGenerator usando Maroto v2.
type EtiquetaGenerator struct{}

// NewEtiquetaGenerator construye el generador.
func NewEtiquetaGenerator() *EtiquetaGenerator { return &EtiquetaGenerator{} }

// GenerateEtiquetaPDF genera la etiqueta del bolsón y devuelve sus bytes.
func (g *EtiquetaGenerator) GenerateEtiquetaPDF(_ context.Context, bolson *entity.Bolson) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Etiqueta "+bolson.Codigo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(14).Add(col.New(12).Add(
		text.New(bolson.Producto, props.Text{
			Style: fontstyle.Bold, Size: 18, Color: colorPrimary, Top: 2,
		}),
	)))
	m.AddRows(row.New(8).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("Peso: %s kg", bolson.Peso.StringFixed(2)),
			props.Text{Size: 11, Top: 1},
		)),
		col.New(6).Add(text.New(
			"Precinto: "+nonEmpty(bolson.Precinto, "—"),
			props.Text{Size: 11, Top: 1, Align: align.Right},
		)),
	))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Fecha: "+bolson.CreatedAt.Format("02/01/2006"), props.Text{
			Size: 8, Color: colorGray, Top: 1,
		}),
	)))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.4}))

	// Código de barras escaneable desde el despacho.
	m.AddRows(row.New(24).Add(col.New(12).Add(
		code.NewBar(bolson.Codigo, props.Barcode{
			Type:    barcode.Code128,
			Percent: 90,
			Center:  true,
		}),
	)))
	m.AddRows(row.New(7).Add(col.New(12).Add(
		text.New(bolson.Codigo, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
