package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/podplatform/backend/internal/domain/production"
)

// SVG uses a top-left origin, the sheet a bottom-left one, so every y is
// flipped against the page height.
var sheetTemplate = template.Must(template.New("sheet").Funcs(template.FuncMap{
	"cm": formatNumber,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Sheet.Reference}} {{.Sheet.SKU}}</title>
<style>
@page { size: {{cm .Sheet.PageWidth}}cm {{cm .Sheet.PageHeight}}cm; margin: 0; }
html, body { margin: 0; padding: 0; }
svg { display: block; }
</style>
</head>
<body>
<svg xmlns="http://www.w3.org/2000/svg" width="{{cm .Sheet.PageWidth}}cm" height="{{cm .Sheet.PageHeight}}cm" viewBox="0 0 {{cm .Sheet.PageWidth}} {{cm .Sheet.PageHeight}}">
{{- if .Sheet.ImageURL}}
<image href="{{.Sheet.ImageURL}}" x="{{cm .Sheet.CutLine.XCM}}" y="{{cm .CutTop}}" width="{{cm .Sheet.CutLine.WidthCM}}" height="{{cm .Sheet.CutLine.HeightCM}}" preserveAspectRatio="xMidYMid slice"/>
{{- end}}
<rect x="{{cm .Sheet.CutLine.XCM}}" y="{{cm .CutTop}}" width="{{cm .Sheet.CutLine.WidthCM}}" height="{{cm .Sheet.CutLine.HeightCM}}" fill="none" stroke="{{.Stroke}}" stroke-width="{{cm .StrokeCM}}"/>
{{- range .Lines}}
<text x="{{cm .X}}" y="{{cm .Y}}" font-family="{{$.Font}}" font-size="{{cm $.FontCM}}">{{.Text}}</text>
{{- end}}
</svg>
</body>
</html>
`))

type sheetLine struct {
	X, Y float64
	Text string
}

type sheetView struct {
	Sheet    production.Sheet
	CutTop   float64
	Stroke   string
	StrokeCM float64
	Font     string
	FontCM   float64
	Lines    []sheetLine
}

// pointsToCM converts typographic points to centimetres
func pointsToCM(pt float64) float64 {
	return pt * 2.54 / 72
}

// SheetHTML renders the sheet as a printable HTML page
func SheetHTML(sheet production.Sheet) (string, error) {
	view := sheetView{
		Sheet:    sheet,
		CutTop:   sheet.PageHeight - sheet.CutLine.YCM - sheet.CutLine.HeightCM,
		Stroke:   production.CutLineColor,
		StrokeCM: pointsToCM(production.CutLineWidthPt),
		Font:     production.LabelFont,
		FontCM:   pointsToCM(production.LabelFontSizePt),
	}
	for _, l := range sheet.Lines {
		view.Lines = append(view.Lines, sheetLine{X: l.XCM, Y: sheet.PageHeight - l.BaselineCM, Text: l.Text})
	}

	var buf bytes.Buffer
	if err := sheetTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render sheet html: %w", err)
	}
	return buf.String(), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
