package production

import (
	"fmt"
	"strings"
)

const (
	// BleedCM is added on every side of the finished size
	BleedCM = 2.0
	// CutLineColor is the stroke colour of the trim rectangle
	CutLineColor = "#FF0000"
	// CutLineWidthPt is the stroke width of the trim rectangle in points
	CutLineWidthPt = 1.0
	// LabelFont is the font family of the job label
	LabelFont = "Helvetica"
	// LabelFontSizePt is the label font size in points
	LabelFontSizePt = 12.0
	// LabelLeftCM is the distance of the label from the left page edge
	LabelLeftCM = 2.0
	// UnknownSKU is printed when a line item has no SKU
	UnknownSKU = "UNKNOWN"
)

// labelOffsetsCM are the distances of the label baselines from the top edge
var labelOffsetsCM = [3]float64{2.0, 2.5, 3.0}

// Rect is a rectangle in centimetres with its origin at the bottom-left
// corner of the page
type Rect struct {
	XCM      float64 `json:"x_cm"`
	YCM      float64 `json:"y_cm"`
	WidthCM  float64 `json:"width_cm"`
	HeightCM float64 `json:"height_cm"`
}

// TextLine is one label line; BaselineCM is measured from the bottom edge
type TextLine struct {
	XCM        float64 `json:"x_cm"`
	BaselineCM float64 `json:"baseline_cm"`
	Text       string  `json:"text"`
}

// Sheet is the full layout of one production PDF page
type Sheet struct {
	Reference  string     `json:"reference"`
	SKU        string     `json:"sku"`
	ItemIndex  int        `json:"item_index"`
	Size       Dimensions `json:"size"`
	BleedCM    float64    `json:"bleed_cm"`
	PageWidth  float64    `json:"page_width_cm"`
	PageHeight float64    `json:"page_height_cm"`
	CutLine    Rect       `json:"cut_line"`
	Lines      []TextLine `json:"lines"`
	ImageURL   string     `json:"image_url,omitempty"`
}

// SheetSpec is what a sheet is built from
type SheetSpec struct {
	Reference string
	SKU       string
	ItemIndex int
	Variant   string
	ImageURL  string
}

// NewSheet lays out a production sheet for one order line
func NewSheet(spec SheetSpec) Sheet {
	sku := strings.TrimSpace(spec.SKU)
	if sku == "" {
		sku = UnknownSKU
	}
	size := ParseDimensions(spec.Variant)
	pageW := size.WidthCM + 2*BleedCM
	pageH := size.HeightCM + 2*BleedCM

	texts := [3]string{
		"Order: " + spec.Reference,
		"SKU: " + sku,
		fmt.Sprintf("Size: %s cm (+%scm bleed)", size.String(), formatCM(BleedCM)),
	}
	lines := make([]TextLine, 0, len(texts))
	for i, text := range texts {
		lines = append(lines, TextLine{
			XCM:        LabelLeftCM,
			BaselineCM: pageH - labelOffsetsCM[i],
			Text:       text,
		})
	}

	return Sheet{
		Reference:  spec.Reference,
		SKU:        sku,
		ItemIndex:  spec.ItemIndex,
		Size:       size,
		BleedCM:    BleedCM,
		PageWidth:  pageW,
		PageHeight: pageH,
		CutLine: Rect{
			XCM:      BleedCM,
			YCM:      BleedCM,
			WidthCM:  size.WidthCM,
			HeightCM: size.HeightCM,
		},
		Lines:    lines,
		ImageURL: spec.ImageURL,
	}
}

// FileName is "<reference>_<sku>_<index>.pdf" with path separators removed
func (s Sheet) FileName() string {
	name := fmt.Sprintf("%s_%s_%d.pdf", s.Reference, s.SKU, s.ItemIndex)
	return strings.NewReplacer("/", "-", "\\", "-", "..", "-").Replace(name)
}
