package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		want    Dimensions
	}{
		{"plain", "100x100 cm", Dimensions{100, 100}},
		{"upper case and no space", "50X70CM", Dimensions{50, 70}},
		{"fractional", "50.5x20 cm", Dimensions{50.5, 20}},
		{"spaces around x", " 300 x 250 cm ", Dimensions{300, 250}},
		{"roll label", "Roll (10m)", DefaultDimensions()},
		{"paper size", "A1 Frame", DefaultDimensions()},
		{"three parts", "10x20x30", DefaultDimensions()},
		{"second part not a number", "100xabc", DefaultDimensions()},
		{"zero width", "0x100", DefaultDimensions()},
		{"negative", "-5x100", DefaultDimensions()},
		{"empty", "", DefaultDimensions()},
		{"nan width", "NaNx50 cm", DefaultDimensions()},
		{"nan height", "50xnan", DefaultDimensions()},
		{"infinite width", "infx100 cm", DefaultDimensions()},
		{"signed infinity", "100x+Inf cm", DefaultDimensions()},
		{"overflowing height", "100x1e400", DefaultDimensions()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDimensions(tt.variant))
		})
	}
}

func TestDimensionsString(t *testing.T) {
	assert.Equal(t, "100.0x100.0", Dimensions{100, 100}.String())
	assert.Equal(t, "50.5x70.0", Dimensions{50.5, 70}.String())
}

func TestNewSheet(t *testing.T) {
	t.Run("lays out bleed cut line and label", func(t *testing.T) {
		s := NewSheet(SheetSpec{Reference: "ETSY-123456", SKU: "WL-204", ItemIndex: 0, Variant: "100x100 cm"})

		assert.Equal(t, 104.0, s.PageWidth)
		assert.Equal(t, 104.0, s.PageHeight)
		assert.Equal(t, Rect{XCM: 2, YCM: 2, WidthCM: 100, HeightCM: 100}, s.CutLine)

		require.Len(t, s.Lines, 3)
		assert.Equal(t, "Order: ETSY-123456", s.Lines[0].Text)
		assert.Equal(t, "SKU: WL-204", s.Lines[1].Text)
		assert.Equal(t, "Size: 100.0x100.0 cm (+2.0cm bleed)", s.Lines[2].Text)
		assert.Equal(t, 102.0, s.Lines[0].BaselineCM)
		assert.Equal(t, 101.5, s.Lines[1].BaselineCM)
		assert.Equal(t, 101.0, s.Lines[2].BaselineCM)
		for _, l := range s.Lines {
			assert.Equal(t, LabelLeftCM, l.XCM)
		}
	})

	t.Run("non rectangular page", func(t *testing.T) {
		s := NewSheet(SheetSpec{Reference: "r", SKU: "s", Variant: "50x70 cm"})
		assert.Equal(t, 54.0, s.PageWidth)
		assert.Equal(t, 74.0, s.PageHeight)
	})

	t.Run("missing sku", func(t *testing.T) {
		s := NewSheet(SheetSpec{Reference: "abc", ItemIndex: 2, Variant: "A1 Frame"})
		assert.Equal(t, UnknownSKU, s.SKU)
		assert.Equal(t, "abc_UNKNOWN_2.pdf", s.FileName())
		assert.Equal(t, DefaultDimensions(), s.Size)
	})
}

func TestSheetFileName(t *testing.T) {
	s := NewSheet(SheetSpec{Reference: "SHPFY-1234", SKU: "WL/500", ItemIndex: 1})
	assert.Equal(t, "SHPFY-1234_WL-500_1.pdf", s.FileName())
}
