// Package printing renders production sheets to PDF.
//
// A sheet layout (production.Sheet) is converted to a single-page HTML
// document whose page size equals the sheet size including bleed. The cut
// line and job label are drawn as SVG in centimetres so the PDF matches the
// layout exactly. Headless Chrome, driven through chromedp, prints the page.
package printing
