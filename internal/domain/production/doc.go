// Package production describes print-ready production sheets: the page
// geometry with bleed, the red cut line, and the job label printed in the
// top-left corner. Rendering and storage are ports implemented in the
// infrastructure layer.
package production
