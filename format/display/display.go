// Package display adapts SmartCalc data items to printable strings for
// the format package's per-formatter renderers.
//
// Every types.Item already knows how to render itself against a
// catalog's locale rules (types.Item.Print), so this package is a thin
// nil-safe wrapper rather than a second formatting layer — it exists so
// format/* formatters have one place to call regardless of whether a
// line produced a value at all.
package display

import (
	"github.com/smartcalc/smartcalc/catalog"
	"github.com/smartcalc/smartcalc/types"
)

// Format renders item using cat's locale rules, or "" for a nil item
// (a blank/comment line, or an errored one).
func Format(cat *catalog.Catalog, item types.Item) string {
	if item == nil {
		return ""
	}
	return item.Print(cat)
}
