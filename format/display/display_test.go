package display

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smartcalc/smartcalc/catalog"
	"github.com/smartcalc/smartcalc/types"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default(): %v", err)
	}
	return cat
}

func TestFormatNilItem(t *testing.T) {
	if got := Format(testCatalog(t), nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty string", got)
	}
}

func TestFormatDelegatesToItemPrint(t *testing.T) {
	cat := testCatalog(t)
	num := types.NewNumber(decimal.NewFromInt(1000000))
	if got, want := Format(cat, num), num.Print(cat); got != want {
		t.Errorf("Format(num) = %q, want %q (item's own Print)", got, want)
	}
}
