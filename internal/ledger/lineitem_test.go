package ledger

import (
	"testing"

	"github.com/prajvalpatil/cashbook-prototype/internal/models"
)

func TestNum(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{" 7 ", 7},
		{"", 0},
		{"abc", 0},
		{"-3", -3},
	}
	for _, tc := range cases {
		if got := Num(tc.in); got != tc.want {
			t.Errorf("Num(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMaterialKind(t *testing.T) {
	cases := []struct {
		item string
		want string
	}{
		{"Steel", KindSteel},
		{"STEEL", KindSteel},
		{"tiles", KindTiles},
		{"Granite", KindGranite},
		{"Cement", KindGeneric},
		{"", KindGeneric},
	}
	for _, tc := range cases {
		if got := MaterialKind(tc.item); got != tc.want {
			t.Errorf("MaterialKind(%q) = %q, want %q", tc.item, got, tc.want)
		}
	}
}

func TestSteelSet_EntryTotal(t *testing.T) {
	set := SteelSet{
		{Diameter: 12, Nos: 10, Kg: 100, Rate: 60},
		{Diameter: 16, Nos: 5, Kg: 50, Rate: 62},
	}

	amount, kg := set.EntryTotal()
	if amount != 100*60+50*62 {
		t.Errorf("amount = %v, want %v", amount, 100*60+50*62)
	}
	if kg != 150 {
		t.Errorf("kg = %v, want 150", kg)
	}
	if set.Unit() != "Kg" {
		t.Errorf("unit = %q, want Kg", set.Unit())
	}
}

func TestSteelSet_RetainedDropsEmptyRows(t *testing.T) {
	set := SteelSet{
		{Diameter: 8, Kg: 0, Rate: 60},  // blank row in the form
		{Diameter: 12, Kg: 80, Rate: 61},
	}

	got := set.Retained()
	if len(got) != 1 || got[0].Diameter != 12 {
		t.Fatalf("Retained() = %+v, want only the 12mm row", got)
	}
}

func TestTilesSet_RowMath(t *testing.T) {
	row := models.TilesRow{Room: "Hall", Boxes: 10, W: 2, H: 2, Rate: 45}

	// sqft describes a single tile, not the whole purchase
	if got := TileSqft(row); got != 4 {
		t.Errorf("TileSqft = %v, want 4", got)
	}
	if got := TilesRowTotal(row); got != 4*10*45 {
		t.Errorf("TilesRowTotal = %v, want %v", got, 4*10*45)
	}

	set := TilesSet{row, {Room: "Kitchen", Boxes: 0, W: 1, H: 1, Rate: 30}}
	if got := set.Retained(); len(got) != 1 {
		t.Errorf("Retained kept %d rows, want 1", len(got))
	}

	amount, boxes := TilesSet{row}.EntryTotal()
	if amount != 1800 || boxes != 10 {
		t.Errorf("EntryTotal = (%v, %v), want (1800, 10)", amount, boxes)
	}
}

func TestGraniteSet_RowMath(t *testing.T) {
	row := models.GraniteRow{Name: "Black Galaxy", Nos: 2, W: 8, H: 2.5, Rate: 120}

	if got := GraniteSqft(row); got != 20 {
		t.Errorf("GraniteSqft = %v, want 20", got)
	}
	if got := GraniteRowTotal(row); got != 20*2*120 {
		t.Errorf("GraniteRowTotal = %v, want %v", got, 20*2*120)
	}

	// entry quantity is summed per-row sqft, not multiplied by nos
	amount, sqft := GraniteSet{row}.EntryTotal()
	if amount != 4800 || sqft != 20 {
		t.Errorf("EntryTotal = (%v, %v), want (4800, 20)", amount, sqft)
	}

	set := GraniteSet{row, {Name: "Empty", Nos: 0, W: 4, H: 2, Rate: 100}}
	if got := set.Retained(); len(got) != 1 {
		t.Errorf("Retained kept %d rows, want 1", len(got))
	}
}

func TestGenericLine(t *testing.T) {
	g := GenericLine{Quantity: 50, Rate: 380, UnitName: "Bag"}

	amount, qty := g.EntryTotal()
	if amount != 19000 || qty != 50 {
		t.Errorf("EntryTotal = (%v, %v), want (19000, 50)", amount, qty)
	}
	if g.Unit() != "Bag" {
		t.Errorf("unit = %q, want Bag", g.Unit())
	}
}
