package ledger

import (
	"testing"

	"github.com/prajvalpatil/cashbook-prototype/internal/models"
)

func sampleEntries() []models.Entry {
	return []models.Entry{
		{Type: TypeCashIn, Date: "2025-01-05", Amount: 100000},
		{
			Type: TypeCashOut, Category: "material", Date: "2025-01-10",
			PartyName: "Sri Steel Traders", ItemName: "Steel",
			Amount: 6000, Paid: 3000, Due: 3000,
			StockDetails: []models.SteelRow{{Diameter: 12, Nos: 10, Kg: 100, Rate: 60}},
		},
		{
			Type: TypeCashOut, Category: "labor", Date: "2025-01-15",
			PartyName: "Ramesh", Amount: 5000, Paid: 5000, Due: 0,
		},
		{
			Type: TypeCashOut, Category: "material", Date: "2025-01-20",
			PartyName: "City Cement", ItemName: "Cement",
			Quantity: 50, Unit: "Bag", Amount: 19000, Paid: 19000, Due: 0,
		},
	}
}

func TestDashboard_CashOutSumsPaidNotBilled(t *testing.T) {
	totals := Dashboard(sampleEntries())

	if totals.CashIn != 100000 {
		t.Errorf("cashIn = %v, want 100000", totals.CashIn)
	}
	// 3000 + 5000 + 19000: the unpaid 3000 stays out of cash out
	if totals.CashOut != 27000 {
		t.Errorf("cashOut = %v, want 27000", totals.CashOut)
	}
	if totals.Dues != 3000 {
		t.Errorf("dues = %v, want 3000", totals.Dues)
	}
	if totals.Balance != 73000 {
		t.Errorf("balance = %v, want 73000", totals.Balance)
	}
}

func TestRecent(t *testing.T) {
	got := Recent(sampleEntries(), 2)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Date != "2025-01-20" || got[1].Date != "2025-01-15" {
		t.Errorf("dates = %q, %q, want newest first", got[0].Date, got[1].Date)
	}
}

func TestStocks_SteelByDiameter(t *testing.T) {
	entries := []models.Entry{
		{
			Type: TypeCashOut, Category: "material", Date: "2025-01-10", ItemName: "Steel",
			StockDetails: []models.SteelRow{
				{Diameter: 12, Nos: 10, Kg: 100, Rate: 60},
				{Diameter: 11, Nos: 1, Kg: 5, Rate: 60}, // non-standard, skipped
			},
		},
		{
			Type: TypeCashOut, Category: "material", Date: "2025-02-01", ItemName: "steel",
			StockDetails: []models.SteelRow{{Diameter: 12, Nos: 5, Kg: 50, Rate: 66}},
		},
	}

	sum := Stocks(entries)

	if len(sum.Steel) != len(SteelDiameters) {
		t.Errorf("steel rows = %d, want all %d standard diameters", len(sum.Steel), len(SteelDiameters))
	}
	s := sum.Steel[12]
	if s.Kg != 150 || s.Nos != 15 {
		t.Errorf("12mm kg/nos = %v/%v, want 150/15", s.Kg, s.Nos)
	}
	wantValue := 100*60.0 + 50*66.0
	if s.TotalValue != wantValue {
		t.Errorf("12mm value = %v, want %v", s.TotalValue, wantValue)
	}
	if s.AvgRate != wantValue/150 {
		t.Errorf("12mm avgRate = %v, want %v", s.AvgRate, wantValue/150)
	}
	if empty := sum.Steel[8]; empty.Kg != 0 || empty.AvgRate != 0 {
		t.Errorf("untouched diameter = %+v, want zeros", empty)
	}
}

func TestStocks_TilesAndGraniteChronological(t *testing.T) {
	entries := []models.Entry{
		{
			Type: TypeCashOut, Category: "material", Date: "2025-03-01", ItemName: "Tiles",
			TilesDetails: []models.TilesRow{{Room: "Hall", Boxes: 10, W: 2, H: 2, Rate: 45}},
		},
		{
			Type: TypeCashOut, Category: "material", Date: "2025-01-15", ItemName: "Granite",
			GraniteDetails: []models.GraniteRow{{Name: "Black Galaxy", Nos: 2, W: 8, H: 2.5, Rate: 120}},
		},
		{
			Type: TypeCashOut, Category: "material", Date: "2025-02-01", ItemName: "Tiles",
			TilesDetails: []models.TilesRow{{Room: "Kitchen", Boxes: 4, W: 1, H: 1, Rate: 30}},
		},
	}

	sum := Stocks(entries)

	if len(sum.Tiles) != 2 || sum.Tiles[0].Room != "Kitchen" || sum.Tiles[1].Room != "Hall" {
		t.Errorf("tiles = %+v, want purchase lines in date order", sum.Tiles)
	}
	if sum.Tiles[1].Sqft != 4 || sum.Tiles[1].Total != 1800 {
		t.Errorf("hall line = %+v", sum.Tiles[1])
	}
	if len(sum.Granite) != 1 || sum.Granite[0].Sqft != 20 || sum.Granite[0].Total != 4800 {
		t.Errorf("granite = %+v", sum.Granite)
	}
}

func TestStocks_GenericMaterialRollup(t *testing.T) {
	entries := []models.Entry{
		{Type: TypeCashOut, Category: "material", Date: "2025-01-01", ItemName: "Cement",
			Quantity: 50, Unit: "Bag", Amount: 19000},
		{Type: TypeCashOut, Category: "material", Date: "2025-01-10", ItemName: "Cement",
			Quantity: 30, Unit: "Bag", Amount: 11700},
		{Type: TypeCashOut, Category: "labor", Date: "2025-01-11", ItemName: "Cement",
			Quantity: 99, Amount: 1}, // wrong category, ignored
	}

	sum := Stocks(entries)

	m, ok := sum.Other["Cement"]
	if !ok {
		t.Fatal("cement missing from stock rollup")
	}
	if m.Quantity != 80 || m.TotalValue != 30700 || m.Unit != "Bag" {
		t.Errorf("cement = %+v", m)
	}
	if m.AvgRate != 30700.0/80 {
		t.Errorf("avgRate = %v, want %v", m.AvgRate, 30700.0/80)
	}
}

func TestPartyLedgers(t *testing.T) {
	suppliers, labor := PartyLedgers(sampleEntries())

	if len(suppliers) != 2 {
		t.Errorf("suppliers = %d, want 2", len(suppliers))
	}
	steel := suppliers["Sri Steel Traders"]
	if steel == nil || steel.Billed != 6000 || steel.Paid != 3000 || steel.Due != 3000 {
		t.Errorf("steel trader = %+v", steel)
	}
	if len(labor) != 1 || labor["Ramesh"] == nil || labor["Ramesh"].Paid != 5000 {
		t.Errorf("labor = %+v", labor)
	}
}

func TestFilterEntries(t *testing.T) {
	entries := sampleEntries()

	got := FilterEntries(entries, "2025-01-10", "2025-01-15", "")
	if len(got) != 2 {
		t.Fatalf("range filter len = %d, want 2", len(got))
	}
	// inclusive on both ends, sorted ascending
	if got[0].Date != "2025-01-10" || got[1].Date != "2025-01-15" {
		t.Errorf("dates = %q, %q", got[0].Date, got[1].Date)
	}

	got = FilterEntries(entries, "", "", "material")
	if len(got) != 2 {
		t.Errorf("category filter len = %d, want 2", len(got))
	}

	got = FilterEntries(entries, "", "", "all")
	if len(got) != len(entries) {
		t.Errorf("category 'all' len = %d, want %d", len(got), len(entries))
	}
}

func TestTotals(t *testing.T) {
	totals := Totals(sampleEntries())

	if totals.Amount != 130000 {
		t.Errorf("amount = %v, want 130000", totals.Amount)
	}
	if totals.Paid != 27000 || totals.Due != 3000 {
		t.Errorf("paid/due = %v/%v, want 27000/3000", totals.Paid, totals.Due)
	}
}
