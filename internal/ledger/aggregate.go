package ledger

import (
	"sort"

	"github.com/prajvalpatil/cashbook-prototype/internal/models"
)

// DashboardTotals are the headline figures for one project. CashOut sums
// what was actually paid, not what was billed, so open dues never reduce
// the balance; they are reported separately.
type DashboardTotals struct {
	CashIn  float64 `json:"cashIn"`
	CashOut float64 `json:"cashOut"`
	Dues    float64 `json:"dues"`
	Balance float64 `json:"balance"`
}

// Dashboard folds a project's entries into its headline totals.
func Dashboard(entries []models.Entry) DashboardTotals {
	var t DashboardTotals
	for _, e := range entries {
		if e.Type == TypeCashIn {
			t.CashIn += e.Amount
		} else {
			t.CashOut += e.Paid
			t.Dues += e.Due
		}
	}
	t.Balance = t.CashIn - t.CashOut
	return t
}

// Recent returns the n most recent entries by date, newest first.
func Recent(entries []models.Entry, n int) []models.Entry {
	out := append([]models.Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// SteelStock aggregates one bar diameter across all purchases.
type SteelStock struct {
	Nos        float64 `json:"nos"`
	Kg         float64 `json:"kg"`
	TotalValue float64 `json:"totalValue"`
	AvgRate    float64 `json:"avgRate"`
}

// MaterialStock aggregates one generic material by name.
type MaterialStock struct {
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	TotalValue float64 `json:"totalValue"`
	AvgRate    float64 `json:"avgRate"`
}

// TileStockItem is one tiles purchase line in chronological order.
type TileStockItem struct {
	Date  string  `json:"date"`
	Room  string  `json:"room"`
	Name  string  `json:"name"`
	Boxes float64 `json:"boxes"`
	Sqft  float64 `json:"sqft"`
	Rate  float64 `json:"rate"`
	Total float64 `json:"total"`
}

// GraniteStockItem is one granite purchase line in chronological order.
type GraniteStockItem struct {
	Date  string  `json:"date"`
	Name  string  `json:"name"`
	Nos   float64 `json:"nos"`
	Sqft  float64 `json:"sqft"`
	Rate  float64 `json:"rate"`
	Total float64 `json:"total"`
}

// StockSummary is the material stock view for one project. Steel always
// carries every standard diameter so the table renders fixed rows; tiles
// and granite are flattened purchase lists rather than name rollups.
type StockSummary struct {
	Steel   map[int]*SteelStock       `json:"steel"`
	Tiles   []TileStockItem           `json:"tiles"`
	Granite []GraniteStockItem        `json:"granite"`
	Other   map[string]*MaterialStock `json:"other"`
}

// Stocks folds a project's cash-out material entries into stock rollups.
func Stocks(entries []models.Entry) StockSummary {
	sum := StockSummary{
		Steel: make(map[int]*SteelStock, len(SteelDiameters)),
		Other: make(map[string]*MaterialStock),
	}
	for _, d := range SteelDiameters {
		sum.Steel[d] = &SteelStock{}
	}

	ordered := append([]models.Entry(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })

	for _, e := range ordered {
		if e.Type != TypeCashOut || e.Category != "material" {
			continue
		}
		switch MaterialKind(e.ItemName) {
		case KindSteel:
			for _, r := range e.StockDetails {
				s, ok := sum.Steel[r.Diameter]
				if !ok {
					continue // not a standard diameter
				}
				s.Nos += r.Nos
				s.Kg += r.Kg
				s.TotalValue += r.Kg * r.Rate
			}
		case KindTiles:
			for _, r := range e.TilesDetails {
				sum.Tiles = append(sum.Tiles, TileStockItem{
					Date:  e.Date,
					Room:  r.Room,
					Name:  r.Name,
					Boxes: r.Boxes,
					Sqft:  TileSqft(r),
					Rate:  r.Rate,
					Total: TilesRowTotal(r),
				})
			}
		case KindGranite:
			for _, r := range e.GraniteDetails {
				sum.Granite = append(sum.Granite, GraniteStockItem{
					Date:  e.Date,
					Name:  r.Name,
					Nos:   r.Nos,
					Sqft:  GraniteSqft(r),
					Rate:  r.Rate,
					Total: GraniteRowTotal(r),
				})
			}
		default:
			if e.ItemName == "" {
				continue
			}
			m, ok := sum.Other[e.ItemName]
			if !ok {
				m = &MaterialStock{Unit: e.Unit}
				sum.Other[e.ItemName] = m
			}
			m.Quantity += e.Quantity
			m.TotalValue += e.Amount
			if m.Unit == "" && e.Unit != "" {
				m.Unit = e.Unit
			}
		}
	}

	for _, s := range sum.Steel {
		if s.Kg > 0 {
			s.AvgRate = s.TotalValue / s.Kg
		}
	}
	for _, m := range sum.Other {
		if m.Quantity > 0 {
			m.AvgRate = m.TotalValue / m.Quantity
		}
	}
	return sum
}

// PartyTotals is one party's position in the ledger view.
type PartyTotals struct {
	Billed float64 `json:"billed"`
	Paid   float64 `json:"paid"`
	Due    float64 `json:"due"`
}

// PartyLedgers folds cash-out entries by party. Labor entries form their
// own ledger; material and service entries share the supplier ledger.
func PartyLedgers(entries []models.Entry) (suppliers, labor map[string]*PartyTotals) {
	suppliers = make(map[string]*PartyTotals)
	labor = make(map[string]*PartyTotals)
	for _, e := range entries {
		if e.Type != TypeCashOut {
			continue
		}
		m := suppliers
		if e.Category == "labor" {
			m = labor
		}
		t, ok := m[e.PartyName]
		if !ok {
			t = &PartyTotals{}
			m[e.PartyName] = t
		}
		t.Billed += e.Amount
		t.Paid += e.Paid
		t.Due += e.Due
	}
	return suppliers, labor
}

// ReportTotals are the footer sums over a filtered report.
type ReportTotals struct {
	Amount float64 `json:"amount"`
	Paid   float64 `json:"paid"`
	Due    float64 `json:"due"`
}

// FilterEntries returns the entries within the inclusive date range, with
// an optional category filter, sorted ascending by date. Dates compare
// lexicographically, which is correct for zero-padded ISO dates.
func FilterEntries(entries []models.Entry, start, end, category string) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if start != "" && e.Date < start {
			continue
		}
		if end != "" && e.Date > end {
			continue
		}
		if category != "" && category != "all" && e.Category != category {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Totals sums the three report columns over a set of entries.
func Totals(entries []models.Entry) ReportTotals {
	var t ReportTotals
	for _, e := range entries {
		t.Amount += e.Amount
		t.Paid += e.Paid
		t.Due += e.Due
	}
	return t
}
