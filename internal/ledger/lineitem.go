package ledger

import (
	"strconv"
	"strings"

	"github.com/prajvalpatil/cashbook-prototype/internal/models"
)

// SteelDiameters is the fixed set of bar diameters (mm) a steel purchase
// can be split across.
var SteelDiameters = []int{6, 8, 10, 12, 16, 20, 25, 32, 40}

// Material kinds with structured line-item tables.
const (
	KindSteel   = "steel"
	KindTiles   = "tiles"
	KindGranite = "granite"
	KindGeneric = "generic"
)

// MaterialKind matches an item name case-insensitively against the known
// structured material types.
func MaterialKind(itemName string) string {
	switch {
	case strings.EqualFold(itemName, "steel"):
		return KindSteel
	case strings.EqualFold(itemName, "tiles"):
		return KindTiles
	case strings.EqualFold(itemName, "granite"):
		return KindGranite
	default:
		return KindGeneric
	}
}

// Num parses a form field as a float. Empty, missing or garbage input
// counts as zero so a half-filled row never poisons a total.
func Num(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// LineItemSet is one material's row table on a cash-out entry. Each variant
// knows its retained rows, its entry totals and its display unit.
type LineItemSet interface {
	// EntryTotal returns the billed amount and the quantity shown on the
	// entry (sum kg for steel, boxes for tiles, sqft for granite).
	EntryTotal() (amount, quantity float64)
	Unit() string
}

// SteelSet is a steel purchase split by bar diameter.
type SteelSet []models.SteelRow

// SteelRowTotal is kg x rate for one diameter line.
func SteelRowTotal(r models.SteelRow) float64 { return r.Kg * r.Rate }

// Retained drops rows with no weight entered.
func (s SteelSet) Retained() SteelSet {
	out := make(SteelSet, 0, len(s))
	for _, r := range s {
		if r.Kg > 0 {
			out = append(out, r)
		}
	}
	return out
}

func (s SteelSet) EntryTotal() (float64, float64) {
	var amount, kg float64
	for _, r := range s {
		amount += SteelRowTotal(r)
		kg += r.Kg
	}
	return amount, kg
}

func (s SteelSet) Unit() string { return "Kg" }

// TilesSet is a tiles purchase split by room.
type TilesSet []models.TilesRow

// TileSqft is the size of a single tile, not multiplied by boxes.
func TileSqft(r models.TilesRow) float64 { return r.W * r.H }

// TilesRowTotal is sqft x boxes x rate for one room line.
func TilesRowTotal(r models.TilesRow) float64 { return TileSqft(r) * r.Boxes * r.Rate }

// Retained drops rows with no boxes entered.
func (s TilesSet) Retained() TilesSet {
	out := make(TilesSet, 0, len(s))
	for _, r := range s {
		if r.Boxes > 0 {
			out = append(out, r)
		}
	}
	return out
}

func (s TilesSet) EntryTotal() (float64, float64) {
	var amount, boxes float64
	for _, r := range s {
		amount += TilesRowTotal(r)
		boxes += r.Boxes
	}
	return amount, boxes
}

func (s TilesSet) Unit() string { return "Box" }

// GraniteSet is a granite purchase split by slab name.
type GraniteSet []models.GraniteRow

// GraniteSqft is the size of a single piece, not multiplied by nos.
func GraniteSqft(r models.GraniteRow) float64 { return r.W * r.H }

// GraniteRowTotal is sqft x nos x rate for one slab line.
func GraniteRowTotal(r models.GraniteRow) float64 { return GraniteSqft(r) * r.Nos * r.Rate }

// Retained drops rows with no piece count entered.
func (s GraniteSet) Retained() GraniteSet {
	out := make(GraniteSet, 0, len(s))
	for _, r := range s {
		if r.Nos > 0 {
			out = append(out, r)
		}
	}
	return out
}

func (s GraniteSet) EntryTotal() (float64, float64) {
	var amount, sqft float64
	for _, r := range s {
		amount += GraniteRowTotal(r)
		sqft += GraniteSqft(r)
	}
	return amount, sqft
}

func (s GraniteSet) Unit() string { return "Sq.ft" }

// GenericLine covers any other material, labor or service: a plain
// quantity x rate pair.
type GenericLine struct {
	Quantity float64
	Rate     float64
	UnitName string
}

func (g GenericLine) EntryTotal() (float64, float64) {
	return g.Quantity * g.Rate, g.Quantity
}

func (g GenericLine) Unit() string { return g.UnitName }
