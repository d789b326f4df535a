package ledger

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/prajvalpatil/cashbook-prototype/internal/models"
)

// Session is the explicit context for every core operation: who is acting
// and which project their entries belong to.
type Session struct {
	CurrentUser      string
	CurrentProjectID string
}

// Draft carries normalized form input for a new or edited entry. The
// handlers validate the raw payload and map it here, so the core never sees
// untyped maps. Exactly one of the row tables (or the generic
// quantity/rate pair) applies, selected by Type/Category/ItemName.
type Draft struct {
	Type     string // cash_in / cash_out
	Category string // material / labor / service, cash_out only
	Date     string // YYYY-MM-DD

	PartyName string
	ItemName  string
	Notes     string

	// cash_in only: the received amount.
	Amount float64

	// Generic cash_out line.
	Quantity float64
	Rate     float64
	Unit     string

	// Structured material tables; unretained rows are dropped here.
	Steel   []models.SteelRow
	Tiles   []models.TilesRow
	Granite []models.GraniteRow

	Paid        float64
	PaymentMode string
	Attachment  string
}

const (
	TypeCashIn  = "cash_in"
	TypeCashOut = "cash_out"
)

const dateLayout = "2006-01-02"

// NewEntry validates a draft against the session and returns the entry to
// persist. An initial paid amount is recorded as the first payment so the
// history always reconciles with the paid total.
func NewEntry(s Session, d Draft) (models.Entry, error) {
	if s.CurrentProjectID == "" {
		return models.Entry{}, invalidf("projectId", "no active project")
	}

	e, err := buildEntry(d)
	if err != nil {
		return models.Entry{}, err
	}
	e.ID = "entry_" + uuid.NewString()
	e.ProjectID = s.CurrentProjectID
	e.CreatedBy = s.CurrentUser
	e.Timestamp = time.Now().Format(time.RFC3339)

	if e.Type == TypeCashOut {
		if err := applyInitialPaid(&e, d.Paid); err != nil {
			return models.Entry{}, err
		}
	}
	return e, nil
}

// ApplyPayment records a partial payment against an entry and returns the
// updated copy. This is the only path that grows the payment history.
func ApplyPayment(e models.Entry, amount float64, date, mode string) (models.Entry, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return models.Entry{}, invalidf("amount", "payment must be a positive amount")
	}
	if amount > e.Due {
		return models.Entry{}, invalidf("amount", "payment cannot exceed due amount")
	}
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return models.Entry{}, invalidf("date", "must be YYYY-MM-DD")
		}
	} else {
		date = e.Date
	}
	if mode == "" {
		mode = "Cash"
	}

	out := e
	out.Payments = append(append([]models.Payment(nil), e.Payments...), models.Payment{
		Amount: amount,
		Date:   date,
		Mode:   mode,
		Note:   "Partial Payment",
	})
	out.Paid = e.Paid + amount
	out.Due = e.Due - amount
	return out, nil
}

// MergeEdit applies an edited draft onto an existing entry. Identity,
// creation time and payment history are preserved verbatim. Once payments
// exist the paid total is locked: the entry must stay cash-out, only the
// billed side may move, and due is recomputed from it.
func MergeEdit(existing models.Entry, d Draft) (models.Entry, error) {
	if len(existing.Payments) > 0 && d.Type != existing.Type {
		return models.Entry{}, invalidf("type", "cannot change type of an entry with payments")
	}
	e, err := buildEntry(d)
	if err != nil {
		return models.Entry{}, err
	}
	e.ID = existing.ID
	e.ProjectID = existing.ProjectID
	e.CreatedBy = existing.CreatedBy
	e.Timestamp = existing.Timestamp
	e.Payments = existing.Payments
	if e.Attachment == "" {
		e.Attachment = existing.Attachment
	}

	if e.Type != TypeCashOut {
		return e, nil
	}
	if len(existing.Payments) > 0 {
		// Payment history wins over whatever the edit form claims.
		e.Paid = existing.Paid
		e.Due = math.Max(0, e.Amount-e.Paid)
		return e, nil
	}
	if err := applyInitialPaid(&e, d.Paid); err != nil {
		return models.Entry{}, err
	}
	return e, nil
}

// buildEntry computes amount/quantity/unit and the retained line items for
// a draft. Paid and payments are handled by the callers.
func buildEntry(d Draft) (models.Entry, error) {
	switch d.Type {
	case TypeCashIn, TypeCashOut:
	default:
		return models.Entry{}, invalidf("type", "must be cash_in or cash_out")
	}
	if _, err := time.Parse(dateLayout, d.Date); err != nil {
		return models.Entry{}, invalidf("date", "must be YYYY-MM-DD")
	}

	e := models.Entry{
		Type:        d.Type,
		Date:        d.Date,
		PartyName:   d.PartyName,
		ItemName:    d.ItemName,
		Notes:       d.Notes,
		PaymentMode: d.PaymentMode,
		Attachment:  d.Attachment,
	}

	if d.Type == TypeCashIn {
		// Cash received: nothing billed or owed, the amount is final.
		if math.IsNaN(d.Amount) || math.IsInf(d.Amount, 0) || d.Amount < 0 {
			return models.Entry{}, invalidf("amount", "must be a non-negative amount")
		}
		e.Amount = d.Amount
		return e, nil
	}

	switch d.Category {
	case "material", "labor", "service":
		e.Category = d.Category
	default:
		return models.Entry{}, invalidf("category", "must be material, labor or service")
	}

	var items LineItemSet
	if d.Category == "material" {
		switch MaterialKind(d.ItemName) {
		case KindSteel:
			rows := SteelSet(d.Steel).Retained()
			e.StockDetails = rows
			items = rows
		case KindTiles:
			rows := TilesSet(d.Tiles).Retained()
			e.TilesDetails = rows
			items = rows
		case KindGranite:
			rows := GraniteSet(d.Granite).Retained()
			e.GraniteDetails = rows
			items = rows
		}
	}
	if items == nil {
		items = GenericLine{Quantity: d.Quantity, Rate: d.Rate, UnitName: d.Unit}
		e.Rate = d.Rate
	}

	e.Amount, e.Quantity = items.EntryTotal()
	e.Unit = items.Unit()
	return e, nil
}

// applyInitialPaid sets paid/due on a freshly built cash-out entry and
// synthesizes the Initial Payment record when money changed hands up front.
func applyInitialPaid(e *models.Entry, paid float64) error {
	if math.IsNaN(paid) || math.IsInf(paid, 0) || paid < 0 {
		return invalidf("paid", "must be a non-negative amount")
	}
	if paid > e.Amount {
		return invalidf("paid", "paid cannot exceed billed amount")
	}
	e.Paid = paid
	e.Due = e.Amount - paid
	if paid > 0 {
		mode := e.PaymentMode
		if mode == "" {
			mode = "Cash"
		}
		e.Payments = []models.Payment{{
			Amount: paid,
			Date:   e.Date,
			Mode:   mode,
			Note:   "Initial Payment",
		}}
	}
	return nil
}
