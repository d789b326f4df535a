package handler

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/prajvalpatil/cashbook-prototype/internal/ledger"
	"github.com/prajvalpatil/cashbook-prototype/internal/models"
	"github.com/prajvalpatil/cashbook-prototype/internal/store"
	"github.com/prajvalpatil/cashbook-prototype/internal/util"

	"github.com/gin-gonic/gin"
)

// EntryHandler covers the cashbook entry lifecycle: create, list, edit,
// delete and payment recording.
type EntryHandler struct {
	Store          *store.Store
	MaxUploadBytes int
}

func NewEntryHandler(st *store.Store, maxUploadBytes int) *EntryHandler {
	return &EntryHandler{Store: st, MaxUploadBytes: maxUploadBytes}
}

// Row fields arrive as strings straight from form inputs; blanks and
// garbage count as zero rather than failing the whole entry.
type steelRowReq struct {
	Diameter int    `json:"diameter"`
	Nos      string `json:"nos"`
	Kg       string `json:"kg"`
	Rate     string `json:"rate"`
}

type tilesRowReq struct {
	Room  string `json:"room"`
	Boxes string `json:"boxes"`
	Name  string `json:"name"`
	W     string `json:"w"`
	H     string `json:"h"`
	Rate  string `json:"rate"`
}

type graniteRowReq struct {
	Name string `json:"name"`
	Nos  string `json:"nos"`
	W    string `json:"w"`
	H    string `json:"h"`
	Rate string `json:"rate"`
}

type entryReq struct {
	Kind      string `json:"kind" binding:"required,oneof=cash_in material labor service"`
	ProjectID string `json:"projectId"`
	Date      string `json:"date" binding:"required"`

	PartyName string `json:"party_name" binding:"max=128"`
	ItemName  string `json:"item_name" binding:"max=128"`
	Notes     string `json:"notes" binding:"max=255"`

	Amount   string `json:"amount"`
	Quantity string `json:"quantity"`
	Rate     string `json:"rate"`
	Unit     string `json:"unit" binding:"max=16"`

	Steel   []steelRowReq   `json:"stockDetails"`
	Tiles   []tilesRowReq   `json:"tilesDetails"`
	Granite []graniteRowReq `json:"graniteDetails"`

	Paid        string `json:"paid"`
	PaymentMode string `json:"payment_mode" binding:"max=32"`
	Attachment  string `json:"attachment"`
}

// toDraft normalizes the request into the core's draft shape. The form's
// single "kind" selector splits into type plus category here.
func (r entryReq) toDraft() ledger.Draft {
	d := ledger.Draft{
		Date:        r.Date,
		PartyName:   strings.TrimSpace(r.PartyName),
		ItemName:    strings.TrimSpace(r.ItemName),
		Notes:       strings.TrimSpace(r.Notes),
		Unit:        strings.TrimSpace(r.Unit),
		PaymentMode: strings.TrimSpace(r.PaymentMode),
		Attachment:  r.Attachment,
	}
	if r.Kind == "cash_in" {
		d.Type = ledger.TypeCashIn
		d.Amount = ledger.Num(r.Amount)
		return d
	}

	d.Type = ledger.TypeCashOut
	d.Category = r.Kind
	d.Quantity = ledger.Num(r.Quantity)
	d.Rate = ledger.Num(r.Rate)
	d.Paid = ledger.Num(r.Paid)

	for _, row := range r.Steel {
		d.Steel = append(d.Steel, models.SteelRow{
			Diameter: row.Diameter,
			Nos:      ledger.Num(row.Nos),
			Kg:       ledger.Num(row.Kg),
			Rate:     ledger.Num(row.Rate),
		})
	}
	for _, row := range r.Tiles {
		d.Tiles = append(d.Tiles, models.TilesRow{
			Room:  strings.TrimSpace(row.Room),
			Boxes: ledger.Num(row.Boxes),
			Name:  strings.TrimSpace(row.Name),
			W:     ledger.Num(row.W),
			H:     ledger.Num(row.H),
			Rate:  ledger.Num(row.Rate),
		})
	}
	for _, row := range r.Granite {
		d.Granite = append(d.Granite, models.GraniteRow{
			Name: strings.TrimSpace(row.Name),
			Nos:  ledger.Num(row.Nos),
			W:    ledger.Num(row.W),
			H:    ledger.Num(row.H),
			Rate: ledger.Num(row.Rate),
		})
	}
	return d
}

// catalogParty feeds a cash-out party into the shared catalog as a side
// effect, so the autocomplete list grows with use and follows edits.
func (h *EntryHandler) catalogParty(e models.Entry) error {
	if e.Type != ledger.TypeCashOut || e.PartyName == "" {
		return nil
	}
	partyType := "supplier"
	if e.Category == "labor" {
		partyType = "labor"
	}
	_, err := h.Store.UpsertParty(e.PartyName, partyType)
	return err
}

func (h *EntryHandler) checkAttachment(c *gin.Context, data string) bool {
	if h.MaxUploadBytes > 0 && len(data) > h.MaxUploadBytes {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "attachment too large")
		return false
	}
	return true
}

// ListEntries returns a project's entries, newest date first.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	projectID := c.Param("id")
	if _, err := h.Store.GetProject(projectID); err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.Store.EntriesByProject(projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	util.Success(c, util.Response{"entries": entries})
}

func (h *EntryHandler) CreateEntry(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	if !h.checkAttachment(c, req.Attachment) {
		return
	}
	if req.ProjectID != "" {
		if _, err := h.Store.GetProject(req.ProjectID); err != nil {
			respondError(c, err)
			return
		}
	}

	session := ledger.Session{CurrentUser: user.Username, CurrentProjectID: req.ProjectID}
	entry, err := ledger.NewEntry(session, req.toDraft())
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.catalogParty(entry); err != nil {
		respondError(c, err)
		return
	}

	saved, err := h.Store.SaveEntry(entry)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"entry": saved})
}

func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	existing, err := h.Store.GetEntry(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	if !h.checkAttachment(c, req.Attachment) {
		return
	}

	merged, err := ledger.MergeEdit(existing, req.toDraft())
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.catalogParty(merged); err != nil {
		respondError(c, err)
		return
	}

	saved, err := h.Store.SaveEntry(merged)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"entry": saved})
}

// DeleteEntry is admin only; members can record but not erase.
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id := c.Param("id")
	if _, err := h.Store.GetEntry(id); err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.DeleteEntry(id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "entry deleted"})
}

type paymentReq struct {
	Amount string `json:"amount" binding:"required"`
	Date   string `json:"date"`
	Mode   string `json:"mode" binding:"max=32"`
}

// RecordPayment appends a partial payment to a cash-out entry. Unlike row
// fields, a non-numeric amount is rejected outright rather than zeroed.
func (h *EntryHandler) RecordPayment(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	existing, err := h.Store.GetEntry(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if existing.Type != ledger.TypeCashOut {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "payments apply to cash-out entries only")
		return
	}

	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(req.Amount), 64)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "amount must be a number")
		return
	}
	if err := util.ValidateAmount(amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	updated, err := ledger.ApplyPayment(existing, amount, req.Date, strings.TrimSpace(req.Mode))
	if err != nil {
		respondError(c, err)
		return
	}

	saved, err := h.Store.SaveEntry(updated)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"entry": saved})
}
