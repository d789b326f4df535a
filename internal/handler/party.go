package handler

import (
	"net/http"
	"strings"

	"github.com/prajvalpatil/cashbook-prototype/internal/models"
	"github.com/prajvalpatil/cashbook-prototype/internal/store"
	"github.com/prajvalpatil/cashbook-prototype/internal/util"

	"github.com/gin-gonic/gin"
)

// PartyHandler serves the shared party and material catalogs. Both are
// global, not per project, so names autocomplete across the whole site.
type PartyHandler struct {
	Store *store.Store
}

func NewPartyHandler(st *store.Store) *PartyHandler {
	return &PartyHandler{Store: st}
}

func (h *PartyHandler) ListParties(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	parties, err := h.Store.Parties()
	if err != nil {
		respondError(c, err)
		return
	}

	if t := c.Query("type"); t != "" {
		filtered := make([]models.Party, 0, len(parties))
		for _, p := range parties {
			if p.Type == t {
				filtered = append(filtered, p)
			}
		}
		parties = filtered
	}
	util.Success(c, util.Response{"parties": parties})
}

type partyReq struct {
	Name string `json:"name" binding:"required,max=128"`
	Type string `json:"type" binding:"required,oneof=supplier labor"`
}

// CreateParty adds a party, deduplicating on name (case-insensitive) and
// type. Re-adding an existing party returns the existing record.
func (h *PartyHandler) CreateParty(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	var req partyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	party, err := h.Store.UpsertParty(req.Name, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"party": party})
}

func (h *PartyHandler) ListMaterials(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	materials, err := h.Store.Materials()
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"materials": materials})
}

type materialReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

func (h *PartyHandler) CreateMaterial(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}

	var req materialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}

	if err := h.Store.AppendMaterial(req.Name); err != nil {
		respondError(c, err)
		return
	}

	materials, err := h.Store.Materials()
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"materials": materials})
}
