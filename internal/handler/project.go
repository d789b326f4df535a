package handler

import (
	"net/http"

	"github.com/prajvalpatil/cashbook-prototype/internal/models"
	"github.com/prajvalpatil/cashbook-prototype/internal/store"
	"github.com/prajvalpatil/cashbook-prototype/internal/util"

	"github.com/gin-gonic/gin"
)

// ProjectHandler manages projects. Creation and deletion are admin actions;
// deleting a project takes all of its entries and files with it.
type ProjectHandler struct {
	Store *store.Store
}

func NewProjectHandler(st *store.Store) *ProjectHandler {
	return &ProjectHandler{Store: st}
}

type projectReq struct {
	Name      string `json:"name" binding:"required,max=128"`
	Owner     string `json:"owner" binding:"max=128"`
	Location  string `json:"location" binding:"max=255"`
	StartDate string `json:"startDate"`
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	projects, err := h.Store.Projects()
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"projects": projects})
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, ok := requireAdmin(c)
	if !ok {
		return
	}

	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	if req.StartDate != "" {
		if err := util.ValidateDate(req.StartDate); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "startDate must be YYYY-MM-DD")
			return
		}
	}

	project, err := h.Store.AddProject(models.Project{
		Name:      req.Name,
		Owner:     req.Owner,
		Location:  req.Location,
		StartDate: req.StartDate,
		CreatedBy: user.Username,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"project": project})
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	existing, err := h.Store.GetProject(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	if req.StartDate != "" {
		if err := util.ValidateDate(req.StartDate); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "startDate must be YYYY-MM-DD")
			return
		}
	}

	existing.Name = req.Name
	existing.Owner = req.Owner
	existing.Location = req.Location
	existing.StartDate = req.StartDate

	project, err := h.Store.UpdateProject(existing)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"project": project})
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id := c.Param("id")
	if _, err := h.Store.GetProject(id); err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.DeleteProject(id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "project deleted"})
}
