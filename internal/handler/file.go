package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/prajvalpatil/cashbook-prototype/internal/models"
	"github.com/prajvalpatil/cashbook-prototype/internal/store"
	"github.com/prajvalpatil/cashbook-prototype/internal/util"

	"github.com/gin-gonic/gin"
)

// FileHandler manages per-project document uploads. Payloads are base64
// data URLs stored inline, the same shape the entry attachments use.
type FileHandler struct {
	Store          *store.Store
	MaxUploadBytes int
}

func NewFileHandler(st *store.Store, maxUploadBytes int) *FileHandler {
	return &FileHandler{Store: st, MaxUploadBytes: maxUploadBytes}
}

func (h *FileHandler) ListFiles(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	project, err := h.Store.GetProject(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	files, err := h.Store.FilesByProject(project.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	if cat := c.Query("category"); cat != "" {
		filtered := make([]models.File, 0, len(files))
		for _, f := range files {
			if f.Category == cat {
				filtered = append(filtered, f)
			}
		}
		files = filtered
	}

	// Inline data stays out of list responses; download fetches it.
	for i := range files {
		files[i].Data = ""
	}
	util.Success(c, util.Response{"files": files})
}

type fileReq struct {
	ProjectID string `json:"projectId" binding:"required"`
	Category  string `json:"category" binding:"required,oneof=cad image document other"`
	Name      string `json:"name" binding:"required,max=255"`
	Type      string `json:"type" binding:"max=128"`
	Data      string `json:"data" binding:"required"`
}

func (h *FileHandler) UploadFile(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req fileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}
	if h.MaxUploadBytes > 0 && len(req.Data) > h.MaxUploadBytes {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "file too large")
		return
	}
	if _, err := h.Store.GetProject(req.ProjectID); err != nil {
		respondError(c, err)
		return
	}

	file, err := h.Store.AddFile(models.File{
		ProjectID:  req.ProjectID,
		Category:   req.Category,
		Name:       strings.TrimSpace(req.Name),
		Type:       req.Type,
		Data:       req.Data,
		UploadedBy: user.Username,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	file.Data = ""
	util.Success(c, util.Response{"file": file})
}

// DownloadFile decodes the stored data URL and streams the raw bytes with
// the original content type.
func (h *FileHandler) DownloadFile(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	file, err := h.Store.GetFile(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	contentType := file.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	payload := file.Data
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, ";base64,"); idx > 0 {
			contentType = payload[len("data:"):idx]
			payload = payload[idx+len(";base64,"):]
		}
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Not base64, serve as stored.
		raw = []byte(file.Data)
		contentType = "application/octet-stream"
	}

	c.Header("Content-Disposition", "attachment; filename=\""+file.Name+"\"")
	c.Data(http.StatusOK, contentType, raw)
}

func (h *FileHandler) DeleteFile(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	id := c.Param("id")
	if _, err := h.Store.GetFile(id); err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.DeleteFile(id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "file deleted"})
}
