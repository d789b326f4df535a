package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prajvalpatil/cashbook-prototype/internal/models"
	"github.com/prajvalpatil/cashbook-prototype/internal/store"
	"github.com/prajvalpatil/cashbook-prototype/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BackupHandler snapshots one project's data to a JSON file on disk and
// restores from it. Restore replaces the project's entries and files in a
// single transaction.
type BackupHandler struct {
	Store     *store.Store
	BackupDir string
}

func NewBackupHandler(st *store.Store, backupDir string) *BackupHandler {
	return &BackupHandler{Store: st, BackupDir: backupDir}
}

// snapshot is the on-disk backup format.
type snapshot struct {
	Project models.Project `json:"project"`
	Entries []models.Entry `json:"entries"`
	Files   []models.File  `json:"files"`
	Created time.Time      `json:"created"`
}

func (h *BackupHandler) CreateBackup(c *gin.Context) {
	user, ok := requireAdmin(c)
	if !ok {
		return
	}

	project, err := h.Store.GetProject(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	entries, err := h.Store.EntriesByProject(project.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	files, err := h.Store.FilesByProject(project.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := json.MarshalIndent(snapshot{
		Project: project,
		Entries: entries,
		Files:   files,
		Created: time.Now(),
	}, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "snapshot failed")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "backup dir unavailable")
		return
	}

	id := "backup_" + uuid.NewString()
	fileName := fmt.Sprintf("backup-%s-%s.json", project.ID, time.Now().Format("20060102-150405"))
	fullPath := filepath.Join(h.BackupDir, fileName)
	if err := os.WriteFile(fullPath, data, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "write backup failed")
		return
	}

	backup, err := h.Store.AddBackup(models.Backup{
		ID:        id,
		ProjectID: project.ID,
		FileName:  fileName,
		FilePath:  fullPath,
		Size:      int64(len(data)),
		CreatedBy: user.Username,
	})
	if err != nil {
		os.Remove(fullPath)
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"backup": backup})
}

func (h *BackupHandler) ListBackups(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	backups, err := h.Store.Backups()
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"backups": backups})
}

func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	backup, err := h.Store.GetBackup(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+backup.FileName+"\"")
	c.Header("Content-Type", "application/json")
	c.File(backup.FilePath)
}

// RestoreBackup loads the snapshot file and swaps the project's entries and
// files for its contents. The project record itself is left alone.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	backup, err := h.Store.GetBackup(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := h.Store.GetProject(backup.ProjectID); err != nil {
		respondError(c, err)
		return
	}

	data, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "read backup failed")
		return
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "backup file corrupted")
		return
	}

	if err := h.Store.ReplaceProjectData(backup.ProjectID, snap.Entries, snap.Files); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "backup restored",
		"entries": len(snap.Entries),
		"files":   len(snap.Files),
	})
}

func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	backup, err := h.Store.GetBackup(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Store.DeleteBackup(backup.ID); err != nil {
		respondError(c, err)
		return
	}
	if backup.FilePath != "" {
		os.Remove(backup.FilePath)
	}
	util.Success(c, util.Response{"message": "backup deleted"})
}
