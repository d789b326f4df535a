package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/prajvalpatil/cashbook-prototype/internal/ledger"
	"github.com/prajvalpatil/cashbook-prototype/internal/models"
)

// DefaultMaterials seeds the material catalog on first run.
var DefaultMaterials = []string{"Steel", "Cement", "Sand", "Bricks", "Tiles", "Granite"}

// Store is the persistence collaborator for the ledger core. Every write
// replaces the full record, mirroring the read-modify-write model the core
// assumes.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ---------- entries ----------

// EntriesByProject loads all entries for one project.
func (s *Store) EntriesByProject(projectID string) ([]models.Entry, error) {
	var entries []models.Entry
	if err := s.db.Where("project_id = ?", projectID).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	return entries, nil
}

// GetEntry loads one entry by id.
func (s *Store) GetEntry(id string) (models.Entry, error) {
	var e models.Entry
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Entry{}, &ledger.NotFoundError{Resource: "entry", ID: id}
		}
		return models.Entry{}, fmt.Errorf("load entry: %w", err)
	}
	return e, nil
}

// SaveEntry inserts or fully replaces an entry by id.
func (s *Store) SaveEntry(e models.Entry) (models.Entry, error) {
	if err := s.db.Save(&e).Error; err != nil {
		return models.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	return e, nil
}

// DeleteEntry removes an entry. Deleting a missing id is not an error.
func (s *Store) DeleteEntry(id string) error {
	if err := s.db.Delete(&models.Entry{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// ---------- projects ----------

func (s *Store) Projects() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	return projects, nil
}

func (s *Store) GetProject(id string) (models.Project, error) {
	var p models.Project
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, &ledger.NotFoundError{Resource: "project", ID: id}
		}
		return models.Project{}, fmt.Errorf("load project: %w", err)
	}
	return p, nil
}

// AddProject assigns a fresh id and persists the project.
func (s *Store) AddProject(p models.Project) (models.Project, error) {
	p.ID = "proj_" + uuid.NewString()
	if err := s.db.Create(&p).Error; err != nil {
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// UpdateProject replaces the whole project record by id.
func (s *Store) UpdateProject(p models.Project) (models.Project, error) {
	if _, err := s.GetProject(p.ID); err != nil {
		return models.Project{}, err
	}
	if err := s.db.Save(&p).Error; err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// DeleteProject removes the project and cascades to its entries and files
// in one transaction. Records of other projects are untouched.
func (s *Store) DeleteProject(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Entry{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.File{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}

// ---------- parties ----------

func (s *Store) Parties() ([]models.Party, error) {
	var parties []models.Party
	if err := s.db.Order("name ASC").Find(&parties).Error; err != nil {
		return nil, fmt.Errorf("load parties: %w", err)
	}
	return parties, nil
}

// UpsertParty adds a party unless one with the same name (case-insensitive)
// and type already exists, in which case the existing record is returned.
func (s *Store) UpsertParty(name, partyType string) (models.Party, error) {
	var existing models.Party
	err := s.db.Where("LOWER(name) = LOWER(?) AND type = ?", name, partyType).
		First(&existing).Error
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Party{}, fmt.Errorf("find party: %w", err)
	}

	p := models.Party{
		ID:   "party_" + uuid.NewString(),
		Name: name,
		Type: partyType,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return models.Party{}, fmt.Errorf("create party: %w", err)
	}
	return p, nil
}

// ---------- materials ----------

// Materials returns the catalog names, seeding the defaults on first use.
func (s *Store) Materials() ([]string, error) {
	var count int64
	if err := s.db.Model(&models.Material{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count materials: %w", err)
	}
	if count == 0 {
		for _, name := range DefaultMaterials {
			if err := s.db.Create(&models.Material{Name: name}).Error; err != nil {
				return nil, fmt.Errorf("seed materials: %w", err)
			}
		}
	}

	var materials []models.Material
	if err := s.db.Order("id ASC").Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}
	names := make([]string, 0, len(materials))
	for _, m := range materials {
		names = append(names, m.Name)
	}
	return names, nil
}

// AppendMaterial adds a catalog name if not already present.
func (s *Store) AppendMaterial(name string) error {
	var count int64
	if err := s.db.Model(&models.Material{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		return fmt.Errorf("find material: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := s.db.Create(&models.Material{Name: name}).Error; err != nil {
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// ---------- files ----------

func (s *Store) FilesByProject(projectID string) ([]models.File, error) {
	var files []models.File
	if err := s.db.Where("project_id = ?", projectID).
		Order("upload_date DESC").
		Find(&files).Error; err != nil {
		return nil, fmt.Errorf("load files: %w", err)
	}
	return files, nil
}

func (s *Store) GetFile(id string) (models.File, error) {
	var f models.File
	if err := s.db.First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.File{}, &ledger.NotFoundError{Resource: "file", ID: id}
		}
		return models.File{}, fmt.Errorf("load file: %w", err)
	}
	return f, nil
}

func (s *Store) AddFile(f models.File) (models.File, error) {
	f.ID = "file_" + uuid.NewString()
	if err := s.db.Create(&f).Error; err != nil {
		return models.File{}, fmt.Errorf("create file: %w", err)
	}
	return f, nil
}

func (s *Store) DeleteFile(id string) error {
	if err := s.db.Delete(&models.File{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// ---------- users ----------

func (s *Store) UserByID(id string) (models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, &ledger.NotFoundError{Resource: "user", ID: id}
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func (s *Store) UserByUsername(username string) (models.User, error) {
	var u models.User
	if err := s.db.Where("LOWER(username) = LOWER(?)", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, &ledger.NotFoundError{Resource: "user", ID: username}
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

// SeedUsers creates the fixed admin and member accounts on an empty users
// table. The default password is meant to be changed in production.
func (s *Store) SeedUsers(bcryptCost int) error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	seed := []models.User{
		{ID: "admin_001", Username: "admin", Role: "admin", Name: "Administrator"},
		{ID: "member_001", Username: "member", Role: "member", Name: "Site Engineer"},
	}
	for _, u := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
		if err := s.db.Create(&u).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	return nil
}

// ---------- backups ----------

func (s *Store) Backups() ([]models.Backup, error) {
	var list []models.Backup
	if err := s.db.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("load backups: %w", err)
	}
	return list, nil
}

func (s *Store) GetBackup(id string) (models.Backup, error) {
	var b models.Backup
	if err := s.db.First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Backup{}, &ledger.NotFoundError{Resource: "backup", ID: id}
		}
		return models.Backup{}, fmt.Errorf("load backup: %w", err)
	}
	return b, nil
}

func (s *Store) AddBackup(b models.Backup) (models.Backup, error) {
	if err := s.db.Create(&b).Error; err != nil {
		return models.Backup{}, fmt.Errorf("create backup: %w", err)
	}
	return b, nil
}

func (s *Store) DeleteBackup(id string) error {
	if err := s.db.Delete(&models.Backup{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete backup: %w", err)
	}
	return nil
}

// ReplaceProjectData swaps in a restored snapshot: the project's current
// entries and files are removed and the snapshot's records inserted, all in
// one transaction.
func (s *Store) ReplaceProjectData(projectID string, entries []models.Entry, files []models.File) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Entry{}, "project_id = ?", projectID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.File{}, "project_id = ?", projectID).Error; err != nil {
			return err
		}
		for i := range entries {
			e := entries[i]
			e.ProjectID = projectID
			if err := tx.Create(&e).Error; err != nil {
				return err
			}
		}
		for i := range files {
			f := files[i]
			f.ProjectID = projectID
			if err := tx.Create(&f).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
