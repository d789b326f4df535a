package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gin-gonic/gin"

	"github.com/prajvalpatil/cashbook-prototype/internal/config"
	"github.com/prajvalpatil/cashbook-prototype/internal/database"
	"github.com/prajvalpatil/cashbook-prototype/internal/router"
	"github.com/prajvalpatil/cashbook-prototype/internal/store"
)

type testEnv struct {
	router *gin.Engine
	token  string
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	st := store.New(db)
	if err := st.SeedUsers(4); err != nil {
		t.Fatalf("seed users: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
		App:    config.AppSubConfig{MaxUploadBytes: 1 << 20},
		Backup: config.BackupConfig{Dir: t.TempDir()},
	}
	env := &testEnv{router: router.SetupRouter(cfg, st)}
	env.token = env.login(t, "admin", "password", "admin")
	return env
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if env.token != "" {
		req.Header.Set("Authorization", "Bearer "+env.token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) login(t *testing.T, username, password, role string) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"username": username, "password": password, "role": role,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.Data.Token
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func (env *testEnv) createProject(t *testing.T) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/projects", gin.H{"name": "Test Villa"})
	if w.Code != http.StatusOK {
		t.Fatalf("create project: status %d body %s", w.Code, w.Body.String())
	}
	var data struct {
		Project struct {
			ID string `json:"id"`
		} `json:"project"`
	}
	decodeData(t, w, &data)
	return data.Project.ID
}

func TestLogin_WrongRoleRejected(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"username": "admin", "password": "password", "role": "member",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestEntryLifecycle(t *testing.T) {
	env := setupEnv(t)
	projectID := env.createProject(t)

	// create a steel purchase with an advance paid
	w := env.do(t, http.MethodPost, "/api/entries", gin.H{
		"kind":       "material",
		"projectId":  projectID,
		"date":       "2025-01-10",
		"party_name": "Sri Steel Traders",
		"item_name":  "Steel",
		"stockDetails": []gin.H{
			{"diameter": 12, "nos": "10", "kg": "100", "rate": "60"},
			{"diameter": 8, "nos": "", "kg": "", "rate": ""}, // blank form row
		},
		"paid": "3000",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create entry: status %d body %s", w.Code, w.Body.String())
	}
	var created struct {
		Entry struct {
			ID       string  `json:"id"`
			Amount   float64 `json:"amount"`
			Paid     float64 `json:"paid"`
			Due      float64 `json:"due"`
			Payments []struct {
				Note string `json:"note"`
			} `json:"payments"`
			StockDetails []struct {
				Diameter int `json:"diameter"`
			} `json:"stockDetails"`
		} `json:"entry"`
	}
	decodeData(t, w, &created)
	e := created.Entry
	if e.Amount != 6000 || e.Paid != 3000 || e.Due != 3000 {
		t.Errorf("amount/paid/due = %v/%v/%v, want 6000/3000/3000", e.Amount, e.Paid, e.Due)
	}
	if len(e.Payments) != 1 || e.Payments[0].Note != "Initial Payment" {
		t.Errorf("payments = %+v", e.Payments)
	}
	if len(e.StockDetails) != 1 {
		t.Errorf("blank row kept: %+v", e.StockDetails)
	}

	// overpayment is rejected
	w = env.do(t, http.MethodPost, "/api/entries/"+e.ID+"/payments", gin.H{"amount": "5000"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("overpayment status = %d, want 400", w.Code)
	}

	// settle the due
	w = env.do(t, http.MethodPost, "/api/entries/"+e.ID+"/payments", gin.H{
		"amount": "3000", "date": "2025-01-20", "mode": "UPI",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("payment: status %d body %s", w.Code, w.Body.String())
	}
	var paidResp struct {
		Entry struct {
			Paid     float64       `json:"paid"`
			Due      float64       `json:"due"`
			Payments []interface{} `json:"payments"`
		} `json:"entry"`
	}
	decodeData(t, w, &paidResp)
	if paidResp.Entry.Paid != 6000 || paidResp.Entry.Due != 0 || len(paidResp.Entry.Payments) != 2 {
		t.Errorf("after payment = %+v", paidResp.Entry)
	}

	// dashboard counts paid money, and the supplier landed in the catalog
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%s/dashboard", projectID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: status %d", w.Code)
	}
	var dash struct {
		Totals struct {
			CashOut float64 `json:"cashOut"`
			Dues    float64 `json:"dues"`
		} `json:"totals"`
	}
	decodeData(t, w, &dash)
	if dash.Totals.CashOut != 6000 || dash.Totals.Dues != 0 {
		t.Errorf("dashboard = %+v", dash.Totals)
	}

	w = env.do(t, http.MethodGet, "/api/parties?type=supplier", nil)
	var parties struct {
		Parties []struct {
			Name string `json:"name"`
		} `json:"parties"`
	}
	decodeData(t, w, &parties)
	if len(parties.Parties) != 1 || parties.Parties[0].Name != "Sri Steel Traders" {
		t.Errorf("parties = %+v", parties.Parties)
	}
}

func TestUpdateEntry_LocksTypeAndRecatalogsParty(t *testing.T) {
	env := setupEnv(t)
	projectID := env.createProject(t)

	w := env.do(t, http.MethodPost, "/api/entries", gin.H{
		"kind":       "material",
		"projectId":  projectID,
		"date":       "2025-01-10",
		"party_name": "Sri Steel Traders",
		"item_name":  "Steel",
		"stockDetails": []gin.H{
			{"diameter": 12, "nos": "10", "kg": "100", "rate": "60"},
		},
		"paid": "3000",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	var created struct {
		Entry struct {
			ID string `json:"id"`
		} `json:"entry"`
	}
	decodeData(t, w, &created)
	id := created.Entry.ID

	// a paid entry cannot be turned into cash in
	w = env.do(t, http.MethodPut, "/api/entries/"+id, gin.H{
		"kind": "cash_in", "projectId": projectID, "date": "2025-01-10", "amount": "6000",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("type change status = %d, want 400", w.Code)
	}

	// editing the party name feeds the catalog like create does
	w = env.do(t, http.MethodPut, "/api/entries/"+id, gin.H{
		"kind":       "material",
		"projectId":  projectID,
		"date":       "2025-01-10",
		"party_name": "New Steel Mart",
		"item_name":  "Steel",
		"stockDetails": []gin.H{
			{"diameter": 12, "nos": "10", "kg": "100", "rate": "60"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d body %s", w.Code, w.Body.String())
	}
	var updated struct {
		Entry struct {
			Paid     float64       `json:"paid"`
			Payments []interface{} `json:"payments"`
		} `json:"entry"`
	}
	decodeData(t, w, &updated)
	if updated.Entry.Paid != 3000 || len(updated.Entry.Payments) != 1 {
		t.Errorf("edit moved paid/payments: %+v", updated.Entry)
	}

	w = env.do(t, http.MethodGet, "/api/parties?type=supplier", nil)
	var parties struct {
		Parties []struct {
			Name string `json:"name"`
		} `json:"parties"`
	}
	decodeData(t, w, &parties)
	names := make(map[string]bool, len(parties.Parties))
	for _, p := range parties.Parties {
		names[p.Name] = true
	}
	if !names["New Steel Mart"] || !names["Sri Steel Traders"] {
		t.Errorf("party catalog = %+v, want both names", parties.Parties)
	}
}

func TestDeleteEntry_MemberForbidden(t *testing.T) {
	env := setupEnv(t)
	projectID := env.createProject(t)

	w := env.do(t, http.MethodPost, "/api/entries", gin.H{
		"kind": "cash_in", "projectId": projectID, "date": "2025-01-01", "amount": "1000",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	var created struct {
		Entry struct {
			ID string `json:"id"`
		} `json:"entry"`
	}
	decodeData(t, w, &created)

	env.token = env.login(t, "member", "password", "member")
	w = env.do(t, http.MethodDelete, "/api/entries/"+created.Entry.ID, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("member delete status = %d, want 403", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupEnv(t)
	env.token = ""

	w := env.do(t, http.MethodGet, "/api/projects", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
