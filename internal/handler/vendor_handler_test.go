package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"vendor-service/internal/handler"
	"vendor-service/internal/middleware"
	"vendor-service/internal/model"
	"vendor-service/internal/store"
	"vendor-service/pkg/config"
	"vendor-service/pkg/jwtutil"
	"vendor-service/prometheus"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestApp wires the vendor routes the way cmd/main.go does, over an
// in-memory database.
func newTestApp(t *testing.T) (*echo.Echo, *store.VendorStore) {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	jwtutil.Initialize(&cfg.JWT)
	prometheus.InitMetrics(cfg)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.Vendor{}, &model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	vendorStore := store.NewVendorStore(db)
	vendorHandler := &handler.VendorHandler{Store: vendorStore}

	e := echo.New()
	vendors := e.Group("/api/vendors")
	vendors.GET("", vendorHandler.ListVendors)
	vendors.GET("/search", vendorHandler.SearchVendors)
	vendors.GET("/:id", vendorHandler.GetVendor)

	admin := vendors.Group("", middleware.AuthMiddleware, middleware.RequireAdmin)
	admin.POST("", vendorHandler.CreateVendor)
	admin.PUT("/:id", vendorHandler.UpdateVendor)
	admin.DELETE("/:id", vendorHandler.DeleteVendor)
	admin.GET("/stats/overview", vendorHandler.GetVendorStats)

	return e, vendorStore
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := jwtutil.GenerateToken("admin@eventcraft.com", 1, model.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func organizerToken(t *testing.T) string {
	t.Helper()
	token, err := jwtutil.GenerateToken("organizer@eventcraft.com", 2, model.RoleOrganizer)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func seedVendor(t *testing.T, s *store.VendorStore, name string) *model.Vendor {
	t.Helper()
	v := &model.Vendor{
		Name:     name,
		Category: "Catering",
		Contact:  "a@b.com",
		Phone:    "555-0000",
	}
	if err := s.Create(v); err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	return v
}

func TestCreateVendorAsAdmin(t *testing.T) {
	e, _ := newTestApp(t)

	body := `{"name":"Acme","category":"Catering","contact":"a@b.com","phone":"555-0000"}`
	rec := doJSON(e, http.MethodPost, "/api/vendors", adminToken(t), body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created model.Vendor
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected assigned id")
	}
	if !created.IsActive {
		t.Error("new vendor should be active")
	}
	if created.Rating != 0 {
		t.Errorf("rating should default to 0, got %v", created.Rating)
	}
	if created.CreatedBy != 1 {
		t.Errorf("created_by should be the caller id, got %d", created.CreatedBy)
	}
}

func TestCreateVendorValidation(t *testing.T) {
	e, s := newTestApp(t)

	body := `{"category":"Catering","contact":"a@b.com","phone":"555-0000"}`
	rec := doJSON(e, http.MethodPost, "/api/vendors", adminToken(t), body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	count, err := s.CountAll()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("no record should be persisted, found %d", count)
	}
}

func TestCreateVendorForbiddenForNonAdmin(t *testing.T) {
	e, s := newTestApp(t)

	body := `{"name":"Acme","category":"Catering","contact":"a@b.com","phone":"555-0000"}`
	rec := doJSON(e, http.MethodPost, "/api/vendors", organizerToken(t), body)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	count, err := s.CountAll()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("forbidden create must not persist, found %d", count)
	}
}

func TestCreateVendorRequiresToken(t *testing.T) {
	e, _ := newTestApp(t)

	body := `{"name":"Acme","category":"Catering","contact":"a@b.com","phone":"555-0000"}`
	rec := doJSON(e, http.MethodPost, "/api/vendors", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUpdateVendorForbiddenLeavesRecordUnchanged(t *testing.T) {
	e, s := newTestApp(t)
	v := seedVendor(t, s, "Acme")

	rec := doJSON(e, http.MethodPut, "/api/vendors/"+strconv.Itoa(int(v.ID)), organizerToken(t), `{"phone":"555-9999"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	stored, err := s.FindByID(v.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Phone != "555-0000" {
		t.Errorf("record must be unchanged after 403, got phone %s", stored.Phone)
	}
}

func TestUpdateVendorPartial(t *testing.T) {
	e, s := newTestApp(t)
	v := seedVendor(t, s, "Acme")

	rec := doJSON(e, http.MethodPut, "/api/vendors/"+strconv.Itoa(int(v.ID)), adminToken(t), `{"rating":4.5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated model.Vendor
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Rating != 4.5 {
		t.Errorf("rating not updated: %v", updated.Rating)
	}
	if updated.Name != "Acme" {
		t.Error("unrelated fields must be preserved")
	}
}

func TestUpdateVendorNotFound(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(e, http.MethodPut, "/api/vendors/999", adminToken(t), `{"phone":"555-9999"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateVendorRatingOutOfRange(t *testing.T) {
	e, s := newTestApp(t)
	v := seedVendor(t, s, "Acme")

	rec := doJSON(e, http.MethodPut, "/api/vendors/"+strconv.Itoa(int(v.ID)), adminToken(t), `{"rating":7}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetVendorNotFound(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(e, http.MethodGet, "/api/vendors/999", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListExcludesSoftDeleted(t *testing.T) {
	e, s := newTestApp(t)

	var ids []uint
	for _, name := range []string{"Acme", "Bravo", "Charlie"} {
		v := seedVendor(t, s, name)
		ids = append(ids, v.ID)
		time.Sleep(10 * time.Millisecond)
	}

	rec := doJSON(e, http.MethodDelete, "/api/vendors/"+strconv.Itoa(int(ids[0])), adminToken(t), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/vendors", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}

	var listed []model.Vendor
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 vendors after soft delete, got %d", len(listed))
	}
	if listed[0].Name != "Charlie" || listed[1].Name != "Bravo" {
		t.Errorf("expected newest-first [Charlie Bravo], got [%s %s]", listed[0].Name, listed[1].Name)
	}

	// Soft-deleted vendor stays retrievable by direct lookup
	rec = doJSON(e, http.MethodGet, "/api/vendors/"+strconv.Itoa(int(ids[0])), "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get deleted: expected 200, got %d", rec.Code)
	}
	var deleted model.Vendor
	if err := json.Unmarshal(rec.Body.Bytes(), &deleted); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if deleted.IsActive {
		t.Error("soft-deleted vendor should report inactive")
	}
}

func TestDeleteVendorNotFound(t *testing.T) {
	e, _ := newTestApp(t)

	rec := doJSON(e, http.MethodDelete, "/api/vendors/999", adminToken(t), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestVendorStats(t *testing.T) {
	e, s := newTestApp(t)

	v := seedVendor(t, s, "Acme")
	photo := seedVendor(t, s, "Lens")
	if _, err := s.UpdateByID(photo.ID, &model.VendorUpdate{Category: strPtr("Photography")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := s.SoftDeleteByID(v.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	rec := doJSON(e, http.MethodGet, "/api/vendors/stats/overview", adminToken(t), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stats struct {
		TotalVendors  int64 `json:"total_vendors"`
		ActiveVendors int64 `json:"active_vendors"`
		Categories    int   `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.TotalVendors != 2 {
		t.Errorf("total should count soft-deleted vendors, got %d", stats.TotalVendors)
	}
	if stats.ActiveVendors != 1 {
		t.Errorf("expected 1 active vendor, got %d", stats.ActiveVendors)
	}
	if stats.Categories != 2 {
		t.Errorf("expected 2 categories, got %d", stats.Categories)
	}

	// Stats are admin only
	rec = doJSON(e, http.MethodGet, "/api/vendors/stats/overview", organizerToken(t), "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin stats, got %d", rec.Code)
	}
}

func TestSearchVendors(t *testing.T) {
	e, s := newTestApp(t)

	v := seedVendor(t, s, "Delight Catering")
	seedVendor(t, s, "SoundBlast")

	rec := doJSON(e, http.MethodGet, "/api/vendors/search?q=delight", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []model.Vendor
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != v.ID {
		t.Fatalf("expected only Delight Catering, got %v", got)
	}

	rec = doJSON(e, http.MethodGet, "/api/vendors/search", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing query, got %d", rec.Code)
	}
}

func strPtr(s string) *string {
	return &s
}
