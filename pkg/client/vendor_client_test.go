package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vendor-service/internal/model"
)

// newStubServer fakes the vendor API for client-side behavior checks
func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/vendors", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Vendor{
			{ID: 2, Name: "SoundBlast", Category: "Audio/Visual", IsActive: true},
			{ID: 1, Name: "Acme", Category: "Catering", IsActive: true},
		})
	})
	mux.HandleFunc("GET /api/vendors/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Search query is required"})
			return
		}
		json.NewEncoder(w).Encode([]model.Vendor{{ID: 1, Name: "Acme", IsActive: true}})
	})
	mux.HandleFunc("GET /api/vendors/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.Vendor{ID: 1, Name: "Acme", IsActive: true})
	})
	mux.HandleFunc("GET /api/vendors/999", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Vendor not found"})
	})
	mux.HandleFunc("POST /api/vendors", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer admin-token" {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "Access denied. Admin only."})
			return
		}
		var v model.Vendor
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		v.ID = 3
		v.IsActive = true
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(v)
	})
	mux.HandleFunc("GET /api/vendors/stats/overview", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Stats{TotalVendors: 3, ActiveVendors: 2, Categories: 2})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListVendors(t *testing.T) {
	srv := newStubServer(t)
	c := NewVendorClient(srv.URL)

	vendors, err := c.ListVendors()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(vendors) != 2 || vendors[0].Name != "SoundBlast" {
		t.Fatalf("unexpected list: %v", vendors)
	}
}

func TestGetVendorNotFound(t *testing.T) {
	srv := newStubServer(t)
	c := NewVendorClient(srv.URL)

	if _, err := c.GetVendor(999); err == nil {
		t.Fatal("expected error for unknown vendor")
	}
}

func TestCreateVendorSendsToken(t *testing.T) {
	srv := newStubServer(t)
	c := NewVendorClient(srv.URL)

	// Without a token the server rejects the write and the client surfaces a
	// generic failure
	_, err := c.CreateVendor(&model.Vendor{Name: "Acme"})
	if err == nil {
		t.Fatal("expected error without token")
	}

	c.Token = "admin-token"
	created, err := c.CreateVendor(&model.Vendor{Name: "Acme", Category: "Catering", Contact: "a@b.com", Phone: "555-0000"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 3 || !created.IsActive {
		t.Fatalf("unexpected created vendor: %+v", created)
	}
}

func TestSearchVendorsEscapesQuery(t *testing.T) {
	srv := newStubServer(t)
	c := NewVendorClient(srv.URL)

	vendors, err := c.SearchVendors("a b")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(vendors) != 1 {
		t.Fatalf("expected 1 result, got %d", len(vendors))
	}
}

func TestGetStats(t *testing.T) {
	srv := newStubServer(t)
	c := NewVendorClient(srv.URL)

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalVendors != 3 || stats.ActiveVendors != 2 || stats.Categories != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
