package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"vendor-service/internal/model"
	"vendor-service/internal/store"
	"vendor-service/pkg/logger"
	"vendor-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// VendorRequest defines the structure for vendor creation requests
type VendorRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Contact     string   `json:"contact"`
	Description string   `json:"description"`
	Phone       string   `json:"phone"`
	Website     string   `json:"website"`
	Address     string   `json:"address"`
	Services    []string `json:"services"`
	Rating      float64  `json:"rating"`
}

// VendorHandler serves the vendor directory endpoints
type VendorHandler struct {
	Store *store.VendorStore
}

// ListVendors returns all active vendors, newest first
func (h *VendorHandler) ListVendors(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("list")

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	vendors, err := h.Store.FindActive()
	if err != nil {
		log.Error("Failed to retrieve vendors", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve vendors",
		})
	}

	log.Info("Vendors retrieved successfully", zap.Int("count", len(vendors)))
	return c.JSON(http.StatusOK, vendors)
}

// GetVendor retrieves a single vendor by ID. Deactivated vendors are still
// returned by direct lookup.
func (h *VendorHandler) GetVendor(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid vendor ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid vendor ID",
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	vendor, err := h.Store.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Vendor not found", zap.Uint64("vendor_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Vendor not found",
			})
		}
		log.Error("Failed to retrieve vendor", zap.Uint64("vendor_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve vendor",
		})
	}

	return c.JSON(http.StatusOK, vendor)
}

// SearchVendors returns active vendors matching the query across name,
// category and description
func (h *VendorHandler) SearchVendors(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("search")

	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Search query is required",
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	vendors, err := h.Store.Search(query)
	if err != nil {
		log.Error("Failed to search vendors", zap.String("query", query), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to search vendors",
		})
	}

	log.Info("Vendor search completed",
		zap.String("query", query),
		zap.Int("count", len(vendors)))
	return c.JSON(http.StatusOK, vendors)
}

// CreateVendor creates a new vendor. The admin guard runs before this
// handler; the creator is taken from the authenticated context.
func (h *VendorHandler) CreateVendor(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new vendor")
	prometheus.RecordVendorOperation("create")

	var req VendorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	// Get user ID from context (set by AuthMiddleware)
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "authentication required",
		})
	}

	vendor := model.Vendor{
		Name:        req.Name,
		Category:    req.Category,
		Contact:     req.Contact,
		Description: req.Description,
		Phone:       req.Phone,
		Website:     req.Website,
		Address:     req.Address,
		Services:    req.Services,
		Rating:      req.Rating,
		IsActive:    true,
		CreatedBy:   userID,
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.Store.Create(&vendor); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			log.Warn("Vendor validation failed",
				zap.String("field", verr.Field),
				zap.String("message", verr.Message))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": verr.Error(),
			})
		}
		log.Error("Failed to create vendor", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create vendor",
		})
	}

	// Update vendor gauges
	go h.updateVendorGauges()

	log.Info("Vendor created successfully",
		zap.Uint("id", vendor.ID),
		zap.String("name", vendor.Name),
		zap.String("category", vendor.Category))
	return c.JSON(http.StatusCreated, vendor)
}

// UpdateVendor applies a partial update to an existing vendor
func (h *VendorHandler) UpdateVendor(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid vendor ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid vendor ID",
		})
	}

	log.Info("Updating vendor", zap.Uint64("vendor_id", id))

	var patch model.VendorUpdate
	if err := c.Bind(&patch); err != nil {
		log.Error("Invalid request data", zap.Uint64("vendor_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("update")(time.Now())

	vendor, err := h.Store.UpdateByID(uint(id), &patch)
	if err != nil {
		return h.writeError(c, "update", id, err)
	}

	// Update vendor gauges
	go h.updateVendorGauges()

	log.Info("Vendor updated successfully",
		zap.Uint64("vendor_id", id),
		zap.String("name", vendor.Name))
	return c.JSON(http.StatusOK, vendor)
}

// DeleteVendor deactivates a vendor. The record stays in storage and remains
// retrievable by direct lookup.
func (h *VendorHandler) DeleteVendor(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid vendor ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid vendor ID",
		})
	}

	log.Info("Deleting vendor", zap.Uint64("vendor_id", id))

	// Track DB operations
	defer prometheus.TrackDBOperation("update")(time.Now())

	if _, err := h.Store.SoftDeleteByID(uint(id)); err != nil {
		return h.writeError(c, "delete", id, err)
	}

	// Update vendor gauges
	go h.updateVendorGauges()

	log.Info("Vendor deleted successfully", zap.Uint64("vendor_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Vendor deleted successfully",
	})
}

// GetVendorStats returns directory statistics. Total counts every stored
// record including deactivated vendors; active counts only live ones.
func (h *VendorHandler) GetVendorStats(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("stats")

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	total, err := h.Store.CountAll()
	if err != nil {
		log.Error("Failed to count vendors", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve vendor stats",
		})
	}

	active, err := h.Store.CountActive()
	if err != nil {
		log.Error("Failed to count active vendors", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve vendor stats",
		})
	}

	categories, err := h.Store.DistinctCategories()
	if err != nil {
		log.Error("Failed to list vendor categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve vendor stats",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_vendors":  total,
		"active_vendors": active,
		"categories":     len(categories),
	})
}

// writeError maps store failures on write paths to response codes
func (h *VendorHandler) writeError(c echo.Context, op string, id uint64, err error) error {
	log := logger.FromContext(c)

	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Warn("Vendor validation failed",
			zap.Uint64("vendor_id", id),
			zap.String("field", verr.Field),
			zap.String("message", verr.Message))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": verr.Error(),
		})
	case errors.Is(err, store.ErrNotFound):
		log.Warn("Vendor not found", zap.Uint64("vendor_id", id), zap.String("operation", op))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Vendor not found",
		})
	default:
		log.Error("Vendor operation failed",
			zap.Uint64("vendor_id", id),
			zap.String("operation", op),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to " + op + " vendor",
		})
	}
}

// updateVendorGauges refreshes the active vendor gauges after a mutation
func (h *VendorHandler) updateVendorGauges() {
	active, err := h.Store.CountActive()
	if err != nil {
		return
	}
	prometheus.UpdateActiveVendors(active)

	counts, err := h.Store.ActiveCountsByCategory()
	if err != nil {
		return
	}
	for category, count := range counts {
		prometheus.UpdateVendorsPerCategory(category, int(count))
	}
}
