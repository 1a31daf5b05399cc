package handler

import (
	"errors"
	"net/http"
	"time"

	"vendor-service/internal/model"
	"vendor-service/internal/store"
	"vendor-service/pkg/jwtutil"
	"vendor-service/pkg/logger"
	"vendor-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves registration and login
type AuthHandler struct {
	Users *store.UserStore
}

// Register creates a new account. Self-registration is limited to the
// organizer and attendee roles; admin accounts come from the seed bootstrap.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		log.Error("Invalid registration data",
			zap.String("email", req.Email),
			zap.Bool("password_provided", req.Password != ""))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	role := req.Role
	if role == "" {
		role = model.RoleOrganizer
	}
	if role != model.RoleOrganizer && role != model.RoleAttendee {
		log.Warn("Rejected registration with disallowed role", zap.String("role", role))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be organizer or attendee"})
	}

	// Check if user already exists - track DB query
	defer prometheus.TrackDBOperation("query")(time.Now())
	if _, err := h.Users.FindByEmail(req.Email); err == nil {
		log.Error("User already exists", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	// Create new user
	user := model.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := h.Users.Create(&user); err != nil {
		log.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("User registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role))

	return c.JSON(http.StatusCreated, echo.Map{
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login verifies credentials and issues a JWT carrying the user's role
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// Find user in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.Users.FindByEmail(req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("Failed to look up user", zap.String("email", req.Email), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
		log.Error("User not found", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Generate JWT token carrying the user's role
	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
