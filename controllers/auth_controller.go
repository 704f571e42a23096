package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/streamdesk/agency_backend/middleware"
	"github.com/streamdesk/agency_backend/models"
	"github.com/streamdesk/agency_backend/repositories"
	"github.com/streamdesk/agency_backend/services"
)

const (
	maxLoginAttempts = 5
	loginLockoutTime = 15 * time.Minute
)

// AuthController contains authentication logic for dashboard users
type AuthController struct {
	users         *repositories.UserRepository
	google        *services.GoogleAuthService
	loginAttempts map[string]struct {
		count       int
		lastAttempt time.Time
	}
	loginAttemptsMu sync.Mutex
}

func NewAuthController(users *repositories.UserRepository, google *services.GoogleAuthService) *AuthController {
	return &AuthController{
		users:  users,
		google: google,
		loginAttempts: make(map[string]struct {
			count       int
			lastAttempt time.Time
		}),
	}
}

// isLockedOut reports whether the email has exceeded the login attempt limit
func (ac *AuthController) isLockedOut(email string) bool {
	ac.loginAttemptsMu.Lock()
	defer ac.loginAttemptsMu.Unlock()

	attempt, exists := ac.loginAttempts[email]
	if !exists {
		return false
	}

	if time.Since(attempt.lastAttempt) > loginLockoutTime {
		delete(ac.loginAttempts, email)
		return false
	}

	return attempt.count >= maxLoginAttempts
}

func (ac *AuthController) recordFailedAttempt(email string) {
	ac.loginAttemptsMu.Lock()
	defer ac.loginAttemptsMu.Unlock()

	attempt := ac.loginAttempts[email]
	attempt.count++
	attempt.lastAttempt = time.Now()
	ac.loginAttempts[email] = attempt
}

func (ac *AuthController) clearAttempts(email string) {
	ac.loginAttemptsMu.Lock()
	defer ac.loginAttemptsMu.Unlock()
	delete(ac.loginAttempts, email)
}

// Bootstrap creates the first admin account. Guarded by SETUP_TOKEN and
// refuses to run once any user exists.
func (ac *AuthController) Bootstrap(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.BootstrapRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Data:    err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    err.Error(),
		})
	}

	setupToken := os.Getenv("SETUP_TOKEN")
	if setupToken == "" || req.SetupToken != setupToken {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Invalid setup token",
		})
	}

	count, err := ac.users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check existing users",
			Data:    err.Error(),
		})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Bootstrap has already been performed",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to hash password",
		})
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		Role:     models.RoleAdmin,
	}

	id, err := ac.users.Create(ctx, user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create admin user",
			Data:    err.Error(),
		})
	}

	log.Printf("Bootstrap admin created: %s", req.Email)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Admin user created successfully",
		Data:    map[string]string{"id": id},
	})
}

// Login authenticates a dashboard user with email and password
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Data:    err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    err.Error(),
		})
	}

	if ac.isLockedOut(req.Email) {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Status:  http.StatusTooManyRequests,
			Message: "Too many failed login attempts. Try again later.",
		})
	}

	user, err := ac.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == repositories.ErrNotFound {
			ac.recordFailedAttempt(req.Email)
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid credentials",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
			Data:    err.Error(),
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		ac.recordFailedAttempt(req.Email)
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	ac.clearAttempts(req.Email)

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	if err := ac.users.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("Failed to update last login for %s: %v", user.Email, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: models.LoginResponse{
			Token: token,
			User:  user,
		},
	})
}

// GoogleLogin authenticates a dashboard user with a Google ID token.
// The account must already exist; Google Sign-In does not provision users.
func (ac *AuthController) GoogleLogin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Data:    err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    err.Error(),
		})
	}

	info, err := ac.google.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		log.Printf("Google login failed: %v", err)
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Google token verification failed",
		})
	}

	user, err := ac.users.FindByEmail(ctx, info.Email)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "No dashboard account for this Google identity",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
			Data:    err.Error(),
		})
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	if err := ac.users.UpdateLastLogin(ctx, user.ID); err != nil {
		log.Printf("Failed to update last login for %s: %v", user.Email, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: models.LoginResponse{
			Token: token,
			User:  user,
		},
	})
}

// Logout blacklists the current token until it expires
func (ac *AuthController) Logout(c echo.Context) error {
	token, _ := c.Get("token").(string)
	claims := middleware.GetUserFromToken(c)

	if token != "" && claims != nil {
		middleware.BlacklistToken(token, time.Unix(claims.ExpiresAt, 0))
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logged out successfully",
	})
}

// Me returns the authenticated user's profile
func (ac *AuthController) Me(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, ok := c.Get("userID").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "User ID not found in context",
		})
	}

	user, err := ac.users.Get(ctx, userID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "User not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User fetched successfully",
		Data:    user,
	})
}

// CreateUser provisions a staff account. Admin only.
func (ac *AuthController) CreateUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
			Data:    err.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    err.Error(),
		})
	}

	if _, err := ac.users.FindByEmail(ctx, req.Email); err == nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "A user with this email already exists",
		})
	} else if err != repositories.ErrNotFound {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
			Data:    err.Error(),
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to hash password",
		})
	}

	user := &models.User{
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		Role:     req.Role,
	}

	id, err := ac.users.Create(ctx, user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
			Data:    err.Error(),
		})
	}

	user.ID = id

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "User created successfully",
		Data:    user,
	})
}

// RegisterFCMToken stores a device token for push notifications
func (ac *AuthController) RegisterFCMToken(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, ok := c.Get("userID").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "User ID not found in context",
		})
	}

	var req struct {
		Token string `json:"token" validate:"required"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := ac.users.UpdateFCMToken(ctx, userID, req.Token); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to store FCM token",
			Data:    err.Error(),
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "FCM token registered",
	})
}
