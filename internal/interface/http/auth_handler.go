package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bookbuddy/bookbuddy-api/internal/application"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/entity"
	"github.com/bookbuddy/bookbuddy-api/internal/domain/repository"
	"github.com/bookbuddy/bookbuddy-api/pkg/helpers"
	"github.com/bookbuddy/bookbuddy-api/pkg/response"
	"github.com/bookbuddy/bookbuddy-api/pkg/validation"
)

// AuthHandler serves registration, login and the profile view.
type AuthHandler struct {
	Users    *application.UserService
	Sessions *application.SessionManager
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
	Cookies  *helpers.Manager
}

func NewAuthHandler(users *application.UserService, sessions *application.SessionManager, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		Users:    users,
		Sessions: sessions,
		JWT:      jwt,
		Logger:   logger,
		Cookies:  helpers.NewCookie(cookieDomain, cookieSecure),
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Mobile   string `json:"mobile" binding:"required"`
	Role     string `json:"role" binding:"required,role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// userView strips the password field from API output. The plaintext
// password lives in the store, not on the wire.
func userView(u *entity.User) gin.H {
	return gin.H{
		"id":     u.ID,
		"name":   u.Name,
		"email":  u.Email,
		"mobile": u.Mobile,
		"role":   u.Role,
	}
}

// Register creates the account and, like the legacy register page, logs
// the new user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Users.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			response.Error[any](c, http.StatusConflict, "email already registered", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to register", nil)
		return
	}

	if _, err := h.Sessions.Login(req.Email, req.Password); err != nil {
		h.Logger.WithError(err).Error("auto login after register failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to register", nil)
		return
	}
	h.issueCookies(c, u.ID)
	response.Success(c, http.StatusCreated, userView(u), "registered", gin.H{"redirect": application.DashboardPath})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Sessions.Login(req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.issueCookies(c, u.ID)
	response.Success(c, http.StatusOK, userView(u), "login successful", nil)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	claims, err := h.JWT.ParseRefreshToken(refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	_, u := h.Sessions.State()
	if u == nil || u.ID != claims.UserID {
		response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
		return
	}
	h.issueCookies(c, u.ID)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", nil)
}

// Logout clears the session slot and the cookie pair. The redirect the
// legacy client performed as a hard navigation comes back as data for the
// caller to execute.
func (h *AuthHandler) Logout(c *gin.Context) {
	redirect := h.Sessions.Logout()
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true, "redirect": redirect.To}, "logged out", nil)
}

// GetProfile returns the current user plus their listings, the way the
// profile page rendered it.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	u, err := h.Sessions.Current()
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "not logged in", nil)
		return
	}
	p, err := h.Users.GetProfile(u)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":  userView(p.User),
		"books": p.Books,
	}, "profile", nil)
}

func (h *AuthHandler) issueCookies(c *gin.Context, userID string) {
	access, aexp, err := h.JWT.GenerateAccessToken(userID)
	if err != nil {
		h.Logger.WithError(err).Error("generate access token failed")
		return
	}
	refresh, rexp, err := h.JWT.GenerateRefreshToken(userID)
	if err != nil {
		h.Logger.WithError(err).Error("generate refresh token failed")
		return
	}
	h.Cookies.SetPair(c, access, aexp, refresh, rexp)
}
