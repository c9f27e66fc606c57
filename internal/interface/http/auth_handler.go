package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/response"
	"github.com/oksasatya/go-account-service/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.Service
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.Service, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

// Password is checked by the policy, not by binding, so every violation is reported.
type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type meResponse struct {
	Authenticated bool      `json:"authenticated"`
	User          *userView `json:"user,omitempty"`
}

func sessionID(c *gin.Context) string {
	return c.GetString(middleware.CtxSessionIDKey)
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserView(u), "Registration successful. Please log in.", nil)
}

// Login POST /api/login
// A fresh token is bound on every successful login and the previous one is
// cleared.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sid, err := helpers.NewSessionToken()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), sid, req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if old := sessionID(c); old != "" && old != sid {
		h.Svc.Logout(c.Request.Context(), old)
	}
	h.Cookies.SetSession(c, sess.ID)
	response.Success(c, http.StatusOK, gin.H{"username": sess.Username}, "Login successful.", nil)
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), sessionID(c))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "logged out", nil)
}

// Me GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.CurrentUser(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if u == nil {
		response.Success(c, http.StatusOK, meResponse{}, "anonymous", nil)
		return
	}
	v := toUserView(u)
	response.Success(c, http.StatusOK, meResponse{Authenticated: true, User: &v}, "ok", nil)
}
