package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/pkg/response"
	"github.com/oksasatya/go-account-service/pkg/validation"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type userIDParam struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type searchQuery struct {
	Q    string `form:"q" binding:"max=100"`
	Size int    `form:"size"`
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserViews(users), "ok", map[string]any{"count": len(users)})
}

// AdminList GET /api/admin/users
func (h *UserHandler) AdminList(c *gin.Context) {
	users, err := h.Svc.AdminListUsers(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserViews(users), "ok", map[string]any{"count": len(users)})
}

// Promote POST /api/admin/users/:id/promote
func (h *UserHandler) Promote(c *gin.Context) {
	var p userIDParam
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.PromoteUser(c.Request.Context(), sessionID(c), p.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "User "+u.Username+" promoted to admin.", nil)
}

// Delete DELETE /api/admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	var p userIDParam
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid user id", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.DeleteUser(c.Request.Context(), sessionID(c), p.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "User "+u.Username+" deleted.", nil)
}

// Search GET /api/admin/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	docs, err := h.Svc.SearchUsers(c.Request.Context(), sessionID(c), q.Q, q.Size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, docs, "ok", map[string]any{"count": len(docs)})
}
