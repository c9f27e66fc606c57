package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
)

// AccountModule wires the self-service account routes.
// Public: POST /api/register, POST /api/login, POST /api/logout, GET /api/me
// Authenticated: GET /api/users
type AccountModule struct {
	Auth  *handlers.AuthHandler
	Users *handlers.UserHandler
}

func NewAccountModule(auth *handlers.AuthHandler, users *handlers.UserHandler) *AccountModule {
	return &AccountModule{Auth: auth, Users: users}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.POST("/register", m.Auth.Register)
	rg.POST("/login", m.Auth.Login)
	rg.POST("/logout", m.Auth.Logout)
	rg.GET("/me", m.Auth.Me)

	rg.GET("/users", m.Users.List)
}
