package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-account-service/internal/interface/http"
)

// AdminModule wires the admin routes. Authorization happens in the use
// cases, so a promotion or deletion is visible on the very next request.
type AdminModule struct {
	Users *handlers.UserHandler
}

func NewAdminModule(users *handlers.UserHandler) *AdminModule {
	return &AdminModule{Users: users}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.GET("/users", m.Users.AdminList)
		admin.GET("/users/search", m.Users.Search)
		admin.POST("/users/:id/promote", m.Users.Promote)
		admin.DELETE("/users/:id", m.Users.Delete)
	}
}
