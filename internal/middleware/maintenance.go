package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministerio-antioquia/antioquia-api/internal/service"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
	"github.com/ministerio-antioquia/antioquia-api/pkg/response"
)

// Maintenance gates public routes behind the maintenance_mode toggle. Admin
// routes bypass this middleware so operators can turn the toggle back off.
func Maintenance(settings *service.SettingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if settings != nil && settings.MaintenanceMode(c.Request.Context()) {
			response.Error(c, appErrors.New("MAINTENANCE", http.StatusServiceUnavailable, "the site is under maintenance"))
			c.Abort()
			return
		}
		c.Next()
	}
}
