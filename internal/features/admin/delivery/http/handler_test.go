package http_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	adminhttp "arenax-backend/internal/features/admin/delivery/http"
	"arenax-backend/internal/features/admin/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubService struct {
	service.AdminService
}

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	router := gin.New()
	adminhttp.NewAdminHandler(stubService{}).RegisterRoutes(router.Group("/api/v1"))

	routes := make(map[string]bool)
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestRegisterRoutesMatchesClientContract(t *testing.T) {
	routes := registeredRoutes(t)

	for _, want := range []string{
		http.MethodGet + " /api/v1/admin/stats",
		http.MethodGet + " /api/v1/admin/users",
		http.MethodGet + " /api/v1/admin/users/:id",
		http.MethodPost + " /api/v1/admin/users/:id/block-balance",
		http.MethodPost + " /api/v1/admin/users/:id/unblock-balance",
		http.MethodGet + " /api/v1/admin/team",
		http.MethodPost + " /api/v1/admin/team/invite",
		http.MethodDelete + " /api/v1/admin/team/:id",
		http.MethodPost + " /api/v1/admin/tournaments",
		http.MethodPost + " /api/v1/admin/tournaments/:id/results",
		http.MethodGet + " /api/v1/admin/withdrawals",
	} {
		assert.True(t, routes[want], want)
	}
}
