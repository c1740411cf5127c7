package server

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/arjunrk/campusvibe/internal/payment"
)

func routeRegistered(routes gin.RoutesInfo, method, path string) bool {
	for _, route := range routes {
		if route.Method == method && route.Path == path {
			return true
		}
	}
	return false
}

func TestDirectoryAdminRoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setupRoutes(r, nil, nil, payment.NewSimulatedGateway())
	routes := r.Routes()

	for _, want := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1/admin/departments"},
		{http.MethodPut, "/v1/admin/departments/:id"},
		{http.MethodDelete, "/v1/admin/departments/:id"},
		{http.MethodPost, "/v1/admin/clubs"},
		{http.MethodPut, "/v1/admin/clubs/:id"},
		{http.MethodDelete, "/v1/admin/clubs/:id"},
		{http.MethodPost, "/v1/admin/mentors"},
		{http.MethodPut, "/v1/admin/mentors/:id"},
		{http.MethodDelete, "/v1/admin/mentors/:id"},
	} {
		assert.True(t, routeRegistered(routes, want.method, want.path),
			"missing route %s %s", want.method, want.path)
	}
}

func TestCoreRoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setupRoutes(r, nil, nil, payment.NewSimulatedGateway())
	routes := r.Routes()

	for _, want := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1/auth/register"},
		{http.MethodPost, "/v1/auth/login"},
		{http.MethodGet, "/v1/events"},
		{http.MethodPost, "/v1/events/:id/register"},
		{http.MethodPost, "/v1/events/:id/bookmark"},
		{http.MethodPost, "/v1/checkin"},
		{http.MethodGet, "/metrics"},
		{http.MethodGet, "/healthz"},
	} {
		assert.True(t, routeRegistered(routes, want.method, want.path),
			"missing route %s %s", want.method, want.path)
	}
}
