package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ping(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

func perform(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouterSetup(t *testing.T) {
	t.Run("registers domain groups under the version prefix", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine, WithAPIVersion("v1"))

		crm := NewDomainGroup("crm", "/crm")
		crm.GET("/customers", ping("customers"))
		crm.POST("/activities", ping("activities"))
		r.Register(crm)
		r.Setup()

		assert.Equal(t, http.StatusOK, perform(engine, "GET", "/api/v1/crm/customers").Code)
		assert.Equal(t, http.StatusOK, perform(engine, "POST", "/api/v1/crm/activities").Code)
		assert.Equal(t, http.StatusNotFound, perform(engine, "GET", "/crm/customers").Code)
	})

	t.Run("alternate api version changes the prefix", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine, WithAPIVersion("v2"))

		group := NewDomainGroup("system", "/system")
		group.GET("/ping", ping("pong"))
		r.Register(group)
		r.Setup()

		assert.Equal(t, http.StatusOK, perform(engine, "GET", "/api/v2/system/ping").Code)
		assert.Equal(t, http.StatusNotFound, perform(engine, "GET", "/api/v1/system/ping").Code)
	})

	t.Run("router middleware guards all api routes", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine)
		r.Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusUnauthorized)
		})

		group := NewDomainGroup("crm", "/crm")
		group.GET("/customers", ping("customers"))
		r.Register(group)
		r.Setup()

		assert.Equal(t, http.StatusUnauthorized, perform(engine, "GET", "/api/v1/crm/customers").Code)
	})

	t.Run("group middleware applies to its routes only", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine)

		guarded := NewDomainGroup("guarded", "/guarded")
		guarded.Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusForbidden)
		})
		guarded.GET("/resource", ping("resource"))

		open := NewDomainGroup("open", "/open")
		open.GET("/resource", ping("resource"))

		r.Register(guarded).Register(open)
		r.Setup()

		assert.Equal(t, http.StatusForbidden, perform(engine, "GET", "/api/v1/guarded/resource").Code)
		assert.Equal(t, http.StatusOK, perform(engine, "GET", "/api/v1/open/resource").Code)
	})

	t.Run("subgroups nest under the parent prefix", func(t *testing.T) {
		engine := gin.New()
		r := NewRouter(engine)

		crm := NewDomainGroup("crm", "/crm")
		customers := crm.Group("customers", "/customers")
		customers.GET("/:id/activities", ping("activities"))
		r.Register(crm)
		r.Setup()

		assert.Equal(t, http.StatusOK, perform(engine, "GET", "/api/v1/crm/customers/123/activities").Code)
	})
}

func TestDomainGroupAccessors(t *testing.T) {
	group := NewDomainGroup("crm", "/crm")
	assert.Equal(t, "crm", group.Name())
	assert.Equal(t, "/crm", group.Prefix())
}
