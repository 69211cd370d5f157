package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Handlers groups the handlers mounted by RegisterRoutes.
type Handlers struct {
	Health      *HealthHandler
	Property    *PropertyHandler
	User        *UserHandler
	Watchlist   *WatchlistHandler
	SavedSearch *SavedSearchHandler
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator errors report json field names so
// messages match the request body.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// RegisterRoutes mounts the service endpoints at the root and the resource
// endpoints under prefix.
func RegisterRoutes(router *gin.Engine, prefix string, h Handlers) {
	useJSONFieldNames()

	if h.Health != nil {
		router.GET("/", h.Health.Info)
		router.GET("/health", h.Health.Health)
		router.GET("/health/ready", h.Health.Ready)
	}

	api := router.Group(prefix)
	if h.Health != nil {
		api.GET("/status", h.Health.Status)
	}

	if p := h.Property; p != nil {
		properties := api.Group("/properties")
		{
			properties.GET("", p.List)
			properties.GET("/neighborhoods", p.Neighborhoods)
			properties.GET("/property-types", p.PropertyTypes)
			properties.GET("/filter-options", p.FilterOptions)
			properties.GET("/stats/neighborhoods", p.NeighborhoodStats)
			properties.GET("/stats/types", p.TypeStats)
			properties.GET("/top", p.Top)
			properties.GET("/top/:limit", p.Top)
			properties.GET("/pid/:pid", p.GetByPID)
			properties.GET("/search/:term", p.Search)
			properties.GET("/neighborhood/:name", p.ByNeighborhood)
			properties.GET("/:id", p.Get)
			properties.GET("/:id/history", p.History)
			properties.POST("", p.Create)
			properties.PUT("/:id", p.Update)
			properties.DELETE("/:id", p.Delete)
		}
	}

	if w := h.Watchlist; w != nil {
		watchlist := api.Group("/watchlist")
		{
			watchlist.GET("/item/:watchlistId", w.Get)
			watchlist.GET("/check/:userId/:propertyId", w.Check)
			watchlist.GET("/:userId", w.List)
			watchlist.GET("/:userId/stats", w.Stats)
			watchlist.GET("/:userId/by-neighborhood", w.ByNeighborhood)
			watchlist.POST("", w.Add)
			watchlist.PUT("/:watchlistId", w.Update)
			watchlist.DELETE("/:id", w.Remove)
			watchlist.DELETE("/:id/property/:propertyId", w.RemoveProperty)
			watchlist.DELETE("/:id/clear", w.Clear)
		}
	}

	if s := h.SavedSearch; s != nil {
		searches := api.Group("/saved-searches")
		{
			searches.GET("/search/:searchId", s.Get)
			searches.GET("/:userId", s.List)
			searches.GET("/:userId/most-used", s.MostUsed)
			searches.GET("/:userId/recent", s.Recent)
			searches.GET("/:userId/search/:term", s.SearchByName)
			searches.GET("/:userId/stats", s.Stats)
			searches.POST("", s.Create)
			searches.PUT("/:searchId", s.Update)
			searches.PUT("/:searchId/execute", s.Execute)
			searches.DELETE("/:searchId", s.Delete)
		}
	}

	if u := h.User; u != nil {
		users := api.Group("/users")
		{
			users.GET("", u.List)
			users.GET("/inactive", u.Inactive)
			users.GET("/inactive/:days", u.Inactive)
			users.GET("/username/:username", u.GetByUsername)
			users.GET("/:userId", u.Get)
			users.GET("/:userId/activity", u.Activity)
			users.POST("", u.Create)
			users.PUT("/:userId", u.Update)
			users.PUT("/:userId/login", u.Login)
			users.DELETE("/:userId", u.Delete)
		}
	}
}
