package routes

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/metrokids/kidsapp/clock"
	"github.com/metrokids/kidsapp/handlers"
	"github.com/metrokids/kidsapp/middlewares"
)

// Register wires all HTTP routes. tz is the region timezone used for
// "today" and the open-now check.
func Register(e *echo.Echo, clk clock.Clock, tz *time.Location) {
	// ===== Handlers (shared singletons) =====
	city := handlers.NewCityHandler()
	cat := handlers.NewCategoryHandler()
	age := handlers.NewAgeGroupHandler()
	org := handlers.NewOrganizationHandler()
	tag := handlers.NewTagHandler()
	loc := handlers.NewLocationHandler(clk, tz)
	act := handlers.NewActivityHandler()
	ev := handlers.NewEventHandler(tz)
	cal := handlers.NewCalendarHandler(clk, tz)

	e.GET("/health", handlers.Health)

	// ===== Public read API =====
	pub := e.Group("", middlewares.PublicCache(60))

	pub.GET("/cities", city.Options)
	pub.GET("/categories", cat.Options)
	pub.GET("/age-groups", age.Options)
	pub.GET("/tags", tag.Options)

	pub.GET("/locations", loc.PublicList)
	pub.GET("/locations/options", loc.Options)
	pub.GET("/locations/:slug", loc.PublicGet)

	pub.GET("/activities", act.PublicList)
	pub.GET("/activities/:slug", act.PublicGet)

	pub.GET("/events", ev.Query)
	pub.GET("/events.ics", ev.Feed)
	pub.GET("/events/:id", ev.Get)

	pub.GET("/calendar", cal.Month)

	// ===== Admin CRUD =====
	admin := e.Group("/admin")

	admin.GET("/cities", city.List)
	admin.GET("/cities/:id", city.Get)
	admin.POST("/cities", city.Create)
	admin.PUT("/cities/:id", city.Update)
	admin.DELETE("/cities/:id", city.Delete)

	admin.GET("/categories", cat.List)
	admin.GET("/categories/:id", cat.Get)
	admin.POST("/categories", cat.Create)
	admin.PUT("/categories/:id", cat.Update)
	admin.DELETE("/categories/:id", cat.Delete)

	admin.GET("/age-groups", age.List)
	admin.GET("/age-groups/:id", age.Get)
	admin.POST("/age-groups", age.Create)
	admin.PUT("/age-groups/:id", age.Update)
	admin.DELETE("/age-groups/:id", age.Delete)

	admin.GET("/organizations", org.List)
	admin.GET("/organizations/:id", org.Get)
	admin.POST("/organizations", org.Create)
	admin.PUT("/organizations/:id", org.Update)
	admin.DELETE("/organizations/:id", org.Delete)

	admin.GET("/tags", tag.List)
	admin.GET("/tags/:id", tag.Get)
	admin.POST("/tags", tag.Create)
	admin.PUT("/tags/:id", tag.Update)
	admin.DELETE("/tags/:id", tag.Delete)

	admin.GET("/locations", loc.List)
	admin.GET("/locations/:id", loc.Get)
	admin.POST("/locations", loc.Create)
	admin.PUT("/locations/:id", loc.Update)
	admin.DELETE("/locations/:id", loc.Delete)

	admin.GET("/activities", act.List)
	admin.GET("/activities/:id", act.Get)
	admin.POST("/activities", act.Create)
	admin.PUT("/activities/:id", act.Update)
	admin.DELETE("/activities/:id", act.Delete)

	admin.GET("/events", ev.List)
	admin.GET("/events/:id", ev.Get)
	admin.POST("/events", ev.Create)
	admin.PUT("/events/:id", ev.Update)
	admin.DELETE("/events/:id", ev.Delete)
}
