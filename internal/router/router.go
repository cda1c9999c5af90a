package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/courseway-io/Courseway/internal/config"
	"github.com/courseway-io/Courseway/internal/middleware"
	"github.com/courseway-io/Courseway/internal/modules/handler"
	"github.com/courseway-io/Courseway/internal/modules/serializer"
)

type RouterDeps struct {
	Config            *config.Config
	Log               *zap.Logger
	CatalogHandler    *handler.CatalogHandler
	CourseHandler     *handler.CourseHandler
	PreferenceHandler *handler.PreferenceHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		// Add trace ID to response header
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.APIKeyAuth(d.Config))

		// ping endpoint
		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		v1.GET("/sessions", d.CatalogHandler.GetSessions)
		v1.GET("/interest-types", d.CatalogHandler.GetInterestTypes)

		halls := v1.Group("/halls")
		{
			halls.GET("", d.CatalogHandler.GetHalls)
			halls.GET("/:hall_id/rooms", d.CatalogHandler.GetRooms)
			halls.GET("/:hall_id/timetable", d.CatalogHandler.GetTimetable)
		}

		courses := v1.Group("/courses")
		{
			courses.POST("", d.CourseHandler.GenerateCourse)
			courses.GET("", d.CourseHandler.ListCourses)
			courses.GET("/:course_id", d.CourseHandler.GetCourse)
			courses.DELETE("/:course_id", d.CourseHandler.DeleteCourse)
		}

		visitors := v1.Group("/visitors")
		{
			visitors.GET("/:visitor_id/preferences", d.PreferenceHandler.GetPreferences)
			visitors.PUT("/:visitor_id/preferences", d.PreferenceHandler.PutPreferences)
			visitors.DELETE("/:visitor_id/preferences", d.PreferenceHandler.DeletePreferences)
		}
	}
	return r
}
