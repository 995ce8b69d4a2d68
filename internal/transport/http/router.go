package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/mderbes/bookvault/internal/transport/http/handler"
	"github.com/mderbes/bookvault/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	jwtKey []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(jwtKey)

	api := r.Group("/api")

	// Public auth routes
	api.POST("/auth", authHandler.Login)
	api.POST("/auth/recover", authHandler.Recover)
	api.GET("/auth/reset/:token", authHandler.CheckReset)
	api.POST("/auth/reset/:token", authHandler.ConfirmReset)
	api.GET("/auth", authMW, authHandler.Current)

	// Registration
	api.POST("/users", userHandler.Register)
	api.POST("/users/resend", userHandler.Resend)
	api.GET("/users/verify/:token", userHandler.Verify)

	// Protected book routes
	books := api.Group("/books", authMW)
	books.GET("", bookHandler.List)
	books.POST("", bookHandler.Create)
	books.GET("/:id", bookHandler.GetByID)
	books.PUT("/:id", bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)

	return r
}
