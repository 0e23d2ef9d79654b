package router

import (
	"time"

	"backoffice/internal/config"
	"backoffice/internal/handler"
	"backoffice/internal/infra"
	"backoffice/internal/middleware"
	"backoffice/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps groups everything the router needs so main.go wires it in one call.
type Deps struct {
	Cfg        *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	FeedCB     *infra.CircuitBreaker
	MediaStore *infra.DiskStorage

	Auth       *handler.AuthHandler
	Categories *handler.CategoryHandler
	Products   *handler.ProductHandler
	Suppliers  *handler.SupplierHandler
	ImportJobs *handler.ImportJobHandler
	Banners    *handler.BannerHandler
	Media      *handler.MediaHandler
	Users      *handler.UserHandler
	Orders     *handler.OrderHandler
}

// New builds the Gin engine with the full middleware chain and all routes.
func New(d Deps) *gin.Engine {
	if d.Cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
		middleware.RateLimiter(300, time.Minute),
	)

	// Unauthenticated surface
	r.GET("/health", handler.Health(d.DB, d.Redis, d.FeedCB))
	r.Static("/media", d.MediaStore.Root())
	if d.Cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), d.Auth.Login)
		auth.POST("/refresh", d.Auth.Refresh)
	}

	api := v1.Group("")
	api.Use(middleware.JWTAuth(d.Cfg.JWTSecret))

	catRead := middleware.RequireCapability(policy.CatalogRead)
	catWrite := middleware.RequireCapability(policy.CatalogWrite)
	contentWrite := middleware.RequireCapability(policy.ContentWrite)
	ordersManage := middleware.RequireCapability(policy.OrdersManage)
	importsRun := middleware.RequireCapability(policy.ImportsRun)
	usersManage := middleware.RequireCapability(policy.UsersManage)

	categories := api.Group("/categories")
	{
		categories.GET("", catRead, d.Categories.List)
		categories.GET("/tree", catRead, d.Categories.Tree)
		categories.POST("", catWrite, d.Categories.Create)
		categories.PUT("/:id", catWrite, d.Categories.Update)
		categories.DELETE("/:id", catWrite, d.Categories.Delete)
		categories.POST("/:id/move", catWrite, d.Categories.Move)
		categories.POST("/:id/reorder", catWrite, d.Categories.Reorder)
	}

	products := api.Group("/products")
	{
		products.GET("", catRead, d.Products.List)
		products.GET("/:id", catRead, d.Products.Get)
		products.POST("", catWrite, d.Products.Create)
		products.PUT("/:id", catWrite, d.Products.Update)
		products.DELETE("/:id", catWrite, d.Products.Deactivate)
		products.GET("/:id/code-history", catRead, d.Products.CodeHistory)
	}

	suppliers := api.Group("/suppliers")
	{
		suppliers.GET("", catRead, d.Suppliers.List)
		suppliers.GET("/:id", catRead, d.Suppliers.Get)
		suppliers.POST("", catWrite, d.Suppliers.Create)
		suppliers.PUT("/:id", catWrite, d.Suppliers.Update)
		suppliers.DELETE("/:id", catWrite, d.Suppliers.Delete)
		suppliers.POST("/:id/sync", importsRun, d.Suppliers.Sync)
		suppliers.GET("/:id/import-jobs", catRead, d.Suppliers.ImportJobs)
	}

	importJobs := api.Group("/import-jobs")
	{
		importJobs.GET("/:id", catRead, d.ImportJobs.Get)
		importJobs.POST("/:id/cancel", importsRun, d.ImportJobs.Cancel)
	}

	banners := api.Group("/banners")
	{
		banners.GET("", catRead, d.Banners.List)
		banners.POST("", contentWrite, d.Banners.Create)
		banners.PUT("/:id", contentWrite, d.Banners.Update)
		banners.DELETE("/:id", contentWrite, d.Banners.Delete)
		banners.POST("/:id/reorder", contentWrite, d.Banners.Reorder)
	}

	media := api.Group("/media")
	{
		media.GET("", catRead, d.Media.List)
		media.POST("", contentWrite, d.Media.Upload)
		media.DELETE("/:id", contentWrite, d.Media.Delete)
	}

	users := api.Group("/users")
	{
		users.GET("", usersManage, d.Users.List)
		users.POST("", usersManage, d.Users.Create)
		users.PUT("/:id", usersManage, d.Users.Update)
		users.PATCH("/:id/role", usersManage, d.Users.ChangeRole)
		users.DELETE("/:id", usersManage, d.Users.Deactivate)
		users.POST("/:id/reactivate", usersManage, d.Users.Reactivate)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", ordersManage, d.Orders.List)
		orders.GET("/:id", ordersManage, d.Orders.Get)
		orders.PATCH("/:id/status", ordersManage, d.Orders.UpdateStatus)
		orders.GET("/:id/invoice", ordersManage, d.Orders.Invoice)
	}

	return r
}
