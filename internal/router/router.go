package router

import (
	"fmt"
	"time"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/auth"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/controllers"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/middleware"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/services"
	"github.com/franciscosanchezn/gin-recipe-catalog/internal/views"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Role sets used by the guards
var (
	Everyone      = []string{models.RoleGuest, models.RoleRegistered, models.RoleAdmin}
	Authenticated = []string{models.RoleRegistered, models.RoleAdmin}
	AdminOnly     = []string{models.RoleAdmin}
)

// Options carries the configuration the HTTP layer needs
type Options struct {
	BasePath       string
	AllowedOrigins []string
	SessionSecret  string
	SecureCookies  bool
	BcryptCost     int
	FirstUserAdmin bool
}

// NewRouter wires services, controllers and middleware into a gin engine
func NewRouter(db *gorm.DB, opts Options) (*gin.Engine, error) {
	tmpl, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	cookiePath := opts.BasePath
	if cookiePath == "" {
		cookiePath = "/"
	}
	store := auth.NewSessionStore(opts.SessionSecret, cookiePath, opts.SecureCookies)
	r.Use(auth.SessionMiddleware(store), middleware.LoadIdentity(), middleware.BasePath(opts.BasePath))

	// Services
	userService := services.NewUserService(db, auth.NewBcryptHasher(opts.BcryptCost),
		services.UserServiceOptions{FirstUserAdmin: opts.FirstUserAdmin})
	catalogService := services.NewCatalogService(db)
	dishService := services.NewDishService(db)
	lineService := services.NewDishIngredientService(db)
	messageService := services.NewMessageService(db)
	statsService := services.NewStatsService(userService, messageService, dishService)

	// Controllers
	authController := controllers.NewAuthController(userService)
	catalogController := controllers.NewCatalogController(catalogService)
	dishController := controllers.NewDishController(dishService, lineService, catalogService)
	messageController := controllers.NewMessageController(messageService)
	adminController := controllers.NewAdminController(statsService)
	healthController := controllers.NewHealthController(db)

	guard := middleware.GuardOptions{LoginPath: opts.BasePath + "/login", OnDenied: controllers.Forbidden}
	requireRole := func(allowed []string) gin.HandlerFunc {
		return middleware.RequireRole(guard, allowed...)
	}

	base := r.Group(opts.BasePath)
	{
		base.GET("/health", healthController.Check)

		public := base.Group("", requireRole(Everyone))
		{
			public.GET("/", catalogController.Home)
			public.GET("/regisztracio", authController.ShowRegister)
			public.POST("/regisztracio", authController.Register)
			public.GET("/login", authController.ShowLogin)
			public.POST("/login", authController.Login)
			public.GET("/logout", authController.Logout)
			public.GET("/receptek", catalogController.Recipes)
			public.GET("/etelek-hozzavalok", catalogController.RecipeDetails)
			public.GET("/kategoria", catalogController.Categories)
			public.GET("/hozzavalo", catalogController.Ingredients)
			public.GET("/hasznalt", catalogController.Usages)
			public.GET("/kapcsolat", messageController.ShowContact)
			public.POST("/kapcsolat", messageController.Submit)
		}

		base.GET("/uzenetek", requireRole(Authenticated), messageController.List)
		base.GET("/admin", requireRole(AdminOnly), adminController.Dashboard)

		crud := base.Group("/crud", requireRole(Authenticated))
		{
			crud.GET("", dishController.List)
			crud.GET("/uj", dishController.New)
			crud.POST("/uj", dishController.Create)
			crud.GET("/szerkesztes/:id", dishController.Edit)
			crud.POST("/szerkesztes/:id", dishController.Update)
			crud.GET("/torles/:id", dishController.ConfirmDelete)
			crud.POST("/torles/:id", dishController.Delete)
			crud.GET("/hozzavalok/:id", dishController.Ingredients)
			crud.POST("/hozzavalok/:id", dishController.AddIngredient)
			crud.POST("/hozzavalok/:id/:hid/modositas", dishController.UpdateIngredient)
			crud.POST("/hozzavalok/:id/:hid/torles", dishController.RemoveIngredient)
		}
	}

	r.NoRoute(controllers.NotFound)

	return r, nil
}
