package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/audit"
	"github.com/yeremiapane/ambatoeat-api/cache"
	"github.com/yeremiapane/ambatoeat-api/controllers"
	"github.com/yeremiapane/ambatoeat-api/events"
	"github.com/yeremiapane/ambatoeat-api/middlewares"
	"github.com/yeremiapane/ambatoeat-api/realtime"
	"github.com/yeremiapane/ambatoeat-api/services"
	"github.com/yeremiapane/ambatoeat-api/utils"
	"gorm.io/gorm"
)

// Dependencies is everything SetupRouter wires. Only DB is required.
type Dependencies struct {
	DB       *gorm.DB
	Cache    cache.Store
	CacheTTL time.Duration
	Hub      *realtime.Hub
	// Publishers receive every event in addition to the websocket hub.
	Publishers    []events.Publisher
	Audit         audit.Reader
	Uploader      *utils.Uploader
	AllowedOrigin string
	AuthLimiter   *middlewares.RateLimiter
}

func (d *Dependencies) defaults() {
	if d.Cache == nil {
		d.Cache = cache.NewMemoryStore()
	}
	if d.CacheTTL == 0 {
		d.CacheTTL = 5 * time.Minute
	}
	if d.Hub == nil {
		d.Hub = realtime.NewHub()
	}
	if d.Uploader == nil {
		d.Uploader = utils.NewUploader("uploads", 5*1024*1024)
	}
	if d.AuthLimiter == nil {
		d.AuthLimiter = middlewares.NewStrictRateLimiter()
	}
}

func SetupRouter(deps Dependencies) *gin.Engine {
	deps.defaults()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.AllowedOrigin))

	r.Static("/uploads", deps.Uploader.Dir)

	publisher := append(events.Multi{deps.Hub}, deps.Publishers...)
	blacklist := utils.NewTokenBlacklist(deps.Cache)

	tableSvc := services.NewTableService(deps.DB, publisher)
	reservationSvc := services.NewReservationService(deps.DB, tableSvc, publisher)

	authCtrl := controllers.NewAuthController(deps.DB, blacklist)
	tableCtrl := controllers.NewTableController(tableSvc)
	reservationCtrl := controllers.NewReservationController(reservationSvc)
	adminCtrl := controllers.NewAdminController(reservationSvc, deps.Audit)
	menuCtrl := controllers.NewMenuController(deps.DB, deps.Cache, deps.CacheTTL, deps.Uploader)
	restaurantCtrl := controllers.NewRestaurantController(deps.DB, deps.Cache, deps.CacheTTL, deps.Uploader)
	realtimeCtrl := controllers.NewRealtimeController(deps.Hub)

	auth := middlewares.AuthMiddleware(blacklist)
	adminOnly := middlewares.AdminOnly()
	userOnly := middlewares.UserOnly()

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			utils.RespondServerError(c, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "ok", nil)
	})

	r.GET("/ws", middlewares.WebSocketAuthMiddleware(blacklist), adminOnly, realtimeCtrl.Stream)

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      AUTH
	// ----------------------------------------------------------------
	authGroup := api.Group("/auth")
	{
		limited := authGroup.Group("/", deps.AuthLimiter.RateLimit())
		limited.POST("/register", authCtrl.Register)
		limited.POST("/login", authCtrl.Login)

		authGroup.GET("/me", auth, authCtrl.Me)
		authGroup.POST("/logout", auth, authCtrl.Logout)
	}

	// ----------------------------------------------------------------
	//                      MENU
	// ----------------------------------------------------------------
	menu := api.Group("/menu")
	{
		menu.GET("", menuCtrl.GetAllMenus)
		menu.GET("/category/:category", menuCtrl.GetMenuByCategory)
		menu.POST("", auth, adminOnly, menuCtrl.CreateMenu)
		menu.PUT("/:id", auth, adminOnly, menuCtrl.UpdateMenu)
		menu.DELETE("/:id", auth, adminOnly, menuCtrl.DeleteMenu)
	}

	// ----------------------------------------------------------------
	//                      TABLES
	// ----------------------------------------------------------------
	tables := api.Group("/tables", auth)
	{
		tables.GET("/available", userOnly, tableCtrl.GetAvailableTables)
		tables.GET("", adminOnly, tableCtrl.GetAllTables)
		tables.POST("", adminOnly, tableCtrl.CreateTable)
		tables.PUT("/:id", adminOnly, tableCtrl.UpdateTable)
		tables.DELETE("/:id", adminOnly, tableCtrl.DeleteTable)
	}

	// ----------------------------------------------------------------
	//                      RESERVATIONS
	// ----------------------------------------------------------------
	reservations := api.Group("/reservations", auth)
	{
		reservations.POST("", userOnly, reservationCtrl.CreateReservation)
		reservations.GET("/user", userOnly, reservationCtrl.GetUserReservations)
		reservations.DELETE("/user/:id", userOnly, reservationCtrl.CancelReservation)

		reservations.GET("", adminOnly, reservationCtrl.GetAllReservations)
		reservations.DELETE("/admin/:id", adminOnly, reservationCtrl.DeleteReservation)
		reservations.GET("/stats", adminOnly, adminCtrl.GetDashboardStats)
		reservations.GET("/export", adminOnly, adminCtrl.ExportReservations)
		reservations.GET("/:id/history", adminOnly, adminCtrl.GetReservationHistory)
	}

	// ----------------------------------------------------------------
	//                      RESTAURANT
	// ----------------------------------------------------------------
	restaurant := api.Group("/restaurant")
	{
		restaurant.GET("", restaurantCtrl.GetRestaurantInfo)
		restaurant.PUT("", auth, adminOnly, restaurantCtrl.UpdateRestaurantInfo)
		restaurant.POST("/facility", auth, adminOnly, restaurantCtrl.AddFacility)
		restaurant.DELETE("/facility/:id", auth, adminOnly, restaurantCtrl.DeleteFacility)
	}

	return r
}
