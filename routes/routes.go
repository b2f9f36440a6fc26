package routes

import (
	"github.com/Shenoy-shank05/zoomoeats/controllers"
	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/middlewares"
	"github.com/Shenoy-shank05/zoomoeats/repository"
	"github.com/Shenoy-shank05/zoomoeats/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the handlers need that is built outside this package.
type Deps struct {
	DB        *gorm.DB
	Log       *zap.Logger
	JWTSecret string
	Auth      *services.AuthService
	Carts     *services.CartService
	Orders    *services.OrderService
	Drivers   *services.DriverService
	Payments  *services.PaymentService
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.RequestID(), middlewares.Logger(d.Log), middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	restRepo := repository.NewRestaurantRepository(d.DB)
	restSvc := services.NewRestaurantService(restRepo)
	dishSvc := services.NewDishService(repository.NewDishRepository(d.DB), restRepo)
	userSvc := services.NewUserService(repository.NewUserRepository(d.DB))

	authCtrl := controllers.NewAuthController(d.Auth, userSvc)
	restCtrl := controllers.NewRestaurantController(restSvc, dishSvc)
	ownerCtrl := controllers.NewOwnerController(restSvc, dishSvc, d.Orders)
	cartCtrl := controllers.NewCartController(d.Carts)
	orderCtrl := controllers.NewOrderController(d.Orders)
	driverCtrl := controllers.NewDriverController(d.Drivers, d.Orders)
	payCtrl := controllers.NewPaymentController(d.Payments)

	authed := middlewares.AuthMiddleware(d.JWTSecret)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/signup", authCtrl.Signup)
		a.POST("/login", authCtrl.Login)
	}

	// Catalog (public)
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/restaurants/:id/dishes", restCtrl.ListDishes)

	users := r.Group("/users/me", authed)
	{
		users.GET("", authCtrl.Me)
		users.PATCH("", authCtrl.UpdateMe)
		users.GET("/addresses", authCtrl.ListAddresses)
		users.POST("/addresses", authCtrl.AddAddress)
	}

	cart := r.Group("/cart", authed)
	{
		cart.GET("", cartCtrl.Get)
		cart.GET("/summary", cartCtrl.Summary)
		cart.POST("/items", cartCtrl.SetItem)
		cart.PATCH("/items/:id", cartCtrl.UpdateItem)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.DELETE("/items", cartCtrl.Clear)
	}

	orders := r.Group("/orders", authed)
	{
		orders.POST("", orderCtrl.Create)
		orders.GET("/mine", orderCtrl.ListMine)
		orders.GET("/:id", orderCtrl.Detail)
		orders.POST("/:id/cancel", orderCtrl.Cancel)
	}

	pay := r.Group("/payments", authed)
	{
		pay.POST("/intent", payCtrl.Intent)
		pay.POST("/confirm", payCtrl.Confirm)
	}

	// Restaurant owners (owner/admin)
	owner := r.Group("/owner", middlewares.AuthMiddleware(d.JWTSecret, entity.RoleOwner, entity.RoleAdmin))
	{
		owner.GET("/restaurants", ownerCtrl.ListRestaurants)
		owner.POST("/restaurants", ownerCtrl.CreateRestaurant)
		owner.GET("/restaurants/:id/orders", ownerCtrl.ListOrders)
		owner.POST("/restaurants/:id/dishes", ownerCtrl.CreateDish)
		owner.PATCH("/dishes/:id", ownerCtrl.UpdateDish)
		owner.PATCH("/orders/:id/status", ownerCtrl.UpdateOrderStatus)
		owner.POST("/orders/:id/assign", ownerCtrl.AssignDriver)
	}

	// Drivers
	driver := r.Group("/driver", middlewares.AuthMiddleware(d.JWTSecret, entity.RoleDriver))
	{
		driver.GET("/profile", driverCtrl.Profile)
		driver.PUT("/profile", driverCtrl.UpsertProfile)
		driver.PATCH("/availability", driverCtrl.SetAvailability)
		driver.GET("/orders/available", driverCtrl.Available)
		driver.POST("/orders/:id/accept", driverCtrl.Accept)
		driver.POST("/orders/:id/deliver", driverCtrl.Deliver)
	}
}
