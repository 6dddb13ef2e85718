package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/thanakornw/dineqr/cart"
	"github.com/thanakornw/dineqr/config"
	"github.com/thanakornw/dineqr/controllers"
	"github.com/thanakornw/dineqr/database"
	"github.com/thanakornw/dineqr/middlewares"
	"github.com/thanakornw/dineqr/models"
	"github.com/thanakornw/dineqr/router"
	"github.com/thanakornw/dineqr/services"
	"github.com/thanakornw/dineqr/utils"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := database.Seed(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed database: %v", err)
	}

	carts := cart.NewStore(controllers.NewCartSaver(db))

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	monitor := services.NewBoardMonitor(db)
	monitor.Start()
	defer monitor.Stop()

	paymentService := services.NewPaymentService(db)
	paymentService.StartTimeoutChecker()
	defer paymentService.Stop()

	r := router.SetupRouter(db, carts)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.CareerPath{},
		&models.Branch{},
		&models.Table{},
		&models.DineInSession{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Ingredient{},
		&models.WaiterCall{},
		&models.CartSnapshot{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
