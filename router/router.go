package router

import (
	"github.com/gin-gonic/gin"
	"github.com/thanakornw/dineqr/cart"
	"github.com/thanakornw/dineqr/controllers"
	"github.com/thanakornw/dineqr/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, carts *cart.Store) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	branchCtrl := controllers.NewBranchController(db)
	tableCtrl := controllers.NewTableController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	customerCtrl := controllers.NewCustomerController(db)
	cartCtrl := controllers.NewCartController(db, carts)
	orderCtrl := controllers.NewOrderController(db, carts)
	cookerCtrl := controllers.NewCookerController(db)
	ingredientCtrl := controllers.NewIngredientController(db)
	careerCtrl := controllers.NewCareerController(db)
	waiterCallCtrl := controllers.NewWaiterCallController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	adminCtrl := controllers.NewAdminController(db)
	reportCtrl := controllers.NewReportController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter for login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- CUSTOMER (no auth; the dine-in session key is the credential) --
	r.GET("/branches", branchCtrl.GetAllBranches)
	r.GET("/branches/:branch_id/tables", branchCtrl.GetBranchTables)
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/by-category", menuCtrl.GetMenuByCategory)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)

	r.POST("/user/checkin", customerCtrl.CheckIn)
	r.GET("/tables/:table_id/session", customerCtrl.GetActiveSession)
	r.POST("/user/sessions/finish", customerCtrl.FinishSession)
	r.POST("/user/call-waiter", customerCtrl.CallWaiter)
	r.POST("/user/payment", customerCtrl.CreatePayment)

	r.GET("/user/cart", cartCtrl.GetCart)
	r.POST("/user/cart/items", cartCtrl.AddItem)
	r.PATCH("/user/cart/items/:menu_id", cartCtrl.UpdateQuantity)
	r.DELETE("/user/cart/items/:menu_id", cartCtrl.RemoveItem)

	r.POST("/user/orders", orderCtrl.CreateOrder)
	r.GET("/user/orders", orderCtrl.GetOrdersBySession)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	authed := r.Group("/")
	authed.Use(middlewares.AuthMiddleware())
	{
		authed.GET("/profile", userCtrl.GetProfile)
		authed.POST("/logout", userCtrl.Logout)
	}

	// -- COOKER (kitchen board; admin passes too) --
	cooker := r.Group("/cooker")
	cooker.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("cooker"))
	{
		cooker.GET("/orders", cookerCtrl.GetKitchenOrders)
		cooker.GET("/pending-items", cookerCtrl.GetPendingItems)
		cooker.PATCH("/orders/:order_id/status", cookerCtrl.UpdateOrderStatus)
		cooker.PATCH("/order-items/:item_id/status", cookerCtrl.UpdateItemStatus)
		cooker.GET("/waiter-calls", waiterCallCtrl.GetAllWaiterCalls)
		cooker.PATCH("/waiter-calls/:call_id/ack", waiterCallCtrl.AcknowledgeWaiterCall)
		cooker.PATCH("/tables/:table_id/clean", tableCtrl.MarkTableClean)
		cooker.GET("/ingredients", ingredientCtrl.GetAllIngredients)
		cooker.PATCH("/ingredients/:ingredient_id", ingredientCtrl.UpdateIngredient)
	}

	// -- ADMIN (back office) --
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("admin"))
	{
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.PATCH("/users/:user_id", userCtrl.UpdateUser)
		admin.DELETE("/users/:user_id", userCtrl.DeleteUser)

		admin.GET("/branches", branchCtrl.GetAllBranches)
		admin.POST("/branches", branchCtrl.CreateBranch)
		admin.PATCH("/branches/:branch_id", branchCtrl.UpdateBranch)
		admin.DELETE("/branches/:branch_id", branchCtrl.DeleteBranch)

		admin.GET("/tables", tableCtrl.GetAllTables)
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.GET("/tables/:table_id", tableCtrl.GetTableByID)
		admin.PATCH("/tables/:table_id", tableCtrl.UpdateTableStatus)
		admin.PATCH("/tables/:table_id/clean", tableCtrl.MarkTableClean)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.POST("/menus", menuCtrl.CreateMenu)
		admin.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
		admin.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.POST("/orders/:order_id/recall", orderCtrl.RecallOrder)

		admin.GET("/payments", paymentCtrl.GetPayments)
		admin.GET("/payments/:payment_id", paymentCtrl.GetPaymentByID)
		admin.POST("/payments/:payment_id/verify", paymentCtrl.VerifyPayment)

		admin.GET("/ingredients", ingredientCtrl.GetAllIngredients)
		admin.POST("/ingredients", ingredientCtrl.CreateIngredient)
		admin.PATCH("/ingredients/:ingredient_id", ingredientCtrl.UpdateIngredient)
		admin.DELETE("/ingredients/:ingredient_id", ingredientCtrl.DeleteIngredient)

		admin.GET("/career-paths", careerCtrl.GetAllCareerPaths)
		admin.POST("/career-paths", careerCtrl.CreateCareerPath)
		admin.GET("/career-paths/:career_id", careerCtrl.GetCareerPathByID)
		admin.PATCH("/career-paths/:career_id", careerCtrl.UpdateCareerPath)
		admin.DELETE("/career-paths/:career_id", careerCtrl.DeleteCareerPath)

		admin.GET("/waiter-calls", waiterCallCtrl.GetAllWaiterCalls)
		admin.PATCH("/waiter-calls/:call_id/ack", waiterCallCtrl.AcknowledgeWaiterCall)

		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		admin.GET("/orders/flow", adminCtrl.GetOrderFlow)
		admin.GET("/reports/sales", reportCtrl.GetSalesReport)
		admin.GET("/reports/export-pdf", reportCtrl.ExportSalesReportPDF)
	}

	// WebSocket endpoint for kitchen/admin boards
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.AuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.BoardHandler)
	}

	return r
}
