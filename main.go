package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/wavelinkisp/opsboard/controllers"
	"github.com/wavelinkisp/opsboard/database"
	"github.com/wavelinkisp/opsboard/jobs"
	"github.com/wavelinkisp/opsboard/mailer"
	"github.com/wavelinkisp/opsboard/middleware"
	"github.com/wavelinkisp/opsboard/models"
	"github.com/wavelinkisp/opsboard/utils"
)

// page ids the permission middleware checks against
const (
	pageTickets      = "tickets"
	pageEquipment    = "equipment"
	pageConnections  = "internet-connections"
	pageExpenses     = "expenses"
	pageStationTasks = "station-tasks"
	pageStations     = "stations"
	pageUsers        = "users"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	ctx := context.Background()
	usersCol := database.OpenCollection("users")
	if err := utils.SeedSuperAdmin(ctx, usersCol); err != nil {
		log.Fatal(err)
	}

	jobs.StartConnectionCleanupJob(ctx)

	m := mailer.New()

	r := gin.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	log.Printf("Allowed origins: %v", allowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.POST("/auth/login", controllers.Login())
	r.POST("/auth/refresh", controllers.Refresh())
	r.POST("/auth/logout", controllers.Logout())

	// public website forms
	r.POST("/api/contact", controllers.SubmitContactForm(m))
	r.POST("/api/careers/apply", controllers.SubmitJobApplication(m))
	r.POST("/api/coverage-requests", controllers.SubmitCoverageRequest(m))
	r.POST("/api/business-quotes", controllers.SubmitBusinessQuote(m))
	r.POST("/api/schedule-call", controllers.SubmitCallSchedule(m))

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/users/me", controllers.GetMe())
		api.POST("/users/me/password", controllers.ChangeMyPassword())

		api.GET("/users", middleware.RequirePagePermission(pageUsers, models.ActionView), controllers.GetUsers())
		api.POST("/users", middleware.RequirePagePermission(pageUsers, models.ActionAdd), controllers.CreateUser())
		api.PUT("/users/:id", middleware.RequirePagePermission(pageUsers, models.ActionEdit), controllers.UpdateUser())
		api.PATCH("/users/:id/permissions", middleware.RequirePagePermission(pageUsers, models.ActionEdit), controllers.ToggleUserPermission())
		api.DELETE("/users/:id", middleware.RequirePagePermission(pageUsers, models.ActionDelete), controllers.DeleteUser())

		api.GET("/tickets", middleware.RequirePagePermission(pageTickets, models.ActionView), controllers.GetTickets())
		api.POST("/tickets", middleware.RequirePagePermission(pageTickets, models.ActionAdd), controllers.CreateTicket())
		api.PATCH("/tickets/:id", middleware.RequirePagePermission(pageTickets, models.ActionEdit), controllers.UpdateTicket())
		api.DELETE("/tickets/:id", middleware.RequirePagePermission(pageTickets, models.ActionDelete), controllers.DeleteTicket())

		api.GET("/technicians", middleware.RequirePagePermission(pageTickets, models.ActionView), controllers.GetTechnicians())
		api.POST("/technicians", middleware.RequirePagePermission(pageTickets, models.ActionAdd), controllers.CreateTechnician())
		api.PATCH("/technicians/:id", middleware.RequirePagePermission(pageTickets, models.ActionEdit), controllers.UpdateTechnician())
		api.DELETE("/technicians/:id", middleware.RequirePagePermission(pageTickets, models.ActionDelete), controllers.DeleteTechnician())

		api.GET("/equipment", middleware.RequirePagePermission(pageEquipment, models.ActionView), controllers.GetEquipment())
		api.POST("/equipment", middleware.RequirePagePermission(pageEquipment, models.ActionAdd), controllers.CreateEquipment())
		api.PATCH("/equipment/:id/attach", middleware.RequirePagePermission(pageEquipment, models.ActionEdit), controllers.AttachEquipmentToClient())
		api.PATCH("/equipment/:id", middleware.RequirePagePermission(pageEquipment, models.ActionEdit), controllers.UpdateEquipment())
		api.DELETE("/equipment/:id", middleware.RequirePagePermission(pageEquipment, models.ActionDelete), controllers.DeleteEquipment())

		api.GET("/equipment-batches", middleware.RequirePagePermission(pageEquipment, models.ActionView), controllers.GetEquipmentBatches())
		api.GET("/equipment-batches/:id", middleware.RequirePagePermission(pageEquipment, models.ActionView), controllers.GetEquipmentBatch())
		api.POST("/equipment-batches", middleware.RequirePagePermission(pageEquipment, models.ActionAdd), controllers.CreateEquipmentBatch())
		api.POST("/equipment-batches/create-from-selected", middleware.RequirePagePermission(pageEquipment, models.ActionAdd), controllers.CreateBatchFromSelected())
		api.PATCH("/equipment-batches/:id", middleware.RequirePagePermission(pageEquipment, models.ActionEdit), controllers.UpdateEquipmentBatch())
		api.DELETE("/equipment-batches/:id", middleware.RequirePagePermission(pageEquipment, models.ActionDelete), controllers.DeleteEquipmentBatch())

		api.GET("/equipment-templates", middleware.RequirePagePermission(pageEquipment, models.ActionView), controllers.GetEquipmentTemplates())
		api.POST("/equipment-templates", middleware.RequirePagePermission(pageEquipment, models.ActionAdd), controllers.CreateEquipmentTemplate())
		api.DELETE("/equipment-templates/:id", middleware.RequirePagePermission(pageEquipment, models.ActionDelete), controllers.DeleteEquipmentTemplate())

		api.GET("/internet-connections", middleware.RequirePagePermission(pageConnections, models.ActionView), controllers.GetInternetConnections())
		api.POST("/internet-connections", middleware.RequirePagePermission(pageConnections, models.ActionAdd), controllers.CreateInternetConnection())
		api.POST("/internet-connections/cleanup", middleware.RequirePagePermission(pageConnections, models.ActionDelete), controllers.CleanupInternetConnections())
		api.PATCH("/internet-connections/:id", middleware.RequirePagePermission(pageConnections, models.ActionEdit), controllers.UpdateInternetConnection())
		api.DELETE("/internet-connections/:id", middleware.RequirePagePermission(pageConnections, models.ActionDelete), controllers.DeleteInternetConnection())

		api.GET("/expenses", middleware.RequirePagePermission(pageExpenses, models.ActionView), controllers.GetExpenses())
		api.GET("/expenses/export", middleware.RequirePagePermission(pageExpenses, models.ActionView), controllers.ExportExpenses())
		api.POST("/expenses", middleware.RequirePagePermission(pageExpenses, models.ActionAdd), controllers.CreateExpense())
		api.PUT("/expenses/:id", middleware.RequirePagePermission(pageExpenses, models.ActionEdit), controllers.UpdateExpense())
		api.DELETE("/expenses/:id", middleware.RequirePagePermission(pageExpenses, models.ActionDelete), controllers.DeleteExpense())

		api.GET("/expense-categories", middleware.RequirePagePermission(pageExpenses, models.ActionView), controllers.GetExpenseCategories())
		api.POST("/expense-categories", middleware.RequirePagePermission(pageExpenses, models.ActionAdd), controllers.CreateExpenseCategory())
		api.POST("/expense-categories/seed", middleware.RequirePagePermission(pageExpenses, models.ActionAdd), controllers.SeedExpenseCategories())
		api.PUT("/expense-categories/:id", middleware.RequirePagePermission(pageExpenses, models.ActionEdit), controllers.UpdateExpenseCategory())
		api.DELETE("/expense-categories/:id", middleware.RequirePagePermission(pageExpenses, models.ActionDelete), controllers.DeleteExpenseCategory())

		api.GET("/stations", middleware.RequirePagePermission(pageStations, models.ActionView), controllers.GetStations())
		api.POST("/stations", middleware.RequirePagePermission(pageStations, models.ActionAdd), controllers.CreateStation())
		api.PATCH("/stations/:id", middleware.RequirePagePermission(pageStations, models.ActionEdit), controllers.UpdateStation())
		api.DELETE("/stations/:id", middleware.RequirePagePermission(pageStations, models.ActionDelete), controllers.DeleteStation())

		api.GET("/station-tasks", middleware.RequirePagePermission(pageStationTasks, models.ActionView), controllers.GetStationTasks())
		api.POST("/station-tasks", middleware.RequirePagePermission(pageStationTasks, models.ActionAdd), controllers.CreateStationTask())
		api.PATCH("/station-tasks/:id", middleware.RequirePagePermission(pageStationTasks, models.ActionEdit), controllers.UpdateStationTask())
		api.DELETE("/station-tasks/:id", middleware.RequirePagePermission(pageStationTasks, models.ActionDelete), controllers.DeleteStationTask())
	}

	r.Run()
}
