package main

import (
	"log"

	"followup-report/internal/api"
	"followup-report/internal/config"
	"followup-report/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize services
	dataService := services.NewDataService()
	htmlService := services.NewHTMLService()
	pdfService := services.NewPDFService()
	reportService := services.NewReportService(dataService, htmlService, pdfService)
	taskService := services.NewTaskService()

	// Initialize email delivery (optional)
	var emailService *services.EmailService
	if cfg.Email.APIKey != "" {
		emailService = services.NewEmailService(cfg.Email)
	} else {
		log.Printf("SendGrid API key not configured, email delivery disabled")
	}

	// Initialize the weekly scheduled run (optional)
	if cfg.Weekly.Enabled {
		weeklyService := services.NewWeeklyReportService(reportService, emailService, cfg.Report, cfg.Email.Recipients)

		if _, err := weeklyService.Schedule(cfg.Weekly.Schedule); err != nil {
			log.Fatalf("Failed to schedule weekly report: %v", err)
		}
		weeklyService.Start()
		defer weeklyService.Stop()
	} else {
		log.Printf("Weekly report schedule disabled")
	}

	// Initialize handlers
	handlers := api.NewHandlers(reportService, taskService)

	// Setup routes
	router := api.SetupRoutes(handlers)

	// Start server
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
