package routes

import (
	"log"
	"os"

	controller "saasquatch/controllers"
	"saasquatch/middleware"
	"saasquatch/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// SetupRoutes wires the API surface. All lifecycle and scoring endpoints live
// under /api; the dispatcher runs independently of any of them.
func SetupRoutes(app *fiber.App, db *gorm.DB, mailer utils.MailSender) {
	sequenceController := controller.NewSequenceController(db, log.New(os.Stdout, "SEQUENCE: ", log.LstdFlags))
	aiController := controller.NewAIController(log.New(os.Stdout, "AI: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))
	emailController := controller.NewEmailController(mailer, log.New(os.Stdout, "EMAIL: ", log.LstdFlags))

	api := app.Group("/api", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Sequence routes
	sequences := api.Group("/sequences")
	sequences.Post("/upload-csv", sequenceController.UploadContactsCSV)
	sequences.Post("/generate-steps", sequenceController.GenerateSteps)
	sequences.Post("/", sequenceController.CreateSequence)
	sequences.Get("/", sequenceController.GetSequences)
	sequences.Get("/:id", sequenceController.GetSequence)
	sequences.Put("/:id", sequenceController.UpdateSequence)
	sequences.Delete("/:id", sequenceController.DeleteSequence)

	// Lifecycle routes
	sequences.Post("/:id/start", sequenceController.StartSequence)
	sequences.Post("/:id/pause", sequenceController.PauseSequence)
	sequences.Post("/:id/resume", sequenceController.ResumeSequence)
	sequences.Post("/:id/requeue", sequenceController.RequeueSequence)
	sequences.Post("/:id/progress", sequenceController.UpdateProgress)
	sequences.Get("/:id/queue", sequenceController.GetSequenceQueue)

	// Scoring and content routes
	ai := api.Group("/ai")
	ai.Post("/score-lead", aiController.ScoreLead)
	ai.Post("/score-leads-batch", aiController.ScoreLeadsBatch)
	ai.Post("/engagement-index", aiController.EngagementIndex)
	ai.Post("/generate-content", aiController.GenerateContent)

	// Tracker rollup
	api.Get("/tracker/summary", dashboardController.GetTrackerSummary)

	// Immediate test send, rate limited
	api.Post("/email/send-test", middleware.TestEmailRateLimiter(), emailController.SendTestEmail)
}
