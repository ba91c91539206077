package controller

import (
	"log"

	"saasquatch/utils"

	"github.com/gofiber/fiber/v2"
)

type EmailController struct {
	Mailer utils.MailSender
	Logger *log.Logger
}

func NewEmailController(mailer utils.MailSender, logger *log.Logger) *EmailController {
	return &EmailController{
		Mailer: mailer,
		Logger: logger,
	}
}

type SendTestEmailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" validate:"required"`
}

// SendTestEmail pushes one message through the configured transport. In
// dry-run mode this reports success without a network send.
func (ec *EmailController) SendTestEmail(c *fiber.Ctx) error {
	var input SendTestEmailRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if err := ec.Mailer.Send(input.To, input.Subject, input.Body); err != nil {
		ec.Logger.Printf("Error sending test email: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send test email", err)
	}

	return c.JSON(fiber.Map{"ok": true})
}
