package controller

import (
	"log"

	"saasquatch/utils"

	"github.com/gofiber/fiber/v2"
)

// AIController exposes the heuristic scoring and content generation
// calculators. They are pure request-to-result functions with no storage.
type AIController struct {
	Logger    *log.Logger
	Generator utils.ContentGenerator
}

func NewAIController(logger *log.Logger) *AIController {
	return &AIController{
		Logger:    logger,
		Generator: utils.NewTemplateContentGenerator(),
	}
}

type LeadScoreRequest struct {
	Email       string `json:"email" validate:"required"`
	Domain      string `json:"domain" validate:"required"`
	LinkedInURL string `json:"linkedin_url"`
	Title       string `json:"title"`
	Company     string `json:"company"`
}

// ScoreLead calculates the confidence score for a single lead
func (ac *AIController) ScoreLead(c *fiber.Ctx) error {
	var input LeadScoreRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	result := utils.CalculateConfidenceScore(input.Email, input.Domain, input.LinkedInURL, input.Title, input.Company)
	return c.JSON(result)
}

type LeadBatchScoreRequest struct {
	Leads []map[string]interface{} `json:"leads" validate:"required"`
}

// ScoreLeadsBatch scores a batch of leads, echoing each lead's fields back
// merged with its score
func (ac *AIController) ScoreLeadsBatch(c *fiber.Ctx) error {
	var input LeadBatchScoreRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	results := make([]map[string]interface{}, 0, len(input.Leads))
	for _, lead := range input.Leads {
		score := utils.CalculateConfidenceScore(
			stringField(lead, "email"),
			stringField(lead, "domain"),
			stringField(lead, "linkedin_url"),
			stringField(lead, "title"),
			stringField(lead, "company"),
		)

		merged := make(map[string]interface{}, len(lead)+4)
		for k, v := range lead {
			merged[k] = v
		}
		merged["confidence_score"] = score.ConfidenceScore
		merged["confidence_reason"] = score.ConfidenceReason
		merged["status"] = score.Status
		merged["breakdown"] = score.Breakdown
		results = append(results, merged)
	}

	return c.JSON(fiber.Map{
		"leads": results,
		"total": len(results),
	})
}

// EngagementIndex calculates the reply-probability index for a lead
func (ac *AIController) EngagementIndex(c *fiber.Ctx) error {
	input := utils.EngagementInput{
		CompanyGrowth: "stable",
		RoleSeniority: "mid",
		WebsiteStatus: true,
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	return c.JSON(utils.CalculateEngagementIndex(input))
}

type GenerateContentRequest struct {
	RecipientName string `json:"recipient_name" validate:"required"`
	Company       string `json:"company" validate:"required"`
	Role          string `json:"role"`
	Industry      string `json:"industry"`
	ProductInfo   string `json:"product_info"`
	Tone          string `json:"tone" validate:"omitempty,oneof=friendly professional concise"`
	Channel       string `json:"channel" validate:"omitempty,oneof=email linkedin follow-up"`
	StepNumber    int    `json:"step_number"`
}

// GenerateContent produces outreach copy for the requested channel and step
func (ac *AIController) GenerateContent(c *fiber.Ctx) error {
	var input GenerateContentRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if input.Tone == "" {
		input.Tone = "professional"
	}
	if input.Channel == "" {
		input.Channel = "email"
	}
	if input.StepNumber <= 0 {
		input.StepNumber = 1
	}

	result := ac.Generator.GenerateEmailContent(utils.ContentRequest{
		RecipientName: input.RecipientName,
		Company:       input.Company,
		Role:          input.Role,
		Industry:      input.Industry,
		ProductInfo:   input.ProductInfo,
		Tone:          input.Tone,
		Channel:       input.Channel,
		StepNumber:    input.StepNumber,
	})

	return c.JSON(result)
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
