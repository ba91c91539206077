package utils

import (
	"fmt"
	"strings"

	"saasquatch/models"

	"github.com/google/uuid"
)

// ContentRequest describes the outreach message to produce.
type ContentRequest struct {
	RecipientName string `json:"recipient_name"`
	Company       string `json:"company"`
	Role          string `json:"role"`
	Industry      string `json:"industry"`
	ProductInfo   string `json:"product_info"`
	Tone          string `json:"tone"`    // friendly, professional, concise
	Channel       string `json:"channel"` // email, linkedin, follow-up
	StepNumber    int    `json:"step_number"`
}

// ContentResult is a generated subject/body pair. Subject is empty for
// non-email channels.
type ContentResult struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
	Length  int    `json:"length"`
	Tone    string `json:"tone"`
}

// ContentGenerator produces outreach copy. Implementations are pure string
// producers; swapping in an LLM-backed generator only needs this interface.
type ContentGenerator interface {
	GenerateEmailContent(req ContentRequest) ContentResult
}

// TemplateContentGenerator is the built-in generator. It fills canned copy
// per channel and step number, leaving {name}/{company} placeholders for the
// queue builder's renderer.
type TemplateContentGenerator struct{}

func NewTemplateContentGenerator() *TemplateContentGenerator {
	return &TemplateContentGenerator{}
}

func (g *TemplateContentGenerator) GenerateEmailContent(req ContentRequest) ContentResult {
	firstName := "there"
	if req.RecipientName != "" {
		firstName = strings.Fields(req.RecipientName)[0]
	}

	var subject, body string
	switch {
	case req.Channel == "linkedin":
		body = fmt.Sprintf(
			"Hi %s, impressed by your work at %s. Would love to connect and share insights about %s that might benefit your team.",
			firstName, req.Company, req.ProductInfo)

	case req.Channel == "follow-up" || req.StepNumber > 1:
		body = fmt.Sprintf(
			"Hi %s,\n\nFollowing up on my previous message. I recently helped a similar company increase efficiency by 40%%.\n\nWould a quick chat work for you this week?\n\nBest,\n[Your Name]",
			firstName)

	default:
		subject = fmt.Sprintf("Quick question about %s's growth strategy", req.Company)
		body = fmt.Sprintf(
			"Hi %s,\n\nI noticed %s is making waves in your industry. As %s, you're likely facing challenges with scaling operations efficiently.\n\n%s helps companies like yours achieve 3x faster growth with less overhead.\n\nWould you be open to a 15-minute call next week to explore if this could help %s?\n\nBest,\n[Your Name]",
			firstName, req.Company, req.Role, req.ProductInfo, req.Company)
	}

	return ContentResult{
		Subject: subject,
		Content: body,
		Length:  len(body),
		Tone:    req.Tone,
	}
}

// builtinStepTemplates are the canned sequence skeletons offered by the
// generate-steps endpoint.
var builtinStepTemplates = map[string][]models.Step{
	"simple-2-step": {
		{Type: models.StepTypeEmail, DelayDays: 0, Subject: "Quick intro", Content: "Hi {name}, ..."},
		{Type: models.StepTypeEmail, DelayDays: 3, Subject: "Following up", Content: "Hi {name}, just checking..."},
	},
	"email-plus-linkedin": {
		{Type: models.StepTypeEmail, DelayDays: 0, Subject: "Idea for {company}", Content: "Hi {name}, ..."},
		{Type: models.StepTypeLinkedIn, DelayDays: 2, Content: "Sent connection note to {name} about ..."},
		{Type: models.StepTypeEmail, DelayDays: 5, Subject: "Resource for you", Content: "Thought this would help..."},
	},
}

// GenerateStepsFromTemplate returns a draft copy of a named skeleton with
// fresh step ids. Unknown template ids fall back to email-plus-linkedin.
func GenerateStepsFromTemplate(templateID string) []models.Step {
	chosen, ok := builtinStepTemplates[templateID]
	if !ok {
		chosen = builtinStepTemplates["email-plus-linkedin"]
	}
	steps := make([]models.Step, 0, len(chosen))
	for _, s := range chosen {
		s.StepID = uuid.New().String()
		s.Status = "draft"
		steps = append(steps, s)
	}
	return steps
}

// GenerateStepSkeletons drafts a prompt-seeded sequence of count steps,
// rotating channel types and applying per-channel default delays.
func GenerateStepSkeletons(prompt, tone string, count int) []models.Step {
	baseTypes := []string{
		models.StepTypeEmail,
		models.StepTypeLinkedIn,
		models.StepTypeEmail,
		models.StepTypeManual,
	}
	if prompt == "" {
		prompt = "N/A"
	}

	steps := make([]models.Step, 0, count)
	for i := 0; i < count; i++ {
		stepType := baseTypes[i%len(baseTypes)]

		var subject string
		if stepType == models.StepTypeEmail {
			subject = fmt.Sprintf("%s outreach step %d", strings.Title(tone), i+1)
		}

		delay := 0
		if i > 0 {
			if stepType == models.StepTypeLinkedIn {
				delay = 2
			} else {
				delay = 3
			}
		}

		steps = append(steps, models.Step{
			StepID:    uuid.New().String(),
			Type:      stepType,
			DelayDays: delay,
			Subject:   subject,
			Content:   fmt.Sprintf("Draft %s content for step %d based on prompt: %s", stepType, i+1, prompt),
			Status:    "draft",
		})
	}
	return steps
}
