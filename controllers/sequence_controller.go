package controller

import (
	"encoding/csv"
	"log"
	"strings"
	"time"

	"saasquatch/models"
	"saasquatch/store"
	"saasquatch/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SequenceController struct {
	DB     *gorm.DB
	Logger *log.Logger
	Queue  *store.QueueStore
}

func NewSequenceController(db *gorm.DB, logger *log.Logger) *SequenceController {
	return &SequenceController{
		DB:     db,
		Logger: logger,
		Queue:  store.NewQueueStore(db),
	}
}

type CreateSequenceRequest struct {
	Name     string           `json:"name" validate:"required,max=200"`
	Steps    []models.Step    `json:"steps"`
	Contacts []models.Contact `json:"contacts"`
}

// CreateSequence creates a new draft sequence
func (sc *SequenceController) CreateSequence(c *fiber.Ctx) error {
	var input CreateSequenceRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	steps, err := normalizeSteps(input.Steps)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid steps", err)
	}

	seq := models.Sequence{
		SequenceID: uuid.New().String(),
		Name:       input.Name,
		Steps:      steps,
		Contacts:   input.Contacts,
		Status:     models.SequenceStatusDraft,
		CreatedAt:  time.Now().UTC(),
	}

	if err := sc.DB.Create(&seq).Error; err != nil {
		sc.Logger.Printf("Error creating sequence: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create sequence", err)
	}

	return c.Status(fiber.StatusCreated).JSON(seq)
}

// GetSequences lists all sequences, newest first
func (sc *SequenceController) GetSequences(c *fiber.Ctx) error {
	var sequences []models.Sequence
	if err := sc.DB.Order("created_at desc").Find(&sequences).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch sequences", err)
	}
	return c.JSON(sequences)
}

// GetSequence returns one sequence by its public id
func (sc *SequenceController) GetSequence(c *fiber.Ctx) error {
	seq, err := sc.findSequence(c.Params("id"))
	if err != nil {
		return sequenceLookupError(c, err)
	}
	return c.JSON(seq)
}

type UpdateSequenceRequest struct {
	Name     *string           `json:"name"`
	Steps    *[]models.Step    `json:"steps"`
	Contacts *[]models.Contact `json:"contacts"`
	Status   *string           `json:"status" validate:"omitempty,oneof=draft active paused completed"`
}

// UpdateSequence applies a partial update. Editing steps or contacts does not
// touch the existing queue; callers requeue when they want the changes
// materialized.
func (sc *SequenceController) UpdateSequence(c *fiber.Ctx) error {
	var input UpdateSequenceRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if input.Name == nil && input.Steps == nil && input.Contacts == nil && input.Status == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No fields to update", nil)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	seq, err := sc.findSequence(c.Params("id"))
	if err != nil {
		return sequenceLookupError(c, err)
	}

	if input.Name != nil {
		seq.Name = *input.Name
	}
	if input.Steps != nil {
		steps, err := normalizeSteps(*input.Steps)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid steps", err)
		}
		seq.Steps = steps
	}
	if input.Contacts != nil {
		seq.Contacts = *input.Contacts
	}
	if input.Status != nil {
		seq.Status = *input.Status
	}

	if err := sc.DB.Save(seq).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update sequence", err)
	}

	return c.JSON(seq)
}

type ProgressUpdateRequest struct {
	Sent     *int `json:"sent"`
	Opened   *int `json:"opened"`
	Replied  *int `json:"replied"`
	Positive *int `json:"positive"`
}

// UpdateProgress sets absolute values on the engagement counters; opened,
// replied and positive arrive from manual tracking rather than the
// dispatcher.
func (sc *SequenceController) UpdateProgress(c *fiber.Ctx) error {
	var input ProgressUpdateRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	seq, err := sc.findSequence(c.Params("id"))
	if err != nil {
		return sequenceLookupError(c, err)
	}

	if input.Sent != nil {
		seq.Metrics.Sent = *input.Sent
	}
	if input.Opened != nil {
		seq.Metrics.Opened = *input.Opened
	}
	if input.Replied != nil {
		seq.Metrics.Replied = *input.Replied
	}
	if input.Positive != nil {
		seq.Metrics.Positive = *input.Positive
	}

	if err := sc.DB.Save(seq).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update metrics", err)
	}

	return c.JSON(seq)
}

// GetSequenceQueue lists a sequence's queue items sorted by due time
func (sc *SequenceController) GetSequenceQueue(c *fiber.Ctx) error {
	if _, err := sc.findSequence(c.Params("id")); err != nil {
		return sequenceLookupError(c, err)
	}

	items, err := sc.Queue.ListForSequence(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch queue", err)
	}

	return c.JSON(fiber.Map{
		"items": items,
		"total": len(items),
	})
}

// UploadContactsCSV parses an uploaded CSV into contacts. Header names are
// matched case-tolerantly (name/Name, linkedin_url/LinkedIn/linkedin).
func (sc *SequenceController) UploadContactsCSV(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File upload error", err)
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only CSV files are supported", nil)
	}

	src, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to open file", err)
	}
	defer src.Close()

	reader := csv.NewReader(src)
	records, err := reader.ReadAll()
	if err != nil {
		sc.Logger.Printf("CSV parse error: %v", err)
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to parse CSV", err)
	}
	if len(records) < 2 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "CSV file must have at least a header and one row", nil)
	}

	header := records[0]
	var contacts []models.Contact
	for _, row := range records[1:] {
		if len(row) != len(header) {
			continue // skip malformed rows
		}
		fields := make(map[string]string, len(header))
		for i, col := range header {
			fields[strings.ToLower(strings.TrimSpace(col))] = strings.TrimSpace(row[i])
		}
		contacts = append(contacts, models.Contact{
			Name:        fields["name"],
			Email:       fields["email"],
			Company:     fields["company"],
			Title:       fields["title"],
			LinkedInURL: firstNonEmpty(fields["linkedin_url"], fields["linkedin"]),
		})
	}

	return c.JSON(fiber.Map{
		"contacts": contacts,
		"count":    len(contacts),
	})
}

type GenerateStepsRequest struct {
	Method     string `json:"method" validate:"omitempty,oneof=template ai"`
	TemplateID string `json:"template_id"`
	AIPrompt   string `json:"ai_prompt"`
	Tone       string `json:"tone"`
	StepsCount int    `json:"steps_count"`
}

// GenerateSteps drafts step skeletons either from a built-in template or from
// a prompt
func (sc *SequenceController) GenerateSteps(c *fiber.Ctx) error {
	var input GenerateStepsRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if input.Tone == "" {
		input.Tone = "professional"
	}
	if input.StepsCount <= 0 {
		input.StepsCount = 3
	}

	var steps []models.Step
	if input.Method == "ai" {
		steps = utils.GenerateStepSkeletons(input.AIPrompt, input.Tone, input.StepsCount)
	} else {
		steps = utils.GenerateStepsFromTemplate(input.TemplateID)
	}

	return c.JSON(fiber.Map{"steps": steps})
}

// normalizeSteps assigns ids to steps missing one and rejects unknown types
// and negative delays.
func normalizeSteps(steps []models.Step) ([]models.Step, error) {
	out := make([]models.Step, 0, len(steps))
	for _, s := range steps {
		if s.StepID == "" {
			s.StepID = uuid.New().String()
		}
		if s.Type == "" {
			s.Type = models.StepTypeEmail
		}
		switch s.Type {
		case models.StepTypeEmail, models.StepTypeLinkedIn, models.StepTypeManual:
		default:
			return nil, fiber.NewError(fiber.StatusBadRequest, "unknown step type "+s.Type)
		}
		if s.DelayDays < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "delay_days must be >= 0")
		}
		if s.Status == "" {
			s.Status = "draft"
		}
		out = append(out, s)
	}
	return out, nil
}

func (sc *SequenceController) findSequence(sequenceID string) (*models.Sequence, error) {
	var seq models.Sequence
	if err := sc.DB.Where("sequence_id = ?", sequenceID).First(&seq).Error; err != nil {
		return nil, err
	}
	return &seq, nil
}

func sequenceLookupError(c *fiber.Ctx, err error) error {
	if err == gorm.ErrRecordNotFound {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Sequence not found", nil)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch sequence", err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
