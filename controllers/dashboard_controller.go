package controller

import (
	"log"

	"saasquatch/models"
	"saasquatch/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

type sequenceMetricsRow struct {
	SequenceID string `json:"sequence_id"`
	Sent       int    `gorm:"column:metrics_sent" json:"sent"`
	Opened     int    `gorm:"column:metrics_opened" json:"opened"`
	Replied    int    `gorm:"column:metrics_replied" json:"replied"`
	Positive   int    `gorm:"column:metrics_positive" json:"positive"`
}

// GetTrackerSummary aggregates engagement counters across all sequences and
// returns the per-sequence rows alongside the totals.
func (dc *DashboardController) GetTrackerSummary(c *fiber.Ctx) error {
	var summary models.SequenceMetrics
	err := dc.DB.Model(&models.Sequence{}).
		Select(
			"COALESCE(SUM(metrics_sent), 0) AS sent, " +
				"COALESCE(SUM(metrics_opened), 0) AS opened, " +
				"COALESCE(SUM(metrics_replied), 0) AS replied, " +
				"COALESCE(SUM(metrics_positive), 0) AS positive").
		Scan(&summary).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to aggregate metrics", err)
	}

	var rows []sequenceMetricsRow
	err = dc.DB.Model(&models.Sequence{}).
		Select("sequence_id, metrics_sent, metrics_opened, metrics_replied, metrics_positive").
		Scan(&rows).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch sequence metrics", err)
	}

	return c.JSON(fiber.Map{
		"summary":   summary,
		"sequences": rows,
	})
}
