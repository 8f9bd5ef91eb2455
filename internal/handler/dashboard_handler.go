package handler

import (
	"time"

	"go-stockledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns the inventory snapshot and daily performance.
// Query params: date (YYYY-MM-DD, default today)
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
		}
		date = parsed
	}

	stats, err := h.service.GetStats(date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

// GetTopSellers returns the monthly ranking.
// Query params: month (YYYY-MM, default current month)
func (h *DashboardHandler) GetTopSellers(c *fiber.Ctx) error {
	month := time.Now()
	if monthStr := c.Query("month"); monthStr != "" {
		parsed, err := time.Parse("2006-01", monthStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid month, use YYYY-MM"})
		}
		month = parsed
	}

	sellers, err := h.service.GetTopSellers(month)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch top sellers"})
	}
	return c.JSON(fiber.Map{
		"month": month.Format("2006-01"),
		"data":  sellers,
	})
}
