package handler

import (
	"go-stockledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// CreatePurchase handles POST /transactions/purchases
func (h *TransactionHandler) CreatePurchase(c *fiber.Ctx) error {
	var input service.PurchaseInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	input.ID = nil

	saved, err := h.service.SavePurchase(&input, getUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": saved})
}

// UpdatePurchase handles PUT /transactions/purchases/:id
func (h *TransactionHandler) UpdatePurchase(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var input service.PurchaseInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	input.ID = &id

	saved, err := h.service.SavePurchase(&input, getUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase updated", "data": saved})
}

func (h *TransactionHandler) DeletePurchase(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	if err := h.service.DeletePurchase(id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase deleted"})
}

func (h *TransactionHandler) GetPurchases(c *fiber.Ctx) error {
	transactions, err := h.service.GetAllPurchases()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetPurchase(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	transaction, err := h.service.GetPurchase(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(transaction)
}

// CreateSale handles POST /transactions/sales
func (h *TransactionHandler) CreateSale(c *fiber.Ctx) error {
	var input service.SaleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	input.ID = nil

	saved, err := h.service.SaveSale(&input, getUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": saved})
}

// UpdateSale handles PUT /transactions/sales/:id
func (h *TransactionHandler) UpdateSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var input service.SaleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	input.ID = &id

	saved, err := h.service.SaveSale(&input, getUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale updated", "data": saved})
}

func (h *TransactionHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	if err := h.service.DeleteSale(id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale deleted"})
}

func (h *TransactionHandler) GetSales(c *fiber.Ctx) error {
	transactions, err := h.service.GetAllSales()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	transaction, err := h.service.GetSale(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(transaction)
}
