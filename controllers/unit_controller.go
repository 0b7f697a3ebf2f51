package controllers

import (
	"fmt"

	"frontline-inventory/events"
	"frontline-inventory/models"
	"frontline-inventory/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UnitController struct {
	DB    *gorm.DB
	Units *repositories.UnitRepository
	Hub   *events.Hub
}

func NewUnitController(DB *gorm.DB, hub *events.Hub) *UnitController {
	return &UnitController{
		DB:    DB,
		Units: repositories.NewUnitRepository(DB),
		Hub:   hub,
	}
}

func (c *UnitController) broadcast(entry *models.StockTx) {
	if c.Hub == nil || entry == nil {
		return
	}
	c.Hub.Broadcast(events.Event{
		TxID:  entry.ID,
		SKU:   entry.SKU,
		Name:  entry.Name,
		Delta: entry.Delta,
		Note:  entry.Note,
		Ts:    entry.Ts,
	})
}

type receiveInput struct {
	SKU    string `json:"sku" validate:"required"`
	Name   string `json:"name"`
	Qty    int    `json:"qty" validate:"required,gt=0"`
	PoCode string `json:"po_code"`
	Note   string `json:"note"`
}

func (c *UnitController) Receive(ctx *fiber.Ctx) error {
	var input receiveInput
	if err := ctx.BodyParser(&input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	actor := currentUser(ctx, c.DB)

	entry, err := c.Units.Receive(input.SKU, input.Name, input.Qty, input.PoCode, input.Note, actor)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	c.broadcast(entry)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Received %d pcs of %s", input.Qty, input.SKU),
		"data":    entry,
	})
}

type quantityOpInput struct {
	ItemID uint   `json:"item_id" validate:"required"`
	CoID   uint   `json:"co_id" validate:"required"`
	Qty    int    `json:"qty" validate:"required,gt=0"`
	Note   string `json:"note"`
}

func (c *UnitController) parseQuantityOp(ctx *fiber.Ctx) (*quantityOpInput, error) {
	var input quantityOpInput
	if err := ctx.BodyParser(&input); err != nil {
		return nil, repositories.ErrInvalidArgument
	}
	if err := validate.Struct(input); err != nil {
		return nil, repositories.ErrInvalidArgument
	}
	return &input, nil
}

func (c *UnitController) Reserve(ctx *fiber.Ctx) error {
	input, err := c.parseQuantityOp(ctx)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	actor := currentUser(ctx, c.DB)

	if err := c.Units.ReserveUnits(input.ItemID, input.CoID, input.Qty, input.Note, actor); err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Reserved %d pcs", input.Qty),
	})
}

func (c *UnitController) Release(ctx *fiber.Ctx) error {
	input, err := c.parseQuantityOp(ctx)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	actor := currentUser(ctx, c.DB)

	if err := c.Units.ReleaseUnits(input.ItemID, input.CoID, input.Qty, input.Note, actor); err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Released %d pcs", input.Qty),
	})
}

func (c *UnitController) Fulfill(ctx *fiber.Ctx) error {
	input, err := c.parseQuantityOp(ctx)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	actor := currentUser(ctx, c.DB)

	entry, err := c.Units.FulfillUnits(input.ItemID, input.CoID, input.Qty, input.Note, actor)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	c.broadcast(entry)
	notifyLowStock(c.DB, entry.ItemID)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Fulfilled %d pcs", input.Qty),
		"data":    entry,
	})
}

func (c *UnitController) Unfulfill(ctx *fiber.Ctx) error {
	input, err := c.parseQuantityOp(ctx)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	actor := currentUser(ctx, c.DB)

	entry, err := c.Units.UnfulfillUnits(input.ItemID, input.CoID, input.Qty, input.Note, actor)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	c.broadcast(entry)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Unfulfilled %d pcs", input.Qty),
		"data":    entry,
	})
}

type batchUnitInput struct {
	UnitIDs []uint `json:"unit_ids" validate:"required,min=1"`
	CoCode  string `json:"co_code"`
	Note    string `json:"note"`
}

func (c *UnitController) Issue(ctx *fiber.Ctx) error {
	var input batchUnitInput
	if err := ctx.BodyParser(&input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	if err := validate.Struct(input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	actor := currentUser(ctx, c.DB)

	count, err := c.Units.IssueUnits(input.UnitIDs, input.CoCode, input.Note, actor)
	if err != nil {
		return respondRepoError(ctx, err)
	}

	// The batch may have drained several items; check each one touched.
	var itemIDs []uint
	if err := c.DB.Model(&models.ItemUnit{}).
		Where("id IN ?", input.UnitIDs).
		Where("item_id IS NOT NULL").
		Distinct().
		Pluck("item_id", &itemIDs).Error; err == nil {
		for i := range itemIDs {
			notifyLowStock(c.DB, &itemIDs[i])
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Issued %d of %d units", count, len(input.UnitIDs)),
		"count":   count,
	})
}

func (c *UnitController) ReserveByID(ctx *fiber.Ctx) error {
	var input batchUnitInput
	if err := ctx.BodyParser(&input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	if err := validate.Struct(input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	actor := currentUser(ctx, c.DB)

	count, err := c.Units.ReserveUnitsByID(input.UnitIDs, input.CoCode, input.Note, actor)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Reserved %d of %d units", count, len(input.UnitIDs)),
		"count":   count,
	})
}

func (c *UnitController) UnreserveByID(ctx *fiber.Ctx) error {
	var input batchUnitInput
	if err := ctx.BodyParser(&input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	if err := validate.Struct(input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	actor := currentUser(ctx, c.DB)

	count, err := c.Units.UnreserveUnitsByID(input.UnitIDs, input.Note, actor)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Unreserved %d of %d units", count, len(input.UnitIDs)),
		"count":   count,
	})
}

func (c *UnitController) List(ctx *fiber.Ctx) error {
	var itemID, coID *uint
	if v := ctx.QueryInt("item_id"); v > 0 {
		id := uint(v)
		itemID = &id
	}
	if v := ctx.QueryInt("co_id"); v > 0 {
		id := uint(v)
		coID = &id
	}

	units, err := c.Units.ListUnits(itemID, ctx.Query("status"), coID)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    units,
	})
}

func (c *UnitController) Counts(ctx *fiber.Ctx) error {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	counts, err := c.Units.CountUnits(id)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    counts,
	})
}
