package controllers

import (
	"fmt"
	"path/filepath"
	"strconv"

	"frontline-inventory/config"
	"frontline-inventory/events"
	"frontline-inventory/models"
	"frontline-inventory/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemController struct {
	DB    *gorm.DB
	Items *repositories.ItemRepository
	Stock *repositories.StockRepository
	Units *repositories.UnitRepository
	Hub   *events.Hub
}

func NewItemController(DB *gorm.DB, hub *events.Hub) *ItemController {
	return &ItemController{
		DB:    DB,
		Items: repositories.NewItemRepository(DB),
		Stock: repositories.NewStockRepository(DB),
		Units: repositories.NewUnitRepository(DB),
		Hub:   hub,
	}
}

func (c *ItemController) broadcast(entry *models.StockTx) {
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

func parseUintParam(ctx *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(ctx.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func (c *ItemController) GetItems(ctx *fiber.Ctx) error {
	q := repositories.ItemQuery{
		Search:   ctx.Query("q"),
		LowStock: ctx.Query("low_stock") == "true",
	}
	if v := ctx.QueryInt("category_id"); v > 0 {
		id := uint(v)
		q.CategoryID = &id
	}
	if v := ctx.QueryInt("location_id"); v > 0 {
		id := uint(v)
		q.LocationID = &id
	}

	items, err := c.Items.ListItems(q)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}

func (c *ItemController) GetItem(ctx *fiber.Ctx) error {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	item, err := c.Items.GetItem(id)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	counts, err := c.Units.CountUnits(id)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    item,
		"units":   counts,
	})
}

func (c *ItemController) CreateItem(ctx *fiber.Ctx) error {
	var fields repositories.ItemFields
	if err := ctx.BodyParser(&fields); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	if err := validate.Struct(fields); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	item, err := c.Items.CreateItem(&fields, currentUser(ctx, c.DB))
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Item created",
		"data":    item,
	})
}

func (c *ItemController) UpdateItem(ctx *fiber.Ctx) error {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	var fields repositories.ItemFields
	if err := ctx.BodyParser(&fields); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	if err := validate.Struct(fields); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	item, err := c.Items.UpdateItem(id, &fields, currentUser(ctx, c.DB))
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Item updated",
		"data":    item,
	})
}

func (c *ItemController) DeleteItem(ctx *fiber.Ctx) error {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	confirm := ctx.Query("confirm")
	actor := currentUser(ctx, c.DB)

	if err := c.Items.DeleteItem(id, confirm, actor); err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Item deleted",
	})
}

type adjustStockInput struct {
	Delta int    `json:"delta" validate:"required"`
	Note  string `json:"note"`
}

func (c *ItemController) AdjustStock(ctx *fiber.Ctx) error {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	var input adjustStockInput
	if err := ctx.BodyParser(&input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	actor := currentUser(ctx, c.DB)

	entry, err := c.Stock.AdjustStock(id, input.Delta, input.Note, actor)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	c.broadcast(entry)
	if entry.Delta < 0 {
		notifyLowStock(c.DB, entry.ItemID)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Stock adjusted by %+d", entry.Delta),
		"data":    entry,
	})
}

// UploadImage stores an item image under the configured upload directory.
func (c *ItemController) UploadImage(ctx *fiber.Ctx) error {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	file, err := ctx.FormFile("image")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}

	ext := filepath.Ext(file.Filename)
	filename := uuid.NewString() + ext
	dest := filepath.Join(config.UploadDir, filename)
	if err := ctx.SaveFile(file, dest); err != nil {
		return respondRepoError(ctx, err)
	}

	if err := c.Items.SetImagePath(id, dest); err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Image uploaded",
		"path":    dest,
	})
}
