package controllers

import (
	"fmt"

	"frontline-inventory/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *repositories.OrderRepository
}

func NewOrderController(DB *gorm.DB) *OrderController {
	return &OrderController{
		DB:     DB,
		Orders: repositories.NewOrderRepository(DB),
	}
}

func (c *OrderController) List(ctx *fiber.Ctx) error {
	var customerID *uint
	if v := ctx.QueryInt("customer_id"); v > 0 {
		id := uint(v)
		customerID = &id
	}
	orders, err := c.Orders.ListOrders(customerID, ctx.Query("status"))
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    orders,
	})
}

func (c *OrderController) Get(ctx *fiber.Ctx) error {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	order, lines, err := c.Orders.GetOrder(id)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    order,
		"lines":   lines,
	})
}

type createOrderInput struct {
	CustomerID *uint  `json:"customer_id"`
	Code       string `json:"code"`
	Notes      string `json:"notes"`
}

func (c *OrderController) Create(ctx *fiber.Ctx) error {
	var input createOrderInput
	if err := ctx.BodyParser(&input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}

	order, err := c.Orders.CreateCustomerOrder(input.CustomerID, input.Code, input.Notes)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order created",
		"data":    order,
	})
}

// OpenForCustomer returns the customer's open order, creating one if needed.
func (c *OrderController) OpenForCustomer(ctx *fiber.Ctx) error {
	customerID, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	order, err := c.Orders.GetOrCreateOpenCO(customerID)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

type reserveQtyInput struct {
	ItemID     uint   `json:"item_id" validate:"required"`
	Qty        int    `json:"qty" validate:"required,gt=0"`
	CustomerID uint   `json:"customer_id" validate:"required"`
	CoID       *uint  `json:"co_id"`
	Note       string `json:"note"`
}

// ReserveQuantity is the partial-fill-tolerant reservation workflow. The
// response always reports how many of the requested units were actually
// reserved.
func (c *OrderController) ReserveQuantity(ctx *fiber.Ctx) error {
	var input reserveQtyInput
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

	order, reserved, err := c.Orders.ReserveQuantityForCustomer(
		input.ItemID, input.Qty, input.CustomerID, input.Note, actor, input.CoID)
	if err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   fmt.Sprintf("Reserved %d of %d", reserved, input.Qty),
		"data":      order,
		"reserved":  reserved,
		"requested": input.Qty,
	})
}

type ensureLineInput struct {
	ItemID uint `json:"item_id" validate:"required"`
}

func (c *OrderController) EnsureLine(ctx *fiber.Ctx) error {
	coID, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	var input ensureLineInput
	if err := ctx.BodyParser(&input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	if err := validate.Struct(input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}

	line, err := c.Orders.EnsureLine(coID, input.ItemID)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    line,
	})
}

func (c *OrderController) DeleteLine(ctx *fiber.Ctx) error {
	coID, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	itemID, err := parseUintParam(ctx, "itemId")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	actor := currentUser(ctx, c.DB)

	if err := c.Orders.DeleteLine(coID, itemID, actor); err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Line deleted",
	})
}

func (c *OrderController) Delete(ctx *fiber.Ctx) error {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	actor := currentUser(ctx, c.DB)

	if err := c.Orders.DeleteCustomerOrder(id, ctx.Query("confirm"), actor); err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Order deleted",
	})
}

// NextCode previews the next sequenced order code.
func (c *OrderController) NextCode(ctx *fiber.Ctx) error {
	code, err := c.Orders.GenerateCOCode()
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"code":    code,
	})
}
