package controllers

import (
	"frontline-inventory/models"
	"frontline-inventory/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB     *gorm.DB
	Orders *repositories.OrderRepository
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{
		DB:     db,
		Orders: repositories.NewOrderRepository(db),
	}
}

func (c *CustomerController) List(ctx *fiber.Ctx) error {
	var customers []models.Customer
	q := c.DB.Model(&models.Customer{})
	if search := ctx.Query("q"); search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    customers,
	})
}

type customerInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

func (c *CustomerController) Create(ctx *fiber.Ctx) error {
	var input customerInput
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

	customer := models.Customer{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
		Notes: input.Notes,
	}
	if err := c.Orders.CreateCustomer(&customer); err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Customer created",
		"data":    customer,
	})
}

func (c *CustomerController) Update(ctx *fiber.Ctx) error {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	var input customerInput
	if err := ctx.BodyParser(&input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	if err := validate.Struct(input); err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}

	var customer models.Customer
	if err := c.DB.First(&customer, id).Error; err != nil {
		return respondRepoError(ctx, repositories.ErrNotFound)
	}
	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Notes = input.Notes
	if err := c.DB.Save(&customer).Error; err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Customer updated",
		"data":    customer,
	})
}

func (c *CustomerController) Delete(ctx *fiber.Ctx) error {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		return respondRepoError(ctx, repositories.ErrInvalidArgument)
	}
	deleteOrders := ctx.QueryBool("delete_cos")
	if err := c.Orders.DeleteCustomer(id, ctx.Query("confirm"), deleteOrders, currentUser(ctx, c.DB)); err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Customer deleted",
	})
}
