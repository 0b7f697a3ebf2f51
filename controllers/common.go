package controllers

import (
	"errors"

	"frontline-inventory/config"
	"frontline-inventory/mailer"
	"frontline-inventory/models"
	"frontline-inventory/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

// currentUser resolves the acting user from the auth middleware context.
// A missing or stale user id yields nil, which the repositories record as an
// anonymous actor.
func currentUser(ctx *fiber.Ctx, db *gorm.DB) *models.User {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok {
		return nil
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil
	}
	return &user
}

// notifyLowStock mails an alert when the item sits at or below its minimum
// level after a stock movement. Fire and forget: the mail goes out after the
// response, and the mailer skips silently when SMTP is not configured.
func notifyLowStock(db *gorm.DB, itemID *uint) {
	if itemID == nil {
		return
	}
	var item models.Item
	if err := db.First(&item, *itemID).Error; err != nil {
		return
	}
	if !item.LowStock() {
		return
	}
	go func() {
		if err := mailer.SendLowStockAlert([]models.Item{item}); err != nil {
			config.Log.Errorw("low stock alert failed", "sku", item.SKU, "error", err)
		}
	}()
}

// respondRepoError translates repository failures into HTTP responses. All
// domain errors carry enough detail for the caller to act on them.
func respondRepoError(ctx *fiber.Ctx, err error) error {
	var insufficient *repositories.InsufficientUnitsError
	var confirmation *repositories.ConfirmationRequiredError

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Not found",
		})
	case errors.Is(err, repositories.ErrInvalidArgument):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
			"error":   err.Error(),
		})
	case errors.As(err, &insufficient):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":   false,
			"message":   "Insufficient units",
			"state":     insufficient.State,
			"requested": insufficient.Requested,
			"available": insufficient.Available,
		})
	case errors.As(err, &confirmation):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success":    false,
			"message":    "Confirmation required",
			"dependents": confirmation.Dependents,
			"detail":     confirmation.Detail,
		})
	case errors.Is(err, repositories.ErrCodeConflict):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Order code conflict, please retry",
		})
	default:
		config.Log.Errorw("request failed", "path", ctx.Path(), "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error",
		})
	}
}
