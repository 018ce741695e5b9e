package response

import "github.com/gofiber/fiber/v2"

func Ptr[T any](v T) *T {
	return &v
}

func SendSuccess(c *fiber.Ctx, msg string, data ...any) error {
	return c.Status(fiber.StatusOK).JSON(Success(msg, data...))
}

func SendCreated(c *fiber.Ctx, msg string, data ...any) error {
	return c.Status(fiber.StatusCreated).JSON(Success(msg, data...))
}

func SendUnauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(Error(msg))
}

func SendFailed(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Error(msg))
}

// SendValidationFailed reports every field error of a payload at once.
func SendValidationFailed(c *fiber.Ctx, msg string, errors []string) error {
	resp := Error(msg)
	resp.Errors = errors
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}

func SendNotFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(Error(msg))
}

func SendConflict(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusConflict).JSON(Error(msg))
}

func SendError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(Error(msg))
}
