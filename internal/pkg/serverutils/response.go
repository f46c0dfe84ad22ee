// FILE: internal/pkg/serverutils/response.go
package serverutils

import "github.com/gofiber/fiber/v2"

// SuccessResponse is the standard success envelope.
func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
}

// ErrorResponse is the standard failure envelope for plain errors.
func ErrorResponse(code int, message string) fiber.Map {
	return fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	}
}

// ProblemResponse is the problem-details shape used for gating rejections:
// a human-readable title/detail pair plus a stable machine code the client
// can branch on.
func ProblemResponse(title, detail, code string) fiber.Map {
	return fiber.Map{
		"title":  title,
		"detail": detail,
		"code":   code,
	}
}
