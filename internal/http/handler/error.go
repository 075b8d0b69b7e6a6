package handler

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"trainerweb/internal/http/middleware"
	"trainerweb/internal/ui"
)

// errorPayload defines the JSON error body of the operational endpoints.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// render writes a full HTML page. The template runs into a buffer first so a
// failing template never leaves a half-written body behind.
func render(c *fiber.Ctx, pages *ui.Renderer, status int, name string, p ui.Page) error {
	p.RequestID = middleware.RequestIDFrom(c)

	var buf bytes.Buffer
	if err := pages.Render(&buf, name, p); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

// ErrorHandler returns the Fiber global error handler. It renders the HTML
// error page; if that fails too it falls back to plain text.
func ErrorHandler(pages *ui.Renderer) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		var message string
		switch status {
		case fiber.StatusBadRequest:
			message = "Bad request."
		case fiber.StatusNotFound:
			message = "Page not found."
		case fiber.StatusMethodNotAllowed:
			message = "Method not allowed."
		default:
			message = "Something went wrong."
		}

		page := ui.Page{
			Title: "Error",
			Data:  ui.ErrorData{Status: status, Message: message},
		}
		if rerr := render(c, pages, status, ui.PageError, page); rerr != nil {
			return c.Status(status).SendString(message)
		}
		return nil
	}
}
