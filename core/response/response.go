// Package response writes the JSON envelope shared by the account endpoints:
//
//	{ "code": 200, "msg": "success", "data": ..., "count": ... }
//
// Code 200 is success; other codes are domain outcomes delivered with HTTP 200.
// Unexpected failures use HTTP 500 and never carry error details.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// Envelope codes.
const (
	CodeOK           = 200
	CodeExists       = 1
	CodeBadPassword  = 1
	CodeNotFound     = 2
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeServerError  = 500
)

// Envelope is the response body.
type Envelope struct {
	Code  int    `json:"code"`
	Msg   string `json:"msg"`
	Data  any    `json:"data,omitempty"`
	Count *int64 `json:"count,omitempty"`
}

// JSON writes an envelope with HTTP 200.
func JSON(c *fiber.Ctx, code int, msg string, data any) error {
	return c.JSON(Envelope{Code: code, Msg: msg, Data: data})
}

// OK writes a success envelope.
func OK(c *fiber.Ctx, msg string, data any) error {
	return JSON(c, CodeOK, msg, data)
}

// Page writes a success envelope carrying a total count.
func Page(c *fiber.Ctx, msg string, data any, count int64) error {
	return c.JSON(Envelope{Code: CodeOK, Msg: msg, Data: data, Count: &count})
}

// BadRequest writes the envelope for malformed input. HTTP status stays 200 so
// clients read the code, matching the other domain outcomes.
func BadRequest(c *fiber.Ctx) error {
	return JSON(c, CodeBadRequest, "invalid parameters", nil)
}

// Unauthorized writes the envelope for a missing permission.
func Unauthorized(c *fiber.Ctx) error {
	return JSON(c, CodeUnauthorized, "permission denied", nil)
}

// ServerError writes HTTP 500 without leaking the cause.
func ServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(Envelope{Code: CodeServerError, Msg: "internal server error"})
}

// Status writes a bare status code with no body, as the race and record list
// endpoints do.
func Status(c *fiber.Ctx, status int) error {
	return c.SendStatus(status)
}
