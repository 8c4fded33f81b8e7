package api

import (
	"github.com/gofiber/fiber/v2"
)

type BridgeHandler interface {
	Dispatch(ctx *fiber.Ctx) error
	GetPrivacyRules(ctx *fiber.Ctx) error
}
