package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"promptia-be/internal/dto"
	"promptia-be/internal/pkg/serverutils"
	"promptia-be/internal/service"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Detail(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/sessions", auth)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Get("/:id", c.Detail)
	h.Patch("/:id", c.Update)
}

func callerUserId(ctx *fiber.Ctx) uuid.UUID {
	return ctx.Locals(serverutils.LocalsUserId).(uuid.UUID)
}

func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.ValidationError("Identificador inválido", nil)
	}
	return id, nil
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ValidationError("Datos inválidos", nil)
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), callerUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context(), callerUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) Detail(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Detail(ctx.Context(), callerUserId(ctx), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) Update(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ValidationError("Datos inválidos", nil)
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), callerUserId(ctx), sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
