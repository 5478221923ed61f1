package controller

import (
	"bufio"
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"promptia-be/internal/dto"
	"promptia-be/internal/pkg/serverutils"
	"promptia-be/internal/service"
	"promptia-be/pkg/chat"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Chat(ctx *fiber.Ctx) error
	Stream(ctx *fiber.Ctx) error
	GenerateAudio(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService  service.IChatService
	audioService service.IAudioService
}

func NewChatController(chatService service.IChatService, audioService service.IAudioService) IChatController {
	return &chatController{chatService: chatService, audioService: audioService}
}

func (c *chatController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/chat", auth)
	h.Post("/", c.Chat)
	h.Post("/stream", c.Stream)
	h.Post("/generate-audio", c.GenerateAudio)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ValidationError("Datos inválidos", nil)
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.chatService.Turn(ctx.Context(), callerUserId(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

// Stream runs the turn in a separate goroutine feeding a channel sink,
// and waits for the first event before committing to a streamed
// response. Preconditions and pre-first-byte provider failures therefore
// still surface as ordinary JSON errors; everything after the first
// event goes out as server-sent events.
func (c *chatController) Stream(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ValidationError("Datos inválidos", nil)
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	userId := callerUserId(ctx)

	turnCtx, cancel := context.WithCancel(context.Background())
	sink := chat.NewChannelSink(turnCtx.Done(), 16)

	var turnErr error
	go func() {
		defer sink.Close()
		turnErr = c.chatService.StreamTurn(turnCtx, userId, &req, sink)
	}()

	first, ok := <-sink.Events()
	if !ok {
		cancel()
		if turnErr != nil {
			return turnErr
		}
		return serverutils.UpstreamFailure(chat.UpstreamErrorMessage)
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// Cancelling tells the sink its consumer is gone; the turn
		// goroutine then stops on its own.
		defer cancel()

		if err := chat.WriteEvent(w, first); err != nil {
			return
		}
		for ev := range sink.Events() {
			if err := chat.WriteEvent(w, ev); err != nil {
				return
			}
		}
	}))

	return nil
}

func (c *chatController) GenerateAudio(ctx *fiber.Ctx) error {
	var req dto.GenerateAudioRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.ValidationError("Datos inválidos", nil)
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.audioService.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
