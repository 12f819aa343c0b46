package api

import (
	"github.com/JawwadIrshad/Resturant-App/internal/session"

	"github.com/gofiber/fiber/v2"
)

type ChatResponse struct {
	Messages    []ChatMessageResponse `json:"messages"`
	Suggestions []string              `json:"suggestions"`
	Typing      bool                  `json:"typing"`
}

func chatResponse(s *session.Session) ChatResponse {
	msgs := s.Chat.Messages()
	res := ChatResponse{
		Messages:    make([]ChatMessageResponse, 0, len(msgs)),
		Suggestions: s.Chat.Suggestions(),
		Typing:      s.Chat.Typing(),
	}
	for _, m := range msgs {
		res.Messages = append(res.Messages, toChatMessageResponse(m))
	}
	if res.Suggestions == nil {
		res.Suggestions = []string{}
	}
	return res
}

// GET /api/chat
// Clients poll this while typing is true.
func GetChatHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(chatResponse(session.FromCtx(c)))
	}
}

type SendChatMessageRequest struct {
	Content string `json:"content"`
}

// POST /api/chat/messages
// The reply arrives later; the response only echoes the user's message.
func SendChatMessageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SendChatMessageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		s := session.FromCtx(c)
		msg, err := s.Chat.Send(body.Content, s.ChatState())
		if err != nil {
			return httpError(err)
		}

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message": toChatMessageResponse(msg),
			"typing":  s.Chat.Typing(),
		})
	}
}

// DELETE /api/chat
func ClearChatHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session.FromCtx(c)
		s.Chat.Clear()
		return c.JSON(chatResponse(s))
	}
}
