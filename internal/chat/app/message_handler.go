package app

import (
	"social_network_service/internal/chat/domain"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// MessageHandler REST api
type MessageHandler struct {
	messageUC *MessageUseCase
	mediaUC   *MediaUseCase
}

// NewMessageHandler create MessageHandler, mediaUC 可為 nil
func NewMessageHandler(messageUC *MessageUseCase, mediaUC *MediaUseCase) *MessageHandler {
	return &MessageHandler{messageUC: messageUC, mediaUC: mediaUC}
}

// Send
// @Summary 傳送訊息
// @Tags messages
// @Accept json
// @Produce json
// @Param body body domain.SendMessageRequest true "message"
// @Success 201 {object} domain.Message
// @Router /messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req domain.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrValidation, "invalid body"))
	}
	msg, err := h.messageUC.Send(c.UserContext(), middlewares.UserID(c), req.ReceiverID, req.Content, req.Media)
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// History
// @Summary 與某人的對話紀錄
// @Tags messages
// @Produce json
// @Param otherUserId path string true "counterpart"
// @Success 200 {array} domain.Message
// @Router /messages/{otherUserId} [get]
func (h *MessageHandler) History(c *fiber.Ctx) error {
	msgs, err := h.messageUC.History(c.UserContext(), middlewares.UserID(c), c.Params("otherUserId"))
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(msgs)
}

// Update
// @Summary 修改自己的訊息
// @Tags messages
// @Router /messages/{id} [put]
func (h *MessageHandler) Update(c *fiber.Ctx) error {
	var req domain.UpdateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrValidation, "invalid body"))
	}
	msg, err := h.messageUC.Update(c.UserContext(), middlewares.UserID(c), c.Params("id"), req.Content)
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(msg)
}

// Delete
// @Summary 刪除自己的訊息
// @Tags messages
// @Router /messages/{id} [delete]
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	if err := h.messageUC.Delete(c.UserContext(), middlewares.UserID(c), c.Params("id")); err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(fiber.Map{"message": "Message deleted"})
}

// React
// @Summary 設定 emoji
// @Tags messages
// @Router /messages/{id}/react [post]
func (h *MessageHandler) React(c *fiber.Ctx) error {
	var req domain.ReactRequest
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrValidation, "invalid body"))
	}
	msg, err := h.messageUC.React(c.UserContext(), middlewares.UserID(c), c.Params("id"), req.Emoji)
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(msg)
}

// UploadMedia
// @Summary 上傳訊息附件 (multipart field "file")
// @Tags messages
// @Router /messages/media [post]
func (h *MessageHandler) UploadMedia(c *fiber.Ctx) error {
	if h.mediaUC == nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "media storage disabled"))
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrValidation, "file is required"))
	}
	f, err := fh.Open()
	if err != nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrValidation, "cannot read file"))
	}
	defer f.Close()

	resp, err := h.mediaUC.Upload(c.UserContext(), middlewares.UserID(c), fh.Filename, f, fh.Size, fh.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
