package app

import (
	"context"

	"social_network_service/internal/friendship/domain"
	"social_network_service/internal/friendship/repository"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// FriendshipHandler REST api
type FriendshipHandler struct {
	uc       *FriendshipUseCase
	resolver *ProfileResolver
}

// NewFriendshipHandler resolver 可為 nil, 此時 hydrate 無效
func NewFriendshipHandler(uc *FriendshipUseCase, resolver *ProfileResolver) *FriendshipHandler {
	return &FriendshipHandler{uc: uc, resolver: resolver}
}

// Request
// @Summary 送出好友邀請
// @Tags friendships
// @Accept json
// @Produce json
// @Param body body domain.RequestBody true "recipient"
// @Success 201 {object} domain.Friendship
// @Router /friendships/request [post]
func (h *FriendshipHandler) Request(c *fiber.Ctx) error {
	var req domain.RequestBody
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrValidation, "invalid body"))
	}
	f, err := h.uc.Request(c.UserContext(), middlewares.UserID(c), req.RecipientID)
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Friend request sent", "friendship": f})
}

// Accept
// @Summary 接受邀請
// @Tags friendships
// @Param body body domain.RespondBody true "requester"
// @Success 200 {object} domain.Friendship
// @Router /friendships/accept [post]
func (h *FriendshipHandler) Accept(c *fiber.Ctx) error {
	return h.respond(c, h.uc.Accept, "Friend request accepted")
}

// Reject
// @Summary 拒絕邀請
// @Tags friendships
// @Param body body domain.RespondBody true "requester"
// @Success 200 {object} domain.Friendship
// @Router /friendships/reject [post]
func (h *FriendshipHandler) Reject(c *fiber.Ctx) error {
	return h.respond(c, h.uc.Reject, "Friend request rejected")
}

func (h *FriendshipHandler) respond(c *fiber.Ctx, fn func(ctx context.Context, me, requesterID string) (*domain.Friendship, error), msg string) error {
	var req domain.RespondBody
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrValidation, "invalid body"))
	}
	f, err := fn(c.UserContext(), middlewares.UserID(c), req.RequesterID)
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(fiber.Map{"message": msg, "friendship": f})
}

// Remove
// @Summary 解除好友
// @Tags friendships
// @Param body body domain.RemoveBody true "friend"
// @Router /friendships/remove [delete]
func (h *FriendshipHandler) Remove(c *fiber.Ctx) error {
	var req domain.RemoveBody
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrValidation, "invalid body"))
	}
	if err := h.uc.Remove(c.UserContext(), middlewares.UserID(c), req.FriendID); err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend removed"})
}

// List
// @Summary 好友 id 列表
// @Tags friendships
// @Produce json
// @Success 200 {array} string
// @Router /friendships/list [get]
func (h *FriendshipHandler) List(c *fiber.Ctx) error {
	ids, err := h.uc.List(c.UserContext(), middlewares.UserID(c))
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(ids)
}

// Pending
// @Summary 收到的邀請, hydrate=true 時 requester 為 profile
// @Tags friendships
// @Produce json
// @Param hydrate query bool false "resolve requester profile"
// @Success 200 {array} domain.PendingRequest
// @Router /friendships/pending [get]
func (h *FriendshipHandler) Pending(c *fiber.Ctx) error {
	list, err := h.uc.Pending(c.UserContext(), middlewares.UserID(c))
	if err != nil {
		return errprocess.Reply(c, err)
	}

	out := make([]domain.PendingRequest, 0, len(list))
	for _, f := range list {
		out = append(out, domain.NewPendingRequest(f))
	}
	if h.resolver != nil && c.QueryBool("hydrate") {
		ctx := repository.WithCredential(c.UserContext(), middlewares.Credential(c))
		ctx = WithProfileMemo(ctx, DefaultMemoSize)
		out = h.resolver.HydratePending(ctx, out)
	}
	return c.JSON(out)
}
