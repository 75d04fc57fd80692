package app

import (
	"social_network_service/internal/user/domain"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/logger"
	"social_network_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler REST api of user service
type UserHandler struct {
	Usecase UserUseCase
}

// NewUserHandler create UserHandler
func NewUserHandler(uc UserUseCase) *UserHandler {
	return &UserHandler{Usecase: uc}
}

// RequireSession 放在 JWTMiddleware 之後, 已登出的 token 回 401
func (h *UserHandler) RequireSession(c *fiber.Ctx) error {
	if err := h.Usecase.CheckSession(c.UserContext(), middlewares.UserID(c)); err != nil {
		return errprocess.Reply(c, err)
	}
	return c.Next()
}

// Register
// @Summary 註冊, 等待管理員核准
// @Tags auth
// @Accept json
// @Produce json
// @Param body body domain.RegisterRequest true "register"
// @Success 201 {object} map[string]string
// @Router /auth/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrValidation, "invalid body"))
	}
	logger.Log.Debug("Register Req", zap.String("username", req.Username), zap.String("email", req.Email))

	order, err := h.Usecase.Register(c.UserContext(), req)
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration submitted. Awaiting admin approval.",
		"orderId": order.ID,
	})
}

// Login
// @Summary 登入
// @Tags auth
// @Accept json
// @Produce json
// @Param body body domain.LoginRequest true "login"
// @Success 200 {object} domain.LoginResponse
// @Router /auth/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrValidation, "invalid body"))
	}
	resp, err := h.Usecase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(resp)
}

// Logout
// @Summary 登出
// @Tags auth
// @Router /auth/logout [post]
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	if err := h.Usecase.Logout(c.UserContext(), middlewares.UserID(c)); err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully."})
}

// Session
// @Summary session 剩餘秒數
// @Tags auth
// @Router /auth/session [get]
func (h *UserHandler) Session(c *fiber.Ctx) error {
	ttl, err := h.Usecase.SessionTTL(c.UserContext(), middlewares.UserID(c))
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(fiber.Map{"ttl": ttl, "expired": ttl == 0})
}

// Me
// @Summary 自己的資料
// @Tags users
// @Router /auth/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	p, err := h.Usecase.Profile(c.UserContext(), middlewares.UserID(c))
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(p)
}

// GetUser
// @Summary 公開資料
// @Tags users
// @Param id path string true "user id"
// @Success 200 {object} domain.Profile
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	p, err := h.Usecase.Profile(c.UserContext(), c.Params("id"))
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(p)
}

// UpdateProfile
// @Summary 修改 bio / avatar
// @Tags users
// @Param body body domain.UpdateProfileRequest true "profile"
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req domain.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Reply(c, errprocess.Wrap(errprocess.ErrValidation, "invalid body"))
	}
	p, err := h.Usecase.UpdateProfile(c.UserContext(), middlewares.UserID(c), req)
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(p)
}

// Search
// @Summary 以 username 搜尋
// @Tags users
// @Param username path string true "keyword"
// @Success 200 {array} domain.Profile
// @Router /users/search/{username} [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	list, err := h.Usecase.Search(c.UserContext(), c.Params("username"))
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(list)
}

// ListOrders
// @Summary 註冊單列表
// @Tags admin
// @Success 200 {array} domain.RegistrationOrder
// @Router /admin/orders [get]
func (h *UserHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.Usecase.ListOrders(c.UserContext())
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(orders)
}

// ApproveOrder
// @Summary 核准註冊單
// @Tags admin
// @Param id path string true "order id"
// @Router /admin/orders/{id}/approve [post]
func (h *UserHandler) ApproveOrder(c *fiber.Ctx) error {
	p, err := h.Usecase.ApproveOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(fiber.Map{"message": "User approved and registered.", "user": p})
}

// RejectOrder
// @Summary 拒絕註冊單
// @Tags admin
// @Param id path string true "order id"
// @Router /admin/orders/{id} [delete]
func (h *UserHandler) RejectOrder(c *fiber.Ctx) error {
	if err := h.Usecase.RejectOrder(c.UserContext(), c.Params("id")); err != nil {
		return errprocess.Reply(c, err)
	}
	return c.JSON(fiber.Map{"message": "Registration order rejected and deleted."})
}
