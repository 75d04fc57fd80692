package app

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"social_network_service/internal/user/domain"
	"social_network_service/internal/user/repository"
	"social_network_service/pkg/config"
	"social_network_service/pkg/database"
	"social_network_service/pkg/encrypt"
	errprocess "social_network_service/pkg/err"
	"social_network_service/pkg/logger"
	"social_network_service/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SearchLimit 搜尋結果上限
const SearchLimit = 20

// UserUseCase 這裡封裝了對外提供的應用服務
type UserUseCase interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegistrationOrder, error)
	Login(ctx context.Context, email, password string) (*domain.LoginResponse, error)
	Logout(ctx context.Context, userID string) error
	SessionTTL(ctx context.Context, userID string) (int, error)
	CheckSession(ctx context.Context, userID string) error
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.Profile, error)
	Search(ctx context.Context, keyword string) ([]domain.Profile, error)
	ListOrders(ctx context.Context) ([]domain.RegistrationOrder, error)
	ApproveOrder(ctx context.Context, orderID string) (*domain.Profile, error)
	RejectOrder(ctx context.Context, orderID string) error
	SeedAdmin(ctx context.Context, admin config.AdminConfig) error
}

type userUseCase struct {
	userRepo   repository.UserRepository
	orderRepo  repository.OrderRepository
	sessionTTL time.Duration
	redisRepo  database.RedisRepository[domain.UserSession]
	issuer     string
}

// NewUserUseCase 建立一個新的 UserUseCase
func NewUserUseCase(userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.UserSession],
) UserUseCase {
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	return &userUseCase{
		userRepo:   userRepo,
		orderRepo:  orderRepo,
		sessionTTL: sessionTTL,
		redisRepo:  redisRepo,
		issuer:     config.EnvConfig.UserService,
	}
}

func sessionKey(userID string) string {
	return "session:" + userID
}

// Register 建立註冊單, 管理員核准後才是使用者
func (u *userUseCase) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegistrationOrder, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "username is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "invalid email")
	}
	if err := encrypt.ValidatePasswordStrength(req.Password); err != nil {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "%v", err)
	}

	// 檢查 email 是否已存在
	if _, err := u.userRepo.FindByUser(ctx, &domain.UserQuery{Email: &req.Email}); err == nil {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "email already exists")
	} else if !errors.Is(err, errprocess.ErrNotFound) {
		return nil, storeErr(err)
	}
	pending, err := u.orderRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, storeErr(err)
	}
	if pending {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "registration already submitted")
	}

	pw, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	order := &domain.RegistrationOrder{
		ID:       uuid.New().String(),
		Username: req.Username,
		Email:    req.Email,
		Password: pw,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	}
	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, storeErr(err)
	}
	logger.Log.Info("registration submitted", zap.String("orderID", order.ID), zap.String("username", order.Username))
	return order, nil
}

// Login 密碼正確且已核准才發 token
func (u *userUseCase) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := u.userRepo.FindByUser(ctx, &domain.UserQuery{Email: &email})
	if err != nil {
		if errors.Is(err, errprocess.ErrNotFound) {
			return nil, errprocess.Wrap(errprocess.ErrUnauthorized, "invalid credentials")
		}
		return nil, storeErr(err)
	}
	if err := user.IsPasswordMatch(password); err != nil {
		logger.Log.Debug("password can't match", zap.String("userID", user.ID))
		return nil, errprocess.Wrap(errprocess.ErrUnauthorized, "invalid credentials")
	}
	if !user.Approved {
		return nil, errprocess.Wrap(errprocess.ErrForbidden, "user not approved by admin")
	}

	t, err := token.GenerateJWTFunc(user.ID, string(user.Role), u.issuer)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := domain.UserSession{
		Token:        t,
		UserID:       user.ID,
		Role:         user.Role,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(u.sessionTTL),
	}
	if err := u.redisRepo.Set(ctx, sessionKey(user.ID), session, u.sessionTTL); err != nil {
		// 沒有 session 的 token 過不了 RequireSession
		logger.Log.Error("store session", zap.String("userID", user.ID), zap.Error(err))
		return nil, errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "store session: %v", err)
	}

	return &domain.LoginResponse{
		Token:     t,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: session.ExpiredAt,
	}, nil
}

// Logout 刪除 session
func (u *userUseCase) Logout(ctx context.Context, userID string) error {
	if err := u.redisRepo.Del(ctx, sessionKey(userID)); err != nil {
		return errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "drop session: %v", err)
	}
	logger.Log.Debug("logout", zap.String("userID", userID))
	return nil
}

// SessionTTL session 剩餘秒數, 0 表示已過期或已登出
func (u *userUseCase) SessionTTL(ctx context.Context, userID string) (int, error) {
	ttl, err := u.redisRepo.GetTTL(ctx, sessionKey(userID))
	if err != nil {
		return 0, errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "session ttl: %v", err)
	}
	return ttl, nil
}

// CheckSession 登出後或過期的 session 視為未登入
func (u *userUseCase) CheckSession(ctx context.Context, userID string) error {
	session, err := u.redisRepo.Get(ctx, sessionKey(userID))
	if errors.Is(err, database.ErrRedisNil) {
		return errprocess.Wrap(errprocess.ErrUnauthorized, "session expired or logged out")
	}
	if err != nil {
		return errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "session: %v", err)
	}
	if session.IsExpired() {
		return errprocess.Wrap(errprocess.ErrUnauthorized, "session expired or logged out")
	}
	return nil
}

func (u *userUseCase) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := u.userRepo.FindByUser(ctx, &domain.UserQuery{ID: &userID})
	if err != nil {
		return nil, storeErr(err)
	}
	p := user.Profile()
	return &p, nil
}

func (u *userUseCase) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	if req.Bio == nil && req.Avatar == nil {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "nothing to update")
	}
	user, err := u.userRepo.UpdateProfile(ctx, userID, req.Bio, req.Avatar)
	if err != nil {
		return nil, storeErr(err)
	}
	p := user.Profile()
	return &p, nil
}

func (u *userUseCase) Search(ctx context.Context, keyword string) ([]domain.Profile, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "username is required")
	}
	users, err := u.userRepo.SearchByUsername(ctx, keyword, SearchLimit)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]domain.Profile, 0, len(users))
	for i := range users {
		out = append(out, users[i].Profile())
	}
	return out, nil
}

func (u *userUseCase) ListOrders(ctx context.Context) ([]domain.RegistrationOrder, error) {
	orders, err := u.orderRepo.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return orders, nil
}

// ApproveOrder 建立使用者後刪除註冊單, email 已存在時只刪單
func (u *userUseCase) ApproveOrder(ctx context.Context, orderID string) (*domain.Profile, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, storeErr(err)
	}

	if _, err := u.userRepo.FindByUser(ctx, &domain.UserQuery{Email: &order.Email}); err == nil {
		if err := u.orderRepo.Delete(ctx, orderID); err != nil {
			return nil, storeErr(err)
		}
		return nil, errprocess.Wrap(errprocess.ErrValidation, "user already exists, order deleted")
	} else if !errors.Is(err, errprocess.ErrNotFound) {
		return nil, storeErr(err)
	}

	user := order.ToUser()
	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, storeErr(err)
	}
	if err := u.orderRepo.Delete(ctx, orderID); err != nil {
		logger.Log.Warn("delete approved order", zap.String("orderID", orderID), zap.Error(err))
	}
	logger.Log.Info("registration approved", zap.String("userID", user.ID))

	p := user.Profile()
	return &p, nil
}

func (u *userUseCase) RejectOrder(ctx context.Context, orderID string) error {
	return storeErr(u.orderRepo.Delete(ctx, orderID))
}

// SeedAdmin 管理員不存在時建立
func (u *userUseCase) SeedAdmin(ctx context.Context, admin config.AdminConfig) error {
	if admin.Email == "" || admin.Password == "" {
		logger.Log.Warn("admin seed skipped, email or password not configured")
		return nil
	}
	email := strings.ToLower(admin.Email)
	if _, err := u.userRepo.FindByUser(ctx, &domain.UserQuery{Email: &email}); err == nil {
		return nil
	} else if !errors.Is(err, errprocess.ErrNotFound) {
		return storeErr(err)
	}

	pw, err := encrypt.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	username := admin.Username
	if username == "" {
		username = "admin"
	}
	user := &domain.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: pw,
		Bio:      "Admin user",
		Role:     domain.RoleAdmin,
		Approved: true,
	}
	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return storeErr(err)
	}
	logger.Log.Info("admin seeded", zap.String("email", email))
	return nil
}

func storeErr(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{errprocess.ErrNotFound, errprocess.ErrValidation, errprocess.ErrForbidden, errprocess.ErrUnauthorized} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return errprocess.Wrap(errprocess.ErrUpstreamUnavailable, "user store: %v", err)
}
