package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jewelry_store/internal/config"
	"jewelry_store/internal/ledger"
	"jewelry_store/internal/metrics"
	"jewelry_store/internal/model"
	"jewelry_store/internal/ratelimit"
	"jewelry_store/internal/repository"
	"jewelry_store/internal/utils"

	"github.com/sirupsen/logrus"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this phone number already exists")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrTooManyAttempts    = errors.New("too many failed login attempts, try again later")
	ErrForbidden          = errors.New("forbidden: user does not have permission for this action")
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, phone, password string) (*model.User, string, error)
	Login(ctx context.Context, phone, password string) (*model.User, string, error)
	// CreateUser lets an admin open an account with an explicit role.
	CreateUser(ctx context.Context, actorRole, phone, password, role string) (*model.User, error)
	// Me returns the account behind a token. An account deleted after the
	// token was issued gives ErrInvalidCredentials.
	Me(ctx context.Context, userID int) (*model.User, error)
}

// AuthOptions carries the settings AuthService needs from AppConfig
type AuthOptions struct {
	InitialAdminPhone string
	PhoneRegion       string
}

type authService struct {
	userRepo     repository.UserRepository
	jwtUtil      *utils.JWTUtil
	loginLimiter *ratelimit.Limiter
	opts         AuthOptions
	logger       *logrus.Logger
}

// NewAuthService creates a new AuthService. loginLimiter counts failed logins per phone.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, loginLimiter *ratelimit.Limiter, opts AuthOptions) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtUtil:      jwtUtil,
		loginLimiter: loginLimiter,
		opts:         opts,
		logger:       config.GetLogger(),
	}
}

func (s *authService) normalizePhone(phone string) (string, error) {
	normalized, err := utils.NormalizePhone(phone, s.opts.PhoneRegion)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ledger.ErrValidation, err)
	}
	return normalized, nil
}

func (s *authService) createUser(ctx context.Context, phone, password, role string) (*model.User, error) {
	existingUser, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Phone:        phone,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

// Register creates a staff account, or an admin one for INITIAL_ADMIN_PHONE
func (s *authService) Register(ctx context.Context, phone, password string) (*model.User, string, error) {
	phone, err := s.normalizePhone(phone)
	if err != nil {
		return nil, "", err
	}

	role := model.RoleStaff
	if s.opts.InitialAdminPhone != "" {
		if adminPhone, err := utils.NormalizePhone(s.opts.InitialAdminPhone, s.opts.PhoneRegion); err == nil && adminPhone == phone {
			role = model.RoleAdmin
			s.logger.WithField("phone", phone).Info("registering user as admin via INITIAL_ADMIN_PHONE")
		}
	}

	user, err := s.createUser(ctx, phone, password, role)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Phone, user.Role)
	if err != nil {
		config.LogError(s.logger, "service", "Register", "user created, token failed", user.ID, err)
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates a user and returns a JWT token. After LOGIN_MAX_ATTEMPTS
// failures inside the window the phone is refused until the window slides.
func (s *authService) Login(ctx context.Context, phone, password string) (*model.User, string, error) {
	phone, err := s.normalizePhone(phone)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	blocked, err := s.loginLimiter.Blocked(ctx, phone)
	if err != nil {
		// attempt counting is advisory, a store error lets the login through
		config.LogError(s.logger, "service", "Login", "check attempts", phone, err)
		blocked = false
	}
	if blocked {
		metrics.LoginFailures.Inc()
		return nil, "", ErrTooManyAttempts
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by phone: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		metrics.LoginFailures.Inc()
		if err := s.loginLimiter.Hit(ctx, phone); err != nil {
			config.LogError(s.logger, "service", "Login", "record failed attempt", phone, err)
		}
		return nil, "", ErrInvalidCredentials
	}

	if err := s.loginLimiter.Reset(ctx, phone); err != nil {
		config.LogError(s.logger, "service", "Login", "reset attempts", phone, err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Phone, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

func (s *authService) CreateUser(ctx context.Context, actorRole, phone, password, role string) (*model.User, error) {
	if actorRole != model.RoleAdmin {
		return nil, ErrForbidden
	}
	if role != model.RoleAdmin && role != model.RoleStaff {
		return nil, fmt.Errorf("%w: unknown role %q", ledger.ErrValidation, role)
	}
	phone, err := s.normalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return s.createUser(ctx, phone, password, role)
}

func (s *authService) Me(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error finding user by id: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
