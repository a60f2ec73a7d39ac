package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/ssrlogistics/backend/internal/domain/identity"
	"github.com/ssrlogistics/backend/internal/domain/shared"
	"github.com/ssrlogistics/backend/internal/infrastructure/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user by email and password and returns a
// session token. An unknown email and a wrong password produce the
// same error so the endpoint cannot be used to probe for accounts; an
// inactive account is reported distinctly since the caller has already
// proven knowledge of valid credentials.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("login for unknown email", zap.String("email", input.Email))
		return nil, shared.ErrInvalidCredentials
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("login with wrong password", zap.String("email", input.Email))
		return nil, shared.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn("login for inactive account", zap.String("email", input.Email))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account inactive")
	}

	token, expiresAt, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		s.logger.Error("failed to sign token", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_GENERATION_FAILED", "Failed to generate token")
	}

	s.logger.Info("login succeeded",
		zap.Int64("user_id", user.UserID),
		zap.String("role", user.Role),
	)

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// Register creates a new user account. Unknown roles are demoted to the
// default role rather than rejected, so self-registration cannot grant
// privileges.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserResponse, error) {
	user, err := identity.NewUser(input.UserName, input.Email, input.Password, input.Role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == shared.ErrAlreadyExists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
		}
		return nil, err
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", user.UserID),
		zap.String("role", user.Role),
	)

	resp := ToUserResponse(user)
	return &resp, nil
}
