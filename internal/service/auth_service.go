package service

import (
	"context"
	"errors"
	"time"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/config"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/dto"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)
	// Register creates a user account. Admin only; enforced here as well as
	// at the route so the rule survives any future caller.
	Register(ctx context.Context, actor Actor, req dto.RegisterUserRequest) (*dto.UserResponse, error)
}

type authService struct {
	users repository.UserRepository
	bases repository.BaseRepository
	cfg   *config.Config
	audit AuditRecorder
}

func NewAuthService(users repository.UserRepository, bases repository.BaseRepository, cfg *config.Config, audit AuditRecorder) AuthService {
	return &authService{users: users, bases: bases, cfg: cfg, audit: audit}
}

// tokenClaims is the JWT payload shared by access and refresh tokens; the
// middleware rejects refresh tokens on API routes via the "typ" claim.
type tokenClaims struct {
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	BaseID    *string `json:"base_id,omitempty"`
	TokenType string  `json:"typ"`
	jwt.RegisteredClaims
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		// Same rejection for unknown user and bad password.
		return nil, rejectf(RejectAccessDenied, "invalid credentials")
	} else if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, rejectf(RejectAccessDenied, "invalid credentials")
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.TokenType != "refresh" {
		return nil, rejectf(RejectAccessDenied, "invalid refresh token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, rejectf(RejectAccessDenied, "invalid refresh token")
	}
	// Re-read the user so deactivation and role changes take effect on the
	// next refresh, not only at token expiry.
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, rejectf(RejectAccessDenied, "invalid refresh token")
	} else if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, rejectf(RejectAccessDenied, "account is deactivated")
	}
	return s.issueTokens(user)
}

func (s *authService) Register(ctx context.Context, actor Actor, req dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, rejectf(RejectAccessDenied, "only admins may create users")
	}
	var baseID *uuid.UUID
	if req.BaseID != nil && *req.BaseID != "" {
		id, err := uuid.Parse(*req.BaseID)
		if err != nil {
			return nil, rejectf(RejectInvalidInput, "invalid base_id")
		}
		if _, err := s.bases.FindByID(ctx, id); errors.Is(err, repository.ErrNotFound) {
			return nil, rejectf(RejectInvalidInput, "base does not exist")
		} else if err != nil {
			return nil, err
		}
		baseID = &id
	}
	if req.Role != model.RoleAdmin && baseID == nil {
		return nil, rejectf(RejectInvalidInput, "base_id is required for base-scoped roles")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		BaseID:       baseID,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, rejectf(RejectInvalidInput, "username already taken")
		}
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		Actor:      actor,
		Action:     ActionCreate,
		EntityType: "USER",
		EntityID:   user.ID,
		NewValues:  map[string]interface{}{"username": user.Username, "role": user.Role, "base_id": user.BaseID},
	})
	return userToResponse(user), nil
}

func (s *authService) issueTokens(user *model.User) (*dto.LoginResponse, error) {
	accessTTL := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	access, err := s.signToken(user, "access", accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, "refresh", time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(accessTTL.Seconds()),
		User:         *userToResponse(user),
	}, nil
}

func (s *authService) signToken(user *model.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Username:  user.Username,
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if user.BaseID != nil {
		id := user.BaseID.String()
		claims.BaseID = &id
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func userToResponse(u *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
		Active:   u.Active,
	}
	if u.BaseID != nil {
		id := u.BaseID.String()
		resp.BaseID = &id
	}
	return resp
}
