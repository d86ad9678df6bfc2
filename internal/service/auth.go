package service

import (
	"context"

	"github.com/dealdesk/dealdesk/internal/api/dto"
	"github.com/dealdesk/dealdesk/internal/auth"
	"github.com/dealdesk/dealdesk/internal/domain/user"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	ServiceParams
	tokens auth.TokenService
}

func NewAuthService(params ServiceParams, tokens auth.TokenService) AuthService {
	return &authService{ServiceParams: params, tokens: tokens}
}

func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ierr.NewError("email already registered").
			WithHint("An account with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost+s.Config.Auth.BcryptCostExtra)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to hash password").
			Mark(ierr.ErrSystem)
	}

	u := &user.User{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hashed),
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	if u.TenantID == "" {
		u.TenantID = types.DefaultTenantID
	}
	// the user is their own creator
	u.CreatedBy = u.ID
	u.UpdatedBy = u.ID

	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueToken(u.ID, u.TenantID)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("user signed up", "user_id", u.ID)
	return &dto.AuthResponse{Token: token, User: u}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(req.Password)); err != nil {
		return nil, invalidCredentials()
	}

	token, err := s.tokens.IssueToken(u.ID, u.TenantID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: u}, nil
}

func invalidCredentials() error {
	return ierr.NewError("invalid credentials").
		WithHint("Email or password is incorrect").
		Mark(ierr.ErrPermissionDenied)
}
