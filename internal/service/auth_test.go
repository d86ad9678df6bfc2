package service

import (
	"testing"

	"github.com/dealdesk/dealdesk/internal/api/dto"
	"github.com/dealdesk/dealdesk/internal/auth"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AuthService
	tokens  auth.TokenService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.tokens = auth.NewTokenService(s.GetConfig())
	s.service = NewAuthService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		Sender:       s.GetSender(),
		Cache:        s.GetCache(),
		ContractRepo: stores.ContractRepo,
		LineItemRepo: stores.LineItemRepo,
		ProductRepo:  stores.ProductRepo,
		ApprovalRepo: stores.ApprovalRepo,
		CustomerRepo: stores.CustomerRepo,
		LeadRepo:     stores.LeadRepo,
		UserRepo:     stores.UserRepo,
	}, s.tokens)
}

func (s *AuthServiceSuite) TestSignUpAndLogin() {
	resp, err := s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	s.NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal("ada@example.com", resp.User.Email)
	s.NotEqual("correct-horse", resp.User.HashedPassword)

	claims, err := s.tokens.ParseToken(resp.Token)
	s.NoError(err)
	s.Equal(resp.User.ID, claims.Subject)

	login, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	s.NoError(err)
	s.NotEmpty(login.Token)
}

func (s *AuthServiceSuite) TestSignUpDuplicateEmail() {
	_, err := s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	s.NoError(err)

	_, err = s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:    "ada@example.com",
		Password: "other-password",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.SignUp(s.GetContext(), dto.SignUpRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	s.NoError(err)

	_, err = s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(s.GetContext(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AuthServiceSuite) TestParseTokenRejectsGarbage() {
	_, err := s.tokens.ParseToken("not-a-token")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}
