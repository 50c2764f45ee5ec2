// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/go-petr/paper-trade/internal/domain"
	"github.com/go-petr/paper-trade/pkg/errorspkg"
	"github.com/go-petr/paper-trade/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Get(ctx context.Context, username string) (domain.User, error)
}

// SignupTx creates the user together with the seeded cash account in
// one transaction.
type SignupTx interface {
	CreateWithAccount(ctx context.Context, arg domain.CreateUserParams, balance string) (domain.User, domain.Account, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo            Repo
	signup          SignupTx
	startingBalance string
}

// New return user service struct to manage user bussines logic.
func New(ur Repo, st SignupTx, startingBalance string) *Service {
	return &Service{
		repo:            ur,
		signup:          st,
		startingBalance: startingBalance,
	}
}

// NewUserWihtoutPassword returns user with removed sensitive data.
func NewUserWihtoutPassword(u domain.User) domain.UserWihtoutPassword {
	return domain.UserWihtoutPassword{
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Create creates the user together with its seeded cash account.
func (s *Service) Create(ctx context.Context, username, password, fullname, email string) (domain.UserWihtoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var result domain.UserWihtoutPassword

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		FullName:       fullname,
		Email:          email,
	}

	gotUser, _, err := s.signup.CreateWithAccount(ctx, arg, s.startingBalance)
	if err != nil {
		return result, err
	}

	result = NewUserWihtoutPassword(gotUser)

	return result, nil
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, pass string) (domain.UserWihtoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var response domain.UserWihtoutPassword

	gotUser, err := s.repo.Get(ctx, username)
	if err != nil {
		return response, err
	}

	err = passpkg.Check(pass, gotUser.HashedPassword)
	if err != nil {
		l.Warn().Err(err).Send()
		return response, domain.ErrWrongPassword
	}

	response = NewUserWihtoutPassword(gotUser)

	return response, nil
}

// IsRegistered reports whether the username resolves to an existing user.
func (s *Service) IsRegistered(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.Get(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
