// Package accountservice manages business logic layer of cash accounts.
package accountservice

import (
	"context"

	"github.com/go-petr/paper-trade/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, username, balance string) (domain.Account, error)
	Get(ctx context.Context, username string) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create opens the cash account with the given starting balance.
func (s *Service) Create(ctx context.Context, username, balance string) (domain.Account, error) {
	return s.repo.Create(ctx, username, balance)
}

// Get returns the cash account of the given user.
func (s *Service) Get(ctx context.Context, username string) (domain.Account, error) {
	return s.repo.Get(ctx, username)
}
