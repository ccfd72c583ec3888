package users

import (
	"context"
	"fmt"

	"github.com/gogotex/usergateway/internal/credentials"
	"github.com/gogotex/usergateway/internal/models"
)

// Store is the persistence the service needs; *gateway.Gateway[models.User] satisfies it.
type Store interface {
	CreateOne(ctx context.Context, u models.User) (models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

// Service encapsulates user registration and listing
type Service struct {
	store Store
	creds credentials.Processor
}

func NewService(s Store, p credentials.Processor) *Service {
	if p == nil {
		p = credentials.Bcrypt{}
	}
	return &Service{store: s, creds: p}
}

// Register runs the password through the credential stage and stores the user.
// Store failures are returned unchanged so callers can inspect their class.
func (s *Service) Register(ctx context.Context, name, email, password string) (models.User, error) {
	secret, err := s.creds.Process(password)
	if err != nil {
		return models.User{}, fmt.Errorf("process credentials: %w", err)
	}
	return s.store.CreateOne(ctx, models.User{Name: name, Email: email, Password: secret})
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListAll(ctx)
}
