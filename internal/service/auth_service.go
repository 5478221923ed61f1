package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"promptia-be/internal/dto"
	"promptia-be/internal/entity"
	"promptia-be/internal/pkg/credentials"
	"promptia-be/internal/pkg/logger"
	"promptia-be/internal/pkg/serverutils"
	"promptia-be/internal/repository/contract"
	"promptia-be/pkg/events"
	pktNats "promptia-be/pkg/nats"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	users          contract.UserRepository
	hasher         *credentials.PasswordHasher
	tokens         *credentials.TokenManager
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewAuthService(
	users contract.UserRepository,
	hasher *credentials.PasswordHasher,
	tokens *credentials.TokenManager,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		users:          users,
		hasher:         hasher,
		tokens:         tokens,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func toUserDTO(user *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := serverutils.SanitizeEmail(req.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.Conflict("El email ya está registrado")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Id, user.Email)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewUserRegistered(user.Id.String(), user.Email))

	return &dto.AuthResponse{Token: token, User: toUserDTO(user)}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := serverutils.SanitizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// Missing user and wrong password produce the same response so
	// callers cannot probe which emails are registered.
	if user == nil || !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, serverutils.Unauthorized("Credenciales inválidas")
	}

	token, err := s.tokens.Issue(user.Id, user.Email)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewUserLogin(user.Id.String(), user.Email))

	return &dto.AuthResponse{Token: token, User: toUserDTO(user)}, nil
}

// publishEvent is best effort: the event bus is observability plumbing and
// must never fail an auth flow.
func (s *authService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("auth", "Failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}
