package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"promptia-be/internal/dto"
	"promptia-be/internal/entity"
	"promptia-be/internal/pkg/serverutils"
	"promptia-be/internal/repository/contract"
)

type ISessionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionDTO, error)
	List(ctx context.Context, userId uuid.UUID) (*dto.SessionListResponse, error)
	Detail(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionDetailResponse, error)
	Update(ctx context.Context, userId, sessionId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionDTO, error)
}

type sessionService struct {
	sessions contract.ChatSessionRepository
	messages contract.ChatMessageRepository
}

func NewSessionService(sessions contract.ChatSessionRepository, messages contract.ChatMessageRepository) ISessionService {
	return &sessionService{sessions: sessions, messages: messages}
}

func toSessionDTO(s *entity.ChatSession) dto.SessionDTO {
	return dto.SessionDTO{
		Id:        s.Id,
		Title:     s.Title,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toMessageDTO(m *entity.ChatMessage) dto.MessageDTO {
	return dto.MessageDTO{
		Id:        m.Id,
		SessionId: m.ChatSessionId,
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// ownedSession loads a session and enforces ownership. Existence is
// checked before ownership: probing another user's session id yields 404
// only when the id does not exist at all, 403 otherwise.
func ownedSession(ctx context.Context, sessions contract.ChatSessionRepository, sessionId, userId uuid.UUID) (*entity.ChatSession, error) {
	session, err := sessions.FindById(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NotFound("Sesión no encontrada")
	}
	if session.UserId != userId {
		return nil, serverutils.Forbidden("No autorizado")
	}
	return session, nil
}

func (s *sessionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionDTO, error) {
	now := time.Now()
	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     serverutils.SanitizeString(req.Title),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	result := toSessionDTO(session)
	return &result, nil
}

func (s *sessionService) List(ctx context.Context, userId uuid.UUID) (*dto.SessionListResponse, error) {
	sessions, err := s.sessions.ListByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	list := make([]dto.SessionDTO, 0, len(sessions))
	for _, session := range sessions {
		list = append(list, toSessionDTO(session))
	}
	return &dto.SessionListResponse{Sessions: list}, nil
}

func (s *sessionService) Detail(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionDetailResponse, error) {
	session, err := ownedSession(ctx, s.sessions, sessionId, userId)
	if err != nil {
		return nil, err
	}

	messages, err := s.messages.ListBySession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	detail := &dto.SessionDetailResponse{
		SessionDTO: toSessionDTO(session),
		Messages:   make([]dto.MessageDTO, 0, len(messages)),
	}
	for _, msg := range messages {
		detail.Messages = append(detail.Messages, toMessageDTO(msg))
	}
	return detail, nil
}

func (s *sessionService) Update(ctx context.Context, userId, sessionId uuid.UUID, req *dto.UpdateSessionRequest) (*dto.SessionDTO, error) {
	session, err := ownedSession(ctx, s.sessions, sessionId, userId)
	if err != nil {
		return nil, err
	}

	// Omitted title is a no-op: the current session is returned as-is.
	if req.Title != nil {
		title := serverutils.SanitizeString(*req.Title)
		if err := s.sessions.UpdateTitle(ctx, sessionId, title); err != nil {
			return nil, err
		}
		session.Title = title
		session.UpdatedAt = time.Now()
	}

	result := toSessionDTO(session)
	return &result, nil
}
