package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"marketplace/internal/audit"
	"marketplace/internal/domain"
	"marketplace/internal/pkg/jwt"
	"marketplace/internal/repository"
)

// dummyHash keeps login timing similar for unknown emails.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type Service struct {
	users  UserRepository
	tokens TokenIssuer
	ttl    time.Duration
	audit  audit.Recorder
	now    func() time.Time
}

func NewService(users UserRepository, tokens TokenIssuer, ttl time.Duration, rec audit.Recorder) *Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Service{users: users, tokens: tokens, ttl: ttl, audit: rec, now: time.Now}
}

type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Register creates a customer account in the request tenant and opens a session.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         domain.RoleCustomer,
		Status:       domain.UserActive,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Entry{Action: "auth.register", ResourceType: "user", ResourceID: u.ID})
	return s.issue(u)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Status == domain.UserSuspended {
		return nil, ErrAccountSuspended
	}
	return s.issue(u)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) issue(u *domain.User) (*Session, error) {
	token, err := s.tokens.GenerateToken(jwt.Identity{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Role:     string(u.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{User: u, Token: token, ExpiresAt: s.now().Add(s.ttl)}, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
