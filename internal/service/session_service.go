package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"skladpro/internal/domain"
	"skladpro/internal/logging"
	"skladpro/internal/metrics"
	"skladpro/internal/repository"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrForbidden   = errors.New("forbidden")
)

// Идентификаторы пользователей, которые выдаёт демо-вход без проверки пароля
const (
	loginUserID    int64 = 1
	registerUserID int64 = 2
	loginFullName        = "Оператор Склада"
)

// Session единственная активная сессия процесса
type Session struct {
	ID        string      `json:"id"`
	User      domain.User `json:"user"`
	StartedAt time.Time   `json:"started_at"`
}

type sessionClaims struct {
	UserID int64       `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionService вход, регистрация и выход. Пароль не проверяется: пользователь
// сочиняется локально, токен лишь указывает на текущую сессию.
type SessionService struct {
	mu      sync.RWMutex
	current *Session
	cart    repository.CartRepository
	secret  []byte
	onStart func(ctx context.Context, u domain.User)
}

func NewSessionService(cart repository.CartRepository, secret string) *SessionService {
	return &SessionService{cart: cart, secret: []byte(secret)}
}

// OnStart регистрирует хук, вызываемый после входа или регистрации
func (s *SessionService) OnStart(fn func(ctx context.Context, u domain.User)) {
	s.onStart = fn
}

// Login всегда входит как оператор склада
func (s *SessionService) Login(ctx context.Context, email string) (*Session, string, error) {
	if email == "" {
		return nil, "", ErrInvalidInput
	}
	return s.start(ctx, domain.User{ID: loginUserID, Email: email, FullName: loginFullName, Role: domain.RoleOperator})
}

// Register создаёт пользователя с выбранной ролью, по умолчанию покупатель
func (s *SessionService) Register(ctx context.Context, email, fullName string, role domain.Role) (*Session, string, error) {
	if role == "" {
		role = domain.RoleClient
	}
	if email == "" || fullName == "" || !role.IsValid() {
		return nil, "", ErrInvalidInput
	}
	return s.start(ctx, domain.User{ID: registerUserID, Email: email, FullName: fullName, Role: role})
}

func (s *SessionService) start(ctx context.Context, u domain.User) (*Session, string, error) {
	sess := &Session{ID: uuid.NewString(), User: u, StartedAt: time.Now().UTC()}
	token, err := s.sign(sess)
	if err != nil {
		return nil, "", fmt.Errorf("sign session: %w", err)
	}
	// новая сессия вытесняет прежнюю вместе с её корзиной
	if err := s.cart.Clear(ctx); err != nil {
		return nil, "", err
	}
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	metrics.Sessions.WithLabelValues(string(u.Role)).Inc()
	logging.LogKV("info", "session started", map[string]interface{}{
		"session_id": sess.ID, "user_id": u.ID, "role": u.Role,
	})
	if s.onStart != nil {
		s.onStart(ctx, u)
	}
	cp := *sess
	return &cp, token, nil
}

func (s *SessionService) sign(sess *Session) (string, error) {
	claims := sessionClaims{
		UserID: sess.User.ID,
		Email:  sess.User.Email,
		Role:   sess.User.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sess.ID,
			Subject:  fmt.Sprint(sess.User.ID),
			IssuedAt: jwt.NewNumericDate(sess.StartedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Authenticate проверяет подпись токена и что он указывает на активную сессию
func (s *SessionService) Authenticate(token string) (*Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrNotLoggedIn
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || s.current.ID != claims.ID {
		return nil, ErrNotLoggedIn
	}
	cp := *s.current
	return &cp, nil
}

// Current активная сессия
func (s *SessionService) Current() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNotLoggedIn
	}
	cp := *s.current
	return &cp, nil
}

// Logout завершает сессию и очищает корзину. Каталог, заявки и заказы остаются.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	if s.current == nil || s.current.ID != sessionID {
		s.mu.Unlock()
		return ErrNotLoggedIn
	}
	s.current = nil
	s.mu.Unlock()
	logging.LogKV("info", "session ended", map[string]interface{}{"session_id": sessionID})
	return s.cart.Clear(ctx)
}

// RoleTitle название роли для сообщений пользователю
func RoleTitle(r domain.Role) string {
	switch r {
	case domain.RoleOperator:
		return "Оператор"
	case domain.RoleSupplier:
		return "Поставщик"
	default:
		return "Покупатель"
	}
}
