package user

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/example/storefront/internal/apperr"
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/domain/validation"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/google/uuid"
)

// User is a stored account. The password hash never leaves the service as JSON.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Input struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type Service struct {
	store store.DocumentStore
}

func NewService(ds store.DocumentStore) *Service {
	return &Service{store: ds}
}

// Register stores a new account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, in Input) (*User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	existing, err := s.FindByEmail(ctx, in.Email)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Invalid("email", "already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return nil, apperr.Invalid("password", err.Error())
	}
	if err != nil {
		return nil, err
	}

	role := auth.ParseRole(in.Role)
	if role == auth.RoleNone {
		role = auth.RoleUser
	}

	u := &User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.store.Insert(ctx, store.CollectionUsers, toDocument(u)); err != nil {
		return nil, apperr.Persistence("insert user", err)
	}

	log.Printf("[User] Registered %s (%s)", u.Email, u.Role)
	return u, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	docs, err := s.store.Find(ctx, store.CollectionUsers, store.Filter{"email": email})
	if err != nil {
		return nil, apperr.Persistence("find user", err)
	}
	if len(docs) == 0 {
		return nil, apperr.NotFound("user", email)
	}
	u := fromDocument(docs[0])
	return &u, nil
}

// ListByRole returns every account holding role.
func (s *Service) ListByRole(ctx context.Context, role auth.Role) ([]User, error) {
	docs, err := s.store.Find(ctx, store.CollectionUsers, store.Filter{"role": string(role)})
	if err != nil {
		return nil, apperr.Persistence("find users", err)
	}
	users := make([]User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, fromDocument(doc))
	}
	return users, nil
}

func toDocument(u *User) store.Document {
	return store.Document{
		"id":           u.ID,
		"name":         u.Name,
		"email":        u.Email,
		"passwordHash": u.PasswordHash,
		"role":         string(u.Role),
		"createdAt":    u.CreatedAt,
	}
}

func fromDocument(doc store.Document) User {
	return User{
		ID:           doc.ID(),
		Name:         doc.String("name"),
		Email:        doc.String("email"),
		PasswordHash: doc.String("passwordHash"),
		Role:         auth.ParseRole(doc.String("role")),
		CreatedAt:    doc.Time("createdAt"),
	}
}
