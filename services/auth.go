package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-catalog-api/apperr"
	"food-catalog-api/models"
	"food-catalog-api/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenTTL   = 30 * 24 * time.Hour
	DefaultBcryptCost = 10
)

const (
	msgUserExists     = "User already exists"
	msgBadCredentials = "Invalid email or password"
	msgNotAuthorized  = "Not authorized"
	msgNotAdmin       = "Not authorized as admin"
	msgUserNotFound   = "User not found"
	msgAlreadyAdmin   = "User is already an admin"
	msgSelfPromotion  = "You cannot update your own role"
)

// Claims is the signed token payload
type Claims struct {
	UserID string          `json:"id"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login, token verification and role changes
type AuthService struct {
	users      store.UserStore
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

type AuthOption func(*AuthService)

func WithTokenTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) { s.tokenTTL = ttl }
}

func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) { s.bcryptCost = cost }
}

// WithClock overrides the time source used to stamp tokens
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(users store.UserStore, secret string, opts ...AuthOption) *AuthService {
	s := &AuthService{
		users:      users,
		jwtSecret:  []byte(secret),
		tokenTTL:   DefaultTokenTTL,
		bcryptCost: DefaultBcryptCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates the input, rejects known emails and stores a bcrypt hash of the password
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)

	// Validate before hashing so a bad password never reaches bcrypt
	if errs := in.Validate(); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Conflict(msgUserExists)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	user, err := s.users.Insert(ctx, &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, apperr.Conflict(msgUserExists)
		}
		return nil, apperr.Internal(err)
	}
	return withoutPassword(user), nil
}

// Login checks credentials and issues a signed token. Unknown email and wrong
// password fail with the same message.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (*models.LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if errs := in.Validate(); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthorized(msgBadCredentials)
		}
		return nil, apperr.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthorized(msgBadCredentials)
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("sign token: %w", err))
	}
	return &models.LoginResult{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}, nil
}

// GenerateToken creates a signed JWT carrying the user's id and role
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken checks the signature and expiry, then resolves the identity from the store
func (s *AuthService) VerifyToken(ctx context.Context, tokenStr string) (*models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, apperr.Unauthorized(msgNotAuthorized)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthorized(msgNotAuthorized)
		}
		return nil, apperr.Internal(err)
	}
	return withoutPassword(user), nil
}

func (s *AuthService) RequireAdmin(identity *models.User) error {
	if !identity.IsAdmin() {
		return apperr.Forbidden(msgNotAdmin)
	}
	return nil
}

// PromoteToAdmin gives targetID the admin role. Acting on yourself is always forbidden.
func (s *AuthService) PromoteToAdmin(ctx context.Context, acting *models.User, targetID string) (*models.User, error) {
	if acting != nil && acting.ID == targetID {
		return nil, apperr.Forbidden(msgSelfPromotion)
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound(msgUserNotFound)
		}
		return nil, apperr.Internal(err)
	}
	if target.Role == models.RoleAdmin {
		return nil, apperr.AlreadyAdmin(msgAlreadyAdmin)
	}

	target.Role = models.RoleAdmin
	saved, err := s.users.Save(ctx, target)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return withoutPassword(saved), nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// EnsureAdmin creates an admin account, or promotes the account that already owns the email
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return withoutPassword(existing), nil
		}
		existing.Role = models.RoleAdmin
		saved, err := s.users.Save(ctx, existing)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		return withoutPassword(saved), nil
	case errors.Is(err, store.ErrNotFound):
		return s.Register(ctx, models.RegisterInput{
			Name:     name,
			Email:    email,
			Password: password,
			Role:     models.RoleAdmin,
		})
	default:
		return nil, apperr.Internal(err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func withoutPassword(u *models.User) *models.User {
	out := *u
	out.Password = ""
	return &out
}
