package services_test

import (
	"context"
	"testing"
	"time"

	"food-catalog-api/apperr"
	"food-catalog-api/models"
	"food-catalog-api/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func register(t *testing.T, auth *services.AuthService, name, email string, role models.UserRole) *models.User {
	t.Helper()
	u, err := auth.Register(context.Background(), models.RegisterInput{
		Name: name, Email: email, Password: "password123", Role: role,
	})
	require.NoError(t, err)
	return u
}

func requireKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	require.Error(t, err)
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind, e.Error())
	return e
}

func TestRegisterStoresHashAndRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth, users := newAuth(t)

	u := register(t, auth, "Priya", "priya@example.com", "")
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Empty(t, u.Password)

	stored, err := users.FindByEmail(ctx, "priya@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))

	_, err = auth.Register(ctx, models.RegisterInput{Name: "Priya 2", Email: "Priya@Example.com ", Password: "password456"})
	e := requireKind(t, err, apperr.KindConflict)
	assert.Equal(t, "User already exists", e.Message)
}

func TestRegisterValidation(t *testing.T) {
	auth, users := newAuth(t)

	_, err := auth.Register(context.Background(), models.RegisterInput{Name: " ", Email: "bad", Password: "123"})
	e := requireKind(t, err, apperr.KindValidation)
	assert.Len(t, e.Fields, 3)

	all, err := users.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLoginAndVerifyToken(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(t)
	u := register(t, auth, "Arjun", "arjun@example.com", models.RoleUser)

	res, err := auth.Login(ctx, models.LoginInput{Email: "arjun@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.ID)
	assert.Equal(t, models.RoleUser, res.Role)
	require.NotEmpty(t, res.Token)

	identity, err := auth.VerifyToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, identity.ID)
	assert.Equal(t, "arjun@example.com", identity.Email)
	assert.Empty(t, identity.Password)
}

func TestLoginFailuresLookIdentical(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(t)
	register(t, auth, "Arjun", "arjun@example.com", models.RoleUser)

	_, wrongPassword := auth.Login(ctx, models.LoginInput{Email: "arjun@example.com", Password: "nope-nope"})
	_, unknownEmail := auth.Login(ctx, models.LoginInput{Email: "ghost@example.com", Password: "password123"})

	a := requireKind(t, wrongPassword, apperr.KindUnauthorized)
	b := requireKind(t, unknownEmail, apperr.KindUnauthorized)
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, "Invalid email or password", a.Message)
}

func TestTokenCarriesIDRoleAndThirtyDayExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	auth, _ := newAuth(t, services.WithClock(func() time.Time { return now }))
	u := register(t, auth, "Kiran", "kiran@example.com", models.RoleAdmin)

	token, err := auth.GenerateToken(u)
	require.NoError(t, err)

	claims := &services.Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return []byte(testSecret), nil },
		jwt.WithTimeFunc(func() time.Time { return now }))
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, now.Add(30*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestVerifyTokenRejects(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(t)
	u := register(t, auth, "Kiran", "kiran@example.com", models.RoleUser)

	expiredAuth, _ := newAuth(t, services.WithTokenTTL(-time.Hour))
	expired, err := expiredAuth.GenerateToken(u)
	require.NoError(t, err)

	otherSecret := services.NewAuthService(nil, "another-secret")
	forged, err := otherSecret.GenerateToken(u)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, services.Claims{UserID: u.ID, Role: models.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	ghost, err := auth.GenerateToken(&models.User{ID: "no-such-user", Role: models.RoleAdmin})
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":    expired,
		"bad secret": forged,
		"alg none":   none,
		"malformed":  "not.a.token",
		"empty":      "",
		"ghost user": ghost,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := auth.VerifyToken(ctx, token)
			e := requireKind(t, err, apperr.KindUnauthorized)
			assert.Equal(t, "Not authorized", e.Message)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	auth, _ := newAuth(t)
	assert.NoError(t, auth.RequireAdmin(&models.User{Role: models.RoleAdmin}))
	requireKind(t, auth.RequireAdmin(&models.User{Role: models.RoleUser}), apperr.KindForbidden)
	requireKind(t, auth.RequireAdmin(nil), apperr.KindForbidden)
}

func TestPromoteToAdmin(t *testing.T) {
	ctx := context.Background()
	auth, users := newAuth(t)
	admin := register(t, auth, "Admin", "admin@example.com", models.RoleAdmin)
	user := register(t, auth, "User", "user@example.com", models.RoleUser)

	promoted, err := auth.PromoteToAdmin(ctx, admin, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	stored, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, stored.Role)

	_, err = auth.PromoteToAdmin(ctx, admin, user.ID)
	e := requireKind(t, err, apperr.KindAlreadyAdmin)
	assert.Equal(t, "User is already an admin", e.Message)

	_, err = auth.PromoteToAdmin(ctx, admin, "missing-id")
	requireKind(t, err, apperr.KindNotFound)
}

func TestPromoteSelfIsAlwaysForbidden(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(t)
	admin := register(t, auth, "Admin", "admin@example.com", models.RoleAdmin)

	_, err := auth.PromoteToAdmin(ctx, admin, admin.ID)
	e := requireKind(t, err, apperr.KindForbidden)
	assert.Equal(t, "You cannot update your own role", e.Message)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuth(t)

	created, err := auth.EnsureAdmin(ctx, "Root", "root@example.com", "rootpass")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, created.Role)

	again, err := auth.EnsureAdmin(ctx, "Root", "root@example.com", "ignored")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	plain := register(t, auth, "Plain", "plain@example.com", models.RoleUser)
	promoted, err := auth.EnsureAdmin(ctx, "", "plain@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, plain.ID, promoted.ID)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	// promotion leaves the password hash alone
	_, err = auth.Login(ctx, models.LoginInput{Email: "plain@example.com", Password: "password123"})
	assert.NoError(t, err)
}

func TestListUsersHidesPasswords(t *testing.T) {
	auth, _ := newAuth(t)
	register(t, auth, "A", "a@example.com", models.RoleUser)
	register(t, auth, "B", "b@example.com", models.RoleAdmin)

	users, err := auth.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}
