package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"store-locator-service/internal/domain"
	"store-locator-service/pkg/bloom"
)

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	byEmail     map[string]*domain.User
	emailChecks int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.ErrEmailExists
	}
	user.ID = "user-" + user.Email
	user.IsActive = true
	user.CreatedAt = time.Now().UTC()
	cp := *user
	f.byEmail[user.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.emailChecks++
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, int64, error) {
	out := make([]domain.User, 0, len(f.byEmail))
	for _, u := range f.byEmail {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.Password = hash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (f *fakeUserRepo) Deactivate(_ context.Context, id string) error {
	for email, u := range f.byEmail {
		if u.ID == id {
			delete(f.byEmail, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (f *fakeUserRepo) ListActiveEmails(_ context.Context) ([]string, error) {
	out := make([]string, 0, len(f.byEmail))
	for email := range f.byEmail {
		out = append(out, email)
	}
	return out, nil
}

// fakeEmailFilter scripts membership answers and records calls.
type fakeEmailFilter struct {
	contains bool
	adds     []string
	addErr   error
	batches  [][]string
}

func (f *fakeEmailFilter) Add(_ context.Context, email string) (bool, error) {
	f.adds = append(f.adds, email)
	return true, f.addErr
}

func (f *fakeEmailFilter) AddAll(_ context.Context, emails []string) error {
	f.batches = append(f.batches, emails)
	return nil
}

func (f *fakeEmailFilter) MightContain(_ context.Context, _ string) bool {
	return f.contains
}

func TestUserService_Register_FilterMissSkipsExistenceLookup(t *testing.T) {
	repo := newFakeUserRepo()
	filter := &fakeEmailFilter{contains: false}
	svc := NewUserService(repo, filter, zap.NewNop())

	user, err := svc.Register(context.Background(), "new@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, 0, repo.emailChecks, "a definitive filter miss needs no durable lookup")
	assert.Equal(t, []string{"new@example.com"}, filter.adds)
}

func TestUserService_Register_FilterHitVerifiesAgainstRepo(t *testing.T) {
	repo := newFakeUserRepo()
	filter := &fakeEmailFilter{contains: true}
	svc := NewUserService(repo, filter, zap.NewNop())

	// False positive: the filter claims the email but the repo disagrees
	user, err := svc.Register(context.Background(), "fresh@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 1, repo.emailChecks, "a filter hit must be confirmed durably")
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	filter := &fakeEmailFilter{contains: true}
	svc := NewUserService(repo, filter, zap.NewNop())

	_, err := svc.Register(context.Background(), "taken@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "taken@example.com", "password456")
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestUserService_Register_NormalizesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	filter := &fakeEmailFilter{}
	svc := NewUserService(repo, filter, zap.NewNop())

	user, err := svc.Register(context.Background(), "  Mixed.Case@Example.COM ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "mixed.case@example.com", user.Email)
	assert.Equal(t, []string{"mixed.case@example.com"}, filter.adds)
}

func TestUserService_Register_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, &fakeEmailFilter{}, zap.NewNop())

	user, err := svc.Register(context.Background(), "hash@example.com", "plaintext-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext-secret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("plaintext-secret")))
}

func TestUserService_Register_FilterAddFailureIsTolerated(t *testing.T) {
	repo := newFakeUserRepo()
	filter := &fakeEmailFilter{addErr: errors.New("redis down")}
	svc := NewUserService(repo, filter, zap.NewNop())

	user, err := svc.Register(context.Background(), "tolerant@example.com", "password123")
	require.NoError(t, err, "a failed filter add only costs a future lookup")
	assert.NotEmpty(t, user.ID)
}

func TestUserService_Register_WithRealFilter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	filter := bloom.New(client, "user:email:bloom", 10000, 0.001, zap.NewNop())
	require.NoError(t, filter.Init(context.Background()))

	repo := newFakeUserRepo()
	svc := NewUserService(repo, filter, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, "real@example.com", "password123")
	require.NoError(t, err)

	// The noisy spelling maps to the same filter entry, so the duplicate is
	// caught at the durable check after a filter hit
	_, err = svc.Register(ctx, "  REAL@example.com ", "password123")
	assert.ErrorIs(t, err, domain.ErrEmailExists)
	assert.GreaterOrEqual(t, repo.emailChecks, 1)
}

func TestUserService_WarmEmailFilter(t *testing.T) {
	repo := newFakeUserRepo()
	filter := &fakeEmailFilter{}
	svc := NewUserService(repo, filter, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@example.com", "password123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "b@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.WarmEmailFilter(ctx))
	require.Len(t, filter.batches, 1)
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, filter.batches[0])
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), &fakeEmailFilter{}, zap.NewNop())

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
