package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"store-locator-service/internal/domain"
	rediscache "store-locator-service/internal/infra/redis"
	"store-locator-service/pkg/locker"
)

// fakeStoreRepo is an in-memory StoreRepository with a search call counter.
type fakeStoreRepo struct {
	stores   map[string]*domain.Store
	hits     []domain.StoreWithDistance
	total    int64
	searches int
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: make(map[string]*domain.Store)}
}

func (f *fakeStoreRepo) Create(_ context.Context, store *domain.Store) error {
	if store.ID == "" {
		store.ID = "store-" + store.Name
	}
	store.CreatedAt = time.Now().UTC()
	store.UpdatedAt = store.CreatedAt
	cp := *store
	f.stores[store.ID] = &cp
	return nil
}

func (f *fakeStoreRepo) GetByID(_ context.Context, id string) (*domain.Store, error) {
	s, ok := f.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStoreRepo) Update(_ context.Context, store *domain.Store) error {
	if _, ok := f.stores[store.ID]; !ok {
		return domain.ErrStoreNotFound
	}
	cp := *store
	cp.UpdatedAt = time.Now().UTC()
	f.stores[store.ID] = &cp
	return nil
}

func (f *fakeStoreRepo) Deactivate(_ context.Context, id string) error {
	if _, ok := f.stores[id]; !ok {
		return domain.ErrStoreNotFound
	}
	delete(f.stores, id)
	return nil
}

func (f *fakeStoreRepo) List(_ context.Context, _, _ int) ([]domain.Store, int64, error) {
	out := make([]domain.Store, 0, len(f.stores))
	for _, s := range f.stores {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStoreRepo) SearchByRadius(_ context.Context, _ domain.SearchStoresParams) ([]domain.StoreWithDistance, int64, error) {
	f.searches++
	return f.hits, f.total, nil
}

func setupStoreService(t *testing.T, repo *fakeStoreRepo) (*StoreService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := rediscache.NewCache(client, zap.NewNop(), "test")
	svc := NewStoreService(repo, nil, cache, 5*time.Minute, zap.NewNop())

	return svc, mr
}

func searchParams() domain.SearchStoresParams {
	return domain.SearchStoresParams{
		Latitude:  40.986106,
		Longitude: 29.025252,
		RadiusKm:  5,
		PageIndex: 1,
		PageSize:  10,
	}
}

func TestStoreService_Search_CachesResult(t *testing.T) {
	repo := newFakeStoreRepo()
	repo.hits = []domain.StoreWithDistance{
		{Store: domain.Store{ID: "s1", Name: "Corner Cafe"}, DistanceMeters: 120.5},
	}
	repo.total = 1
	svc, _ := setupStoreService(t, repo)
	ctx := context.Background()

	result, err := svc.Search(ctx, searchParams())
	require.NoError(t, err)
	require.Len(t, result.Stores, 1)
	assert.Equal(t, 1, repo.searches)

	// Identical query is served from cache
	result, err = svc.Search(ctx, searchParams())
	require.NoError(t, err)
	require.Len(t, result.Stores, 1)
	assert.Equal(t, "s1", result.Stores[0].ID)
	assert.Equal(t, 120.5, result.Stores[0].DistanceMeters)
	assert.Equal(t, 1, repo.searches, "repeat query must not hit the repository")
}

func TestStoreService_Search_EmptyResultIsCachedToo(t *testing.T) {
	repo := newFakeStoreRepo()
	svc, _ := setupStoreService(t, repo)
	ctx := context.Background()

	result, err := svc.Search(ctx, searchParams())
	require.NoError(t, err)
	assert.NotNil(t, result.Stores)
	assert.Empty(t, result.Stores)
	assert.Equal(t, 1, repo.searches)

	_, err = svc.Search(ctx, searchParams())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.searches, "a zero-hit query repeats as a cache hit")
}

func TestStoreService_Search_ParamChangesMiss(t *testing.T) {
	repo := newFakeStoreRepo()
	svc, _ := setupStoreService(t, repo)
	ctx := context.Background()

	_, err := svc.Search(ctx, searchParams())
	require.NoError(t, err)

	variants := []func(*domain.SearchStoresParams){
		func(p *domain.SearchStoresParams) { p.Latitude += 0.00001 },
		func(p *domain.SearchStoresParams) { p.RadiusKm = 10 },
		func(p *domain.SearchStoresParams) { p.Name = "cafe" },
		func(p *domain.SearchStoresParams) { p.Type = domain.StoreTypeCafe },
		func(p *domain.SearchStoresParams) { p.PageIndex = 2 },
		func(p *domain.SearchStoresParams) { p.PageSize = 20 },
	}

	for i, mutate := range variants {
		p := searchParams()
		mutate(&p)
		_, err := svc.Search(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, i+2, repo.searches, "changed parameters must produce a distinct cache key")
	}
}

func TestStoreService_Search_CoordinateNoiseBeyondSixDecimalsCollides(t *testing.T) {
	repo := newFakeStoreRepo()
	svc, _ := setupStoreService(t, repo)
	ctx := context.Background()

	p1 := searchParams()
	p1.Latitude = 40.1234561111
	_, err := svc.Search(ctx, p1)
	require.NoError(t, err)

	p2 := searchParams()
	p2.Latitude = 40.1234563333
	_, err = svc.Search(ctx, p2)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.searches, "sub-centimeter coordinate noise should share a cache entry")
}

func TestStoreService_Search_CacheDownFallsBackToRepo(t *testing.T) {
	repo := newFakeStoreRepo()
	svc, mr := setupStoreService(t, repo)
	ctx := context.Background()

	mr.Close()

	_, err := svc.Search(ctx, searchParams())
	require.NoError(t, err, "cache outage must not fail the search")
	assert.Equal(t, 1, repo.searches)

	_, err = svc.Search(ctx, searchParams())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.searches)
}

func TestStoreService_Search_NilCacheDisablesCaching(t *testing.T) {
	repo := newFakeStoreRepo()
	svc := NewStoreService(repo, nil, nil, 5*time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Search(ctx, searchParams())
	require.NoError(t, err)
	_, err = svc.Search(ctx, searchParams())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.searches)
}

func TestStoreService_Search_ClampsParams(t *testing.T) {
	repo := newFakeStoreRepo()
	svc, _ := setupStoreService(t, repo)

	p := domain.SearchStoresParams{Latitude: 40, Longitude: 29, RadiusKm: -3, PageIndex: 0, PageSize: 1000}
	result, err := svc.Search(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 5.0, result.RadiusKm)
	assert.Equal(t, 1, result.PageIndex)
	assert.Equal(t, 100, result.PageSize)
}

func TestStoreService_SearchFromUserLocation(t *testing.T) {
	locRepo := newFakeLocationRepo()
	locRepo.locations["u1"] = &domain.UserLocation{UserID: "u1", Latitude: 40.5, Longitude: 29.5, UpdatedAt: time.Now().UTC()}

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zap.NewNop()
	cache := rediscache.NewCache(client, logger, "test")
	locSvc := NewLocationService(locRepo, cache, locker.NewRedisLocker(client, logger), 5*time.Minute, locker.DefaultOptions(), logger)

	repo := newFakeStoreRepo()
	svc := NewStoreService(repo, locSvc, cache, 5*time.Minute, logger)

	params := domain.SearchStoresParams{RadiusKm: 2, PageIndex: 1, PageSize: 10}
	result, err := svc.SearchFromUserLocation(context.Background(), "u1", params)
	require.NoError(t, err)
	assert.Equal(t, 40.5, result.CenterLatitude)
	assert.Equal(t, 29.5, result.CenterLongitude)

	// Unknown user surfaces the location error unchanged
	_, err = svc.SearchFromUserLocation(context.Background(), "nobody", params)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestStoreService_GetByID_NotFound(t *testing.T) {
	repo := newFakeStoreRepo()
	svc, _ := setupStoreService(t, repo)

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

func TestSearchFingerprint_Format(t *testing.T) {
	p := domain.SearchStoresParams{
		Latitude:  40.986106,
		Longitude: 29.025252,
		RadiusKm:  5,
		Name:      "cafe",
		Type:      domain.StoreTypeCafe,
		PageIndex: 2,
		PageSize:  25,
	}

	key := searchFingerprint(p)
	assert.Equal(t, "stores:search:lat:40.986106|lng:29.025252|r:5|n:cafe|t:cafe|pi:2|ps:25", key)
}
