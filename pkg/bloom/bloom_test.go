package bloom

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testFilterKey = "user:email:bloom"

func setupTestFilter(t *testing.T, capacity int, rate float64) (*Filter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := New(client, testFilterKey, capacity, rate, zap.NewNop())
	require.NoError(t, f.Init(context.Background()))

	return f, mr
}

func TestFilter_New_Sizing(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer func() { _ = client.Close() }()

	f := New(client, testFilterKey, 10000, 0.001, zap.NewNop())

	// m = -n ln(p) / (ln 2)^2, k = (m/n) ln 2
	assert.InDelta(t, 143776, int(f.bits), 10)
	assert.Equal(t, 10, f.hashes)
}

func TestFilter_New_ClampsBadInput(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer func() { _ = client.Close() }()

	f := New(client, testFilterKey, 0, 1.5, zap.NewNop())

	assert.GreaterOrEqual(t, f.hashes, 1)
	assert.Greater(t, f.bits, uint64(0))
}

func TestFilter_Init_Idempotent(t *testing.T) {
	f, _ := setupTestFilter(t, 1000, 0.01)
	ctx := context.Background()

	added, err := f.Add(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, added)

	// Re-init must not wipe existing state
	require.NoError(t, f.Init(ctx))
	assert.True(t, f.MightContain(ctx, "alice@example.com"))
}

func TestFilter_NoFalseNegatives(t *testing.T) {
	f, _ := setupTestFilter(t, 1000, 0.01)
	ctx := context.Background()

	emails := make([]string, 200)
	for i := range emails {
		emails[i] = fmt.Sprintf("user%d@example.com", i)
	}
	require.NoError(t, f.AddAll(ctx, emails))

	// Every added item must be reported as possibly present
	for _, email := range emails {
		assert.True(t, f.MightContain(ctx, email), "added email %s must never be a miss", email)
	}
}

func TestFilter_FalsePositiveRateBounded(t *testing.T) {
	f, _ := setupTestFilter(t, 1000, 0.01)
	ctx := context.Background()

	added := make([]string, 1000)
	for i := range added {
		added[i] = fmt.Sprintf("member%d@example.com", i)
	}
	require.NoError(t, f.AddAll(ctx, added))

	// Probe with a disjoint set; the observed rate should stay in the same
	// order of magnitude as the configured 1%.
	falsePositives := 0
	const probes = 1000
	for i := 0; i < probes; i++ {
		if f.MightContain(ctx, fmt.Sprintf("stranger%d@other.org", i)) {
			falsePositives++
		}
	}

	assert.Less(t, falsePositives, probes/20, "false positive rate far above configured bound")
}

func TestFilter_Add_ReportsNewVsSeen(t *testing.T) {
	f, _ := setupTestFilter(t, 1000, 0.01)
	ctx := context.Background()

	added, err := f.Add(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, added, "first add should report new")

	added, err = f.Add(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, added, "second add should report already present")
}

func TestFilter_Normalization(t *testing.T) {
	f, _ := setupTestFilter(t, 1000, 0.01)
	ctx := context.Background()

	_, err := f.Add(ctx, "  Carol@Example.COM ")
	require.NoError(t, err)

	assert.True(t, f.MightContain(ctx, "carol@example.com"))
	assert.True(t, f.MightContain(ctx, "CAROL@EXAMPLE.COM"))
}

func TestFilter_AddAll_EmptyIsNoOp(t *testing.T) {
	f, mr := setupTestFilter(t, 1000, 0.01)
	ctx := context.Background()

	require.NoError(t, f.AddAll(ctx, nil))
	require.NoError(t, f.AddAll(ctx, []string{}))

	// The bitmap exists from Init but holds no set bits beyond allocation
	_ = mr
	assert.False(t, f.MightContain(ctx, "anyone@example.com"))
}

func TestFilter_MightContain_UnknownIsMiss(t *testing.T) {
	f, _ := setupTestFilter(t, 1000, 0.01)
	ctx := context.Background()

	assert.False(t, f.MightContain(ctx, "nobody@example.com"))
}

func TestFilter_MightContain_FailsOpenOnStoreError(t *testing.T) {
	f, mr := setupTestFilter(t, 1000, 0.01)
	ctx := context.Background()

	mr.Close()

	// With the store down the filter must err on the side of "might exist"
	assert.True(t, f.MightContain(ctx, "whoever@example.com"))
}

func TestFilter_Reset(t *testing.T) {
	f, _ := setupTestFilter(t, 1000, 0.01)
	ctx := context.Background()

	_, err := f.Add(ctx, "dave@example.com")
	require.NoError(t, err)
	require.True(t, f.MightContain(ctx, "dave@example.com"))

	require.NoError(t, f.Reset(ctx))

	assert.False(t, f.MightContain(ctx, "dave@example.com"))
}

func TestFilter_OffsetsWithinBounds(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer func() { _ = client.Close() }()

	f := New(client, testFilterKey, 10000, 0.001, zap.NewNop())

	for _, item := range []string{"", "a", "user@example.com", "\x00\x00"} {
		for _, off := range f.offsets(item) {
			assert.Less(t, off, f.bits)
		}
	}
}
