// Package bloom implements a probabilistic membership filter backed by a
// Redis bitmap. Lookups have no false negatives and a bounded false-positive
// rate; the bit state lives entirely in Redis, so every instance sharing the
// client sees the same filter.
package bloom

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Filter tracks set membership in a Redis bitmap using k positions derived
// from double hashing. Items are lowercased and whitespace-trimmed before
// every add and check, so cosmetically different spellings of the same email
// map to the same entry.
type Filter struct {
	client *redis.Client
	logger *zap.Logger
	key    string
	bits   uint64
	hashes int
}

// New creates a filter sized for the given expected capacity and target
// false-positive rate. The standard sizing applies: m = -n·ln(p)/(ln2)²,
// k = (m/n)·ln2.
func New(client *redis.Client, key string, capacity int, falsePositiveRate float64, logger *zap.Logger) *Filter {
	if capacity < 1 {
		capacity = 1
	}
	if falsePositiveRate <= 0 || falsePositiveRate >= 1 {
		falsePositiveRate = 0.001
	}

	n := float64(capacity)
	m := math.Ceil(-n * math.Log(falsePositiveRate) / (math.Ln2 * math.Ln2))
	k := int(math.Round(m / n * math.Ln2))
	if k < 1 {
		k = 1
	}

	return &Filter{
		client: client,
		logger: logger,
		key:    key,
		bits:   uint64(m),
		hashes: k,
	}
}

// Init allocates the bitmap if it does not exist yet. Idempotent: when the
// key is already present the call is a no-op, so restarts never wipe the
// accumulated state.
func (f *Filter) Init(ctx context.Context) error {
	exists, err := f.client.Exists(ctx, f.key).Result()
	if err != nil {
		return fmt.Errorf("checking filter existence: %w", err)
	}
	if exists > 0 {
		f.logger.Debug("membership filter already exists", zap.String("key", f.key))
		return nil
	}

	// Touching the highest bit allocates the full bitmap up front.
	if err := f.client.SetBit(ctx, f.key, int64(f.bits-1), 0).Err(); err != nil {
		return fmt.Errorf("allocating filter bitmap: %w", err)
	}

	f.logger.Info("membership filter created",
		zap.String("key", f.key),
		zap.Uint64("bits", f.bits),
		zap.Int("hashes", f.hashes),
	)

	return nil
}

// Add records an item. Returns true when at least one of its bits was
// previously unset, i.e. the filter did not already claim the item. A false
// return reflects the filter's prior knowledge, not ground truth: false
// positives can make genuinely new items look already present.
func (f *Filter) Add(ctx context.Context, item string) (bool, error) {
	offsets := f.offsets(normalize(item))

	cmds := make([]*redis.IntCmd, len(offsets))
	_, err := f.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, off := range offsets {
			cmds[i] = pipe.SetBit(ctx, f.key, int64(off), 1)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("adding item to filter: %w", err)
	}

	for _, cmd := range cmds {
		if cmd.Val() == 0 {
			return true, nil
		}
	}

	return false, nil
}

// AddAll records a batch of items in one pipelined round-trip. Empty input is
// a true no-op with no store call.
func (f *Filter) AddAll(ctx context.Context, items []string) error {
	if len(items) == 0 {
		return nil
	}

	_, err := f.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, item := range items {
			for _, off := range f.offsets(normalize(item)) {
				pipe.SetBit(ctx, f.key, int64(off), 1)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("adding %d items to filter: %w", len(items), err)
	}

	f.logger.Debug("items added to membership filter",
		zap.String("key", f.key),
		zap.Int("count", len(items)),
	)

	return nil
}

// MightContain reports whether the item may have been added: a false result
// is definitive, a true result needs confirmation against the source of
// truth. On store errors it fails open to true: the cost of a wrong true is
// one extra durable lookup, while a wrong false would let a duplicate slip
// through.
func (f *Filter) MightContain(ctx context.Context, item string) bool {
	offsets := f.offsets(normalize(item))

	cmds := make([]*redis.IntCmd, len(offsets))
	_, err := f.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, off := range offsets {
			cmds[i] = pipe.GetBit(ctx, f.key, int64(off))
		}
		return nil
	})
	if err != nil {
		f.logger.Warn("membership check failed, assuming item might exist",
			zap.String("key", f.key),
			zap.Error(err),
		)
		return true
	}

	for _, cmd := range cmds {
		if cmd.Val() == 0 {
			return false
		}
	}

	return true
}

// Reset deletes the bitmap and reallocates it empty. The caller is
// responsible for repopulating from the source of truth afterward.
func (f *Filter) Reset(ctx context.Context) error {
	if err := f.client.Del(ctx, f.key).Err(); err != nil {
		return fmt.Errorf("deleting filter bitmap: %w", err)
	}

	return f.Init(ctx)
}

// offsets derives the k bit positions for an item via Kirsch-Mitzenmacher
// double hashing: g_i = h1 + i·h2 mod m.
func (f *Filter) offsets(item string) []uint64 {
	h1 := xxhash.Sum64String(item)
	h2 := xxhash.Sum64String(item + "\x00")
	if h2 == 0 {
		h2 = 0x9e3779b97f4a7c15
	}

	out := make([]uint64, f.hashes)
	for i := range out {
		out[i] = (h1 + uint64(i)*h2) % f.bits
	}

	return out
}

func normalize(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}
