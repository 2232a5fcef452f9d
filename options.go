package woodpusher

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/discochess/woodpusher/internal/search"
	"github.com/discochess/woodpusher/internal/stats"
)

// Default configuration values.
const (
	DefaultSkillLevel = search.MaxSkill
	DefaultThreads    = 1
	DefaultHashSizeMB = 64
	DefaultDepth      = 6

	defaultCacheSize = 256
)

// Option configures a Session.
type Option interface {
	apply(*options)
}

// options holds the session configuration.
type options struct {
	skillLevel int
	threads    int
	hashSizeMB int
	seed       uint64
	cacheSize  int
	stats      stats.Collector
	logger     *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		skillLevel: DefaultSkillLevel,
		threads:    DefaultThreads,
		hashSizeMB: DefaultHashSizeMB,
		seed:       rand.Uint64(),
		cacheSize:  defaultCacheSize,
		stats:      stats.NewNoop(),
		logger:     zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithSkillLevel sets the playing strength, 0 (weakest) through 20
// (full strength). Out-of-range values are clamped.
func WithSkillLevel(level int) Option {
	return optionFunc(func(o *options) {
		if level < 0 {
			level = 0
		}
		if level > search.MaxSkill {
			level = search.MaxSkill
		}
		o.skillLevel = level
	})
}

// WithThreads sets the configured thread count. The search itself is
// single-threaded; the option is validated and stored for callers that
// drive the session like a conventional engine. Values below 1 are
// ignored.
func WithThreads(n int) Option {
	return optionFunc(func(o *options) {
		if n >= 1 {
			o.threads = n
		}
	})
}

// WithHashSizeMB sets the transposition table budget in mebibytes.
// Values below 1 are ignored.
func WithHashSizeMB(n int) Option {
	return optionFunc(func(o *options) {
		if n >= 1 {
			o.hashSizeMB = n
		}
	})
}

// WithSeed fixes the seed of the PRNG behind reduced-skill move
// selection, making degraded play reproducible. Without it each session
// seeds itself randomly.
func WithSeed(seed uint64) Option {
	return optionFunc(func(o *options) {
		o.seed = seed
	})
}

// WithResultCacheSize sets the capacity of the per-session best-move
// result cache. Values below 1 are ignored.
func WithResultCacheSize(n int) Option {
	return optionFunc(func(o *options) {
		if n >= 1 {
			o.cacheSize = n
		}
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}
