package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/arloliu/serbench/internal/options"
	"github.com/arloliu/serbench/record"
)

// RecordCount is the fixed cardinality of a generated set.
const RecordCount = 1000

// SKUPrefix is the literal prefix of every stock-keeping code.
const SKUPrefix = "SKU"

// Field domains. Upper bounds are exclusive.
const (
	MinMeasure = 1.0
	MaxMeasure = 10.0
	MinRating  = 1.0
	MaxRating  = 5.0
	MinStock   = 1
	MaxStock   = 100
	MinSKU     = 10000
	MaxSKU     = 99999
	MinPrice   = 0.5
	MaxPrice   = 2500.0

	minSentences = 2
	maxSentences = 5 // exclusive
	minWords     = 8
	maxWords     = 14 // exclusive
)

// Config holds generator settings.
type Config struct {
	seed  int64
	clock func() time.Time
	count int
}

// Option configures a generator run.
type Option = options.Option[*Config]

// WithSeed seeds the random source. Zero keeps the default crypto-seeded source.
func WithSeed(seed int64) Option {
	return options.NoError(func(c *Config) {
		c.seed = seed
	})
}

// WithClock overrides the clock used for created/updated timestamps.
func WithClock(clock func() time.Time) Option {
	return options.New(func(c *Config) error {
		if clock == nil {
			return fmt.Errorf("generator: nil clock")
		}
		c.clock = clock

		return nil
	})
}

// withCount changes the set size. It is only reachable from tests in this package.
func withCount(n int) Option {
	return options.NoError(func(c *Config) {
		c.count = n
	})
}

// Generate builds a new record set of RecordCount records.
//
// A failure of the underlying random source is returned as an error; callers treat it
// as fatal since there is nothing to serve without data.
func Generate(opts ...Option) (record.Set, error) {
	cfg := &Config{
		clock: time.Now,
		count: RecordCount,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	faker := gofakeit.New(cfg.seed)
	set := make(record.Set, 0, cfg.count)

	for i := 0; i < cfg.count; i++ {
		rec, err := newRecord(faker, cfg.clock)
		if err != nil {
			return nil, fmt.Errorf("generate record %d: %w", i, err)
		}
		set = append(set, rec)
	}

	return set, nil
}

func newRecord(faker *gofakeit.Faker, clock func() time.Time) (record.Record, error) {
	rng := faker.Rand

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return record.Record{}, fmt.Errorf("read uuid: %w", err)
	}

	return record.Record{
		ID:          id,
		Name:        faker.BuzzWord(),
		Brand:       faker.Company(),
		SKU:         fmt.Sprintf("%s%d", SKUPrefix, intRange(rng, MinSKU, MaxSKU)),
		Description: description(faker),
		Price:       math.Floor(floatRange(rng, MinPrice, MaxPrice)*100) / 100,
		Weight:      floatRange(rng, MinMeasure, MaxMeasure),
		Dimensions: record.NewDimensions(
			floatRange(rng, MinMeasure, MaxMeasure),
			floatRange(rng, MinMeasure, MaxMeasure),
			floatRange(rng, MinMeasure, MaxMeasure),
		),
		Rating:        floatRange(rng, MinRating, MaxRating),
		StockQuantity: uint32(intRange(rng, MinStock, MaxStock)), //nolint:gosec
		Category:      record.Categories[rng.Intn(len(record.Categories))],
		CreatedAt:     clock().UTC(),
		UpdatedAt:     clock().UTC(),
		Currency:      record.Currencies[rng.Intn(len(record.Currencies))],
		Manufacturer:  faker.Company(),
	}, nil
}

// description returns a multi-sentence paragraph of a few dozen words.
func description(faker *gofakeit.Faker) string {
	sentences := intRange(faker.Rand, minSentences, maxSentences)
	words := intRange(faker.Rand, minWords, maxWords)

	return faker.Paragraph(1, sentences, words, "")
}

// floatRange draws uniformly from [lo, hi).
func floatRange(rng *rand.Rand, lo, hi float64) float64 {
	v := lo + rng.Float64()*(hi-lo)
	if v >= hi {
		// rounding can land exactly on hi
		v = math.Nextafter(hi, lo)
	}

	return v
}

// intRange draws uniformly from [lo, hi).
func intRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo)
}
