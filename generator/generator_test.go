package generator

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/serbench/record"
)

func TestGenerate_Cardinality(t *testing.T) {
	set, err := Generate()
	require.NoError(t, err)
	require.Len(t, set, RecordCount)
}

func TestGenerate_UniqueIDs(t *testing.T) {
	set, err := Generate()
	require.NoError(t, err)

	seen := make(map[uuid.UUID]struct{}, len(set))
	for _, rec := range set {
		_, dup := seen[rec.ID]
		require.False(t, dup, "duplicate id %s", rec.ID)
		seen[rec.ID] = struct{}{}
		require.Equal(t, uuid.Version(4), rec.ID.Version())
	}
}

func TestGenerate_FieldDomains(t *testing.T) {
	set, err := Generate()
	require.NoError(t, err)

	inRange := func(name string, v, lo, hi float64) {
		require.GreaterOrEqual(t, v, lo, name)
		require.Less(t, v, hi, name)
	}

	for _, rec := range set {
		inRange("rating", rec.Rating, MinRating, MaxRating)
		inRange("weight", rec.Weight, MinMeasure, MaxMeasure)
		inRange("length", rec.Dimensions.Length, MinMeasure, MaxMeasure)
		inRange("width", rec.Dimensions.Width, MinMeasure, MaxMeasure)
		inRange("height", rec.Dimensions.Height, MinMeasure, MaxMeasure)
		inRange("price", rec.Price, MinPrice, MaxPrice)

		require.GreaterOrEqual(t, rec.StockQuantity, uint32(MinStock))
		require.Less(t, rec.StockQuantity, uint32(MaxStock))

		require.True(t, rec.Category.IsValid(), "category %d", rec.Category)
		require.True(t, rec.Currency.IsValid(), "currency %d", rec.Currency)

		require.True(t, strings.HasPrefix(rec.SKU, SKUPrefix), rec.SKU)
		digits := strings.TrimPrefix(rec.SKU, SKUPrefix)
		require.Len(t, digits, 5)
		n, err := strconv.Atoi(digits)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, MinSKU)
		require.Less(t, n, MaxSKU)

		require.NotEmpty(t, rec.Name)
		require.NotEmpty(t, rec.Brand)
		require.NotEmpty(t, rec.Manufacturer)
		require.GreaterOrEqual(t, len(strings.Fields(rec.Description)), minSentences*minWords)

		require.False(t, rec.CreatedAt.IsZero())
		require.False(t, rec.UpdatedAt.Before(rec.CreatedAt))
	}
}

func TestGenerate_EnumerationsCovered(t *testing.T) {
	set, err := Generate(WithSeed(11))
	require.NoError(t, err)

	categories := make(map[record.Category]int)
	currencies := make(map[record.Currency]int)
	for _, rec := range set {
		categories[rec.Category]++
		currencies[rec.Currency]++
	}

	// 1000 uniform draws over 5 and 6 values reach every member
	require.Len(t, categories, len(record.Categories))
	require.Len(t, currencies, len(record.Currencies))
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fixed }

	a, err := Generate(WithSeed(42), WithClock(clock), withCount(25))
	require.NoError(t, err)
	b, err := Generate(WithSeed(42), WithClock(clock), withCount(25))
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := Generate(WithSeed(43), WithClock(clock), withCount(25))
	require.NoError(t, err)
	require.NotEqual(t, a[0].ID, c[0].ID)
}

func TestGenerate_UnseededDiffers(t *testing.T) {
	a, err := Generate(withCount(5))
	require.NoError(t, err)
	b, err := Generate(withCount(5))
	require.NoError(t, err)
	require.NotEqual(t, a[0].ID, b[0].ID)
}

func TestGenerate_NilClock(t *testing.T) {
	_, err := Generate(WithClock(nil))
	require.Error(t, err)
}

func TestGenerate_Empty(t *testing.T) {
	set, err := Generate(withCount(0))
	require.NoError(t, err)
	require.Empty(t, set)
}

func BenchmarkGenerate(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Generate(); err != nil {
			b.Fatal(err)
		}
	}
}
