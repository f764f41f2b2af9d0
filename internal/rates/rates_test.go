package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	table := Defaults()
	assert.Equal(t, 1.0, table["USD"])
	assert.Equal(t, 150.0, table["JPY"])
	assert.Len(t, table, 6)
}

func TestRateUnknownCurrencyDefaultsToOne(t *testing.T) {
	table := Defaults()
	assert.Equal(t, 1.0, table.Rate("CHF"))
	assert.Equal(t, 1.0, table.Rate(""))
}

func TestRateZeroIsReturnedAsIs(t *testing.T) {
	table := Table{"GBP": 0}
	assert.Equal(t, 0.0, table.Rate("GBP"))
}

func TestMergeOverwritesKnownKeysOnly(t *testing.T) {
	table := Defaults()
	table.Merge(map[string]float64{
		"JPY": 147.3,
		"GBP": 0.81,
		"CHF": 0.88, // not in the supported set
	})
	assert.Equal(t, 147.3, table["JPY"])
	assert.Equal(t, 0.81, table["GBP"])
	assert.Equal(t, 0.92, table["EUR"]) // untouched
	assert.NotContains(t, table, "CHF")
}
