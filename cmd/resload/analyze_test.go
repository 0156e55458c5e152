package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYears_Range(t *testing.T) {
	years, err := parseYears("2012-2015")
	require.NoError(t, err)
	assert.Equal(t, []int{2012, 2013, 2014, 2015}, years)
}

func TestParseYears_SingleAndList(t *testing.T) {
	years, err := parseYears("2016")
	require.NoError(t, err)
	assert.Equal(t, []int{2016}, years)

	years, err = parseYears("2016, 2012,2014")
	require.NoError(t, err)
	assert.Equal(t, []int{2016, 2012, 2014}, years, "list order is preserved")
}

func TestParseYears_Invalid(t *testing.T) {
	for _, spec := range []string{"", "abc", "2015-2012", "2015-", "2012,,2014"} {
		_, err := parseYears(spec)
		assert.Error(t, err, spec)
	}
}
