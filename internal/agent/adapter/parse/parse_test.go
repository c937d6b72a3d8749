package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlexLM(t *testing.T) {
	testCases := []struct {
		name        string
		feature     string
		output      string
		expected    FeatureUsage
		expectError bool
	}{
		{
			name:    "single users of line",
			feature: "standard",
			output: "lmutil - Copyright (c) 1989-2021\n" +
				"Users of standard:  (Total of 100 licenses issued;  Total of 37 licenses in use)\n",
			expected: FeatureUsage{Total: 100, Used: 37},
		},
		{
			name:        "missing users of line",
			feature:     "standard",
			output:      "lmutil - Copyright (c) 1989-2021\nFlexNet Licensing error\n",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			usage, err := FlexLM(tc.feature, []byte(tc.output))
			if tc.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, usage)
		})
	}
}

func TestLSDyna(t *testing.T) {
	output := "Feature mppdyna      issued:    100   in use:     37\n" +
		"Feature lsopt        issued:     10   in use:      2\n"

	table := LSDyna([]byte(output))

	assert.Equal(t, FeatureUsage{Total: 100, Used: 37}, table["mppdyna"])
	assert.Equal(t, FeatureUsage{Total: 10, Used: 2}, table["lsopt"])
	assert.Len(t, table, 2)
}

func TestRLM(t *testing.T) {
	output := "mppdyna v20.0, count: 100, # res: 0, inuse: 37\n"

	table := RLM([]byte(output))

	assert.Equal(t, FeatureUsage{Total: 100, Used: 37}, table["mppdyna"])
}

func TestLMX(t *testing.T) {
	output := "Feature mppdyna, amount 100, issued 37\n"

	table := LMX([]byte(output))

	assert.Equal(t, FeatureUsage{Total: 100, Used: 37}, table["mppdyna"])
}

func TestOLicense(t *testing.T) {
	output := "mppdyna: 100 total, 37 used\n"

	table := OLicense([]byte(output))

	assert.Equal(t, FeatureUsage{Total: 100, Used: 37}, table["mppdyna"])
}
