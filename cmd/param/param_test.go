package param

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParams(t *testing.T) {
	assertT := assert.New(t)

	testCases := []struct {
		name       string
		args       []string
		expParams  Params
		shouldFail bool
	}{
		{
			name:      "Defaults",
			args:      []string{"/bin/perfbench"},
			expParams: Params{Iterations: 1000, Core: 3, Workload: "primes"},
		},
		{
			name:      "Iterations",
			args:      []string{"perfbench", "20"},
			expParams: Params{Iterations: 20, Core: 3, Workload: "primes"},
		},
		{
			name:      "Zero iterations",
			args:      []string{"perfbench", "0"},
			expParams: Params{Iterations: 0, Core: 3, Workload: "primes"},
		},
		{
			name:      "All flags",
			args:      []string{"perfbench", "-core=1", "-workload", "argon2", "-limit=3", "-cpu-usage", "5"},
			expParams: Params{Iterations: 5, Core: 1, Workload: "argon2", Limit: 3, CpuUsage: true},
		},
		{
			name:       "Not a number",
			args:       []string{"perfbench", "abc"},
			shouldFail: true,
		},
		{
			name:       "Negative",
			args:       []string{"perfbench", "-5"},
			shouldFail: true,
		},
		{
			name:       "Signed",
			args:       []string{"perfbench", "+5"},
			shouldFail: true,
		},
		{
			name:       "Too large",
			args:       []string{"perfbench", "18446744073709551616"},
			shouldFail: true,
		},
		{
			name:       "Extra",
			args:       []string{"perfbench", "1", "2"},
			shouldFail: true,
		},
		{
			name:       "Wrong flag",
			args:       []string{"perfbench", "-foo"},
			shouldFail: true,
		},
		{
			name:       "Wrong flag value",
			args:       []string{"perfbench", "-core=x"},
			shouldFail: true,
		},
	}

	for _, tc := range testCases {
		params, err := ParseParams(tc.args, func() {})

		if tc.shouldFail {
			assertT.ErrorIs(err, ErrMalformedArgument, "In test", tc.name)
			assertT.Nil(params, "In test", tc.name)
			continue
		}

		assertT.NoError(err, "In test", tc.name)
		assertT.Equal(tc.expParams, *params, "In test", tc.name)
	}
}

func TestParseParamsHelp(t *testing.T) {
	usageCalls := 0
	_, err := ParseParams([]string{"perfbench", "-h"}, func() { usageCalls++ })

	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Equal(t, 1, usageCalls)
}
