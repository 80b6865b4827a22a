package tickcount

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func skipWithoutRdtscp(t *testing.T) {
	if err := Check(); err != nil {
		t.Skip(err)
	}
}

func TestCheck(t *testing.T) {
	err := Check()
	if err != nil {
		assert.True(t, errors.Is(err, ErrCapabilityUnavailable))
	}
}

func TestTickCount(t *testing.T) {
	assertT := assert.New(t)
	skipWithoutRdtscp(t)

	tc1 := TickCount()
	assertT.Greater(tc1, uint64(0))
	tc2 := TickCount()
	assertT.GreaterOrEqual(tc2, tc1)
}

func TestTickCountBracketsWork(t *testing.T) {
	assertT := assert.New(t)
	skipWithoutRdtscp(t)

	sum := 0
	tc1 := TickCount()
	for i := 0; i < 10000; i++ {
		sum += i
	}
	tc2 := TickCount()

	assertT.Equal(49995000, sum)
	assertT.Greater(tc2-tc1, TickCountOverhead())
}

func TestTickCountOverhead(t *testing.T) {
	skipWithoutRdtscp(t)

	assert.Less(t, TickCountOverhead(), uint64(100000))
}

func TestCPUName(t *testing.T) {
	assert.NotEmpty(t, CPUName())
}
