package perfharness

import "github.com/stretchr/testify/mock"

// MockCounters is a mock of Counters interface
type MockCounters struct {
	mock.Mock
}

func NewMockCounters(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCounters {
	m := &MockCounters{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCounters) Reset() error {
	return m.Called().Error(0)
}

func (m *MockCounters) Enable() error {
	return m.Called().Error(0)
}

func (m *MockCounters) Disable() error {
	return m.Called().Error(0)
}

func (m *MockCounters) Read() ([]uint64, error) {
	args := m.Called()
	var counts []uint64
	if v := args.Get(0); v != nil {
		counts = v.([]uint64)
	}
	return counts, args.Error(1)
}
