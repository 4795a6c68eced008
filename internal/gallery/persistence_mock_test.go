package gallery

import (
	"context"

	"github.com/stretchr/testify/mock"
)

var _ Persistence = (*MockPersistence)(nil)

// MockPersistence is a mock type for the Persistence type
type MockPersistence struct {
	mock.Mock
}

func (_m *MockPersistence) Load(ctx context.Context, key string) ([]byte, error) {
	ret := _m.Called(ctx, key)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func (_m *MockPersistence) Store(ctx context.Context, key string, data []byte) error {
	ret := _m.Called(ctx, key, data)
	return ret.Error(0)
}

func NewMockPersistence(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPersistence {
	m := &MockPersistence{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
