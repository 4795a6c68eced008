package video

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prompt-architect-server/internal/models"
)

var _ GenerationClient = (*MockGenerationClient)(nil)

// MockGenerationClient is a mock type for the GenerationClient type
type MockGenerationClient struct {
	mock.Mock
}

func (_m *MockGenerationClient) Submit(ctx context.Context, prompt string, aspectRatio models.AspectRatio) (Operation, error) {
	ret := _m.Called(ctx, prompt, aspectRatio)

	var r0 Operation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(Operation)
	}
	return r0, ret.Error(1)
}

func (_m *MockGenerationClient) Poll(ctx context.Context, op Operation) (Operation, error) {
	ret := _m.Called(ctx, op)

	var r0 Operation
	if rf, ok := ret.Get(0).(func(context.Context, Operation) Operation); ok {
		r0 = rf(ctx, op)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(Operation)
	}
	return r0, ret.Error(1)
}

func NewMockGenerationClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGenerationClient {
	m := &MockGenerationClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
