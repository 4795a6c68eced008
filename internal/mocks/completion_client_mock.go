package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prompt-architect-server/internal/ai"
)

// Compile-time check
var _ ai.CompletionClient = (*MockCompletionClient)(nil)

// MockCompletionClient is a mock type for the ai.CompletionClient type
type MockCompletionClient struct {
	mock.Mock
}

func (_m *MockCompletionClient) Complete(ctx context.Context, req ai.Request) (string, ai.Usage, error) {
	ret := _m.Called(ctx, req)

	var r0 string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}

	var r1 ai.Usage
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(ai.Usage)
	}

	return r0, r1, ret.Error(2)
}

// NewMockCompletionClient creates a new mock and registers the test cleanup
// assertion.
func NewMockCompletionClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCompletionClient {
	m := &MockCompletionClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
