package mocks

import "context"

// MockTransactor runs fn on the caller's context without a real transaction.
type MockTransactor struct {
	Calls int
}

func (m *MockTransactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}
