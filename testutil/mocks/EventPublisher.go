package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gelato-nft/gelato-staker/internal/types"
)

// EventPublisher is a mock of queue.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

// NewEventPublisher creates an EventPublisher mock whose expectations are
// asserted when the test finishes.
func NewEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *EventPublisher) PushStakingEvent(ctx context.Context, ev *types.StakingEvent) error {
	ret := m.Called(ctx, ev)
	return ret.Error(0)
}

func (m *EventPublisher) Shutdown() {
	m.Called()
}
