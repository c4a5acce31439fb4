package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/solarleads/internal/entity"
	"github.com/xavierca1/solarleads/internal/infra/queue"
	"github.com/xavierca1/solarleads/internal/usecase"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) ListAll(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

// MockMessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) ListByPhone(ctx context.Context, phone string) ([]*entity.Message, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Message), args.Error(1)
}

func (m *MockMessageRepository) Append(ctx context.Context, phone, body string, direction entity.Direction, status string) error {
	args := m.Called(ctx, phone, body, direction, status)
	return args.Error(0)
}

// MockRuleRepository
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) ListActiveFollowUpRules(ctx context.Context) ([]entity.FollowUpRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FollowUpRule), args.Error(1)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SendText(ctx context.Context, phone, text string) error {
	args := m.Called(ctx, phone, text)
	return args.Error(0)
}

// MockTextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string, opts usecase.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

// MockLocker
type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, leadID string) (func(), error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishFollowUpSent(ctx context.Context, event queue.FollowUpSentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockRecorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordPass(result usecase.PassResult) {
	m.Called(result)
}

func (m *MockRecorder) RecordDispatch(ruleID, outcome string) {
	m.Called(ruleID, outcome)
}
