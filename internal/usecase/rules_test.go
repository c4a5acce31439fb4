package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/solarleads/internal/entity"
	"github.com/xavierca1/solarleads/internal/usecase"
)

func TestStaticRulesReturnsCopy(t *testing.T) {
	static := usecase.StaticRules(entity.DefaultFollowUpRules())

	rules, err := static.Rules(context.Background())
	require.NoError(t, err)
	rules[0].Message = "alterado"

	again, _ := static.Rules(context.Background())
	assert.NotEqual(t, "alterado", again[0].Message)
}

func TestDatabaseRulesRefetchesEveryPass(t *testing.T) {
	repo := new(MockRuleRepository)
	first := []entity.FollowUpRule{{ID: "a", Trigger: entity.TriggerNoResponse, DelayHours: 24, Message: "m"}}
	second := []entity.FollowUpRule{{ID: "b", Trigger: entity.TriggerColdLead, DelayHours: 168, Message: "n"}}
	repo.On("ListActiveFollowUpRules", mock.Anything).Return(first, nil).Once()
	repo.On("ListActiveFollowUpRules", mock.Anything).Return(second, nil).Once()

	provider := usecase.NewDatabaseRules(repo, nil, logrus.New())

	got, err := provider.Rules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].ID)

	got, err = provider.Rules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", got[0].ID)
	repo.AssertExpectations(t)
}

func TestDatabaseRulesFallsBackToLastGood(t *testing.T) {
	repo := new(MockRuleRepository)
	good := []entity.FollowUpRule{{ID: "a", Trigger: entity.TriggerNoResponse, DelayHours: 24, Message: "m"}}
	repo.On("ListActiveFollowUpRules", mock.Anything).Return(good, nil).Once()
	repo.On("ListActiveFollowUpRules", mock.Anything).Return(nil, errors.New("db down")).Once()

	provider := usecase.NewDatabaseRules(repo, usecase.StaticRules(entity.DefaultFollowUpRules()), logrus.New())

	_, _ = provider.Rules(context.Background())
	got, err := provider.Rules(context.Background())

	require.NoError(t, err)
	assert.Equal(t, good, got)
}

func TestDatabaseRulesFallsBackToStaticOnInvalidRules(t *testing.T) {
	repo := new(MockRuleRepository)
	invalid := []entity.FollowUpRule{{ID: "a", Trigger: entity.TriggerNoResponse, DelayHours: 0, Message: "m"}}
	repo.On("ListActiveFollowUpRules", mock.Anything).Return(invalid, nil)

	provider := usecase.NewDatabaseRules(repo, usecase.StaticRules(entity.DefaultFollowUpRules()), logrus.New())
	got, err := provider.Rules(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entity.DefaultFollowUpRules(), got)
}

func TestValidateFollowUpRules(t *testing.T) {
	rules := []entity.FollowUpRule{
		{ID: "a", Trigger: entity.TriggerNoResponse, DelayHours: 24, Message: "m"},
		{ID: "a", Trigger: entity.TriggerColdLead, DelayHours: 168, Message: "n"},
		{ID: "c", Trigger: entity.TriggerColdLead, DelayHours: -1, Message: "n"},
	}

	errs := usecase.ValidateFollowUpRules(rules)

	require.Len(t, errs, 2)
	assert.Equal(t, "rules[1]", errs[0].Field)
	assert.Equal(t, "rules[2]", errs[1].Field)
	assert.Empty(t, usecase.ValidateFollowUpRules(entity.DefaultFollowUpRules()))
}

func TestErrorCodes(t *testing.T) {
	wrapped := &usecase.TechnicalError{Code: usecase.CodeGatewaySendFailed, Message: "falha", Err: context.DeadlineExceeded}

	assert.True(t, usecase.IsTechnicalError(wrapped))
	assert.True(t, errors.Is(wrapped, context.DeadlineExceeded))
	assert.Equal(t, usecase.CodeGatewaySendFailed, usecase.ErrorCode(wrapped))
	assert.True(t, usecase.IsDomainError(usecase.ErrLeadLocked))
	assert.Equal(t, "UNKNOWN", usecase.ErrorCode(errors.New("x")))
}
