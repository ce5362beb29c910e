package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/model"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/testutil"
)

func TestNewFraudBlock(t *testing.T) {
	identity, err := valueobject.NewIdentityNumber(testutil.ValidIdentity)
	require.NoError(t, err)

	b, err := model.NewFraudBlock(identity, "Reported stolen", "admin-1")
	require.NoError(t, err)

	assert.Equal(t, model.BlockKindFraud, b.Kind())
	assert.True(t, b.BlocksSubmission())
	assert.False(t, b.BlockedAt().IsZero())

	_, err = model.NewFraudBlock(identity, " ", "admin-1")
	assert.Error(t, err)
	_, err = model.NewFraudBlock(valueobject.IdentityNumber{}, "Reported stolen", "admin-1")
	assert.Error(t, err)
}

func TestNewDuplicateAttempt(t *testing.T) {
	identity, err := valueobject.NewIdentityNumber(testutil.ValidIdentity)
	require.NoError(t, err)
	original, err := valueobject.NewTradeInNumber(10042)
	require.NoError(t, err)

	b := model.NewDuplicateAttempt(identity, original, "staff-2")

	assert.Equal(t, model.BlockKindDuplicateAttempt, b.Kind())
	assert.Equal(t, "TI-10042", b.ReferenceNumber())
	assert.Contains(t, b.Reason(), "TI-10042")
	assert.False(t, b.BlocksSubmission())
}

func TestParseBlockKind(t *testing.T) {
	k, err := model.ParseBlockKind("duplicate_attempt")
	require.NoError(t, err)
	assert.Equal(t, model.BlockKindDuplicateAttempt, k)

	_, err = model.ParseBlockKind("stolen")
	assert.Error(t, err)
}
