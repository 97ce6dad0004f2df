package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ewei/budgetgroups-server/internal/apperrors"
)

func TestKindOf(t *testing.T) {
	err := apperrors.New(apperrors.NotFound, "group %s not found", "g1")
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
	assert.Equal(t, "group g1 not found", err.Error())

	assert.Equal(t, apperrors.Unknown, apperrors.KindOf(errors.New("plain")))
	assert.Equal(t, apperrors.Unknown, apperrors.KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := apperrors.New(apperrors.Conflict, "duplicate membership")
	outer := fmt.Errorf("while accepting: %w", inner)

	assert.True(t, apperrors.Is(outer, apperrors.Conflict))
	assert.False(t, apperrors.Is(outer, apperrors.NotFound))
}

func TestWrapNilCause(t *testing.T) {
	assert.NoError(t, apperrors.Wrap(apperrors.Upstream, nil, "query failed"))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperrors.Wrap(apperrors.Upstream, cause, "query failed")

	assert.True(t, apperrors.Is(err, apperrors.Upstream))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", apperrors.NotFound.String())
	assert.Equal(t, "EXPIRED", apperrors.Expired.String())
	assert.Equal(t, "UNKNOWN", apperrors.Unknown.String())
}
