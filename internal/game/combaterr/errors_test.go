package combaterr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := combaterr.New(combaterr.KindNoSpellSlots, "level %d exhausted", 2)
	assert.True(t, errors.Is(err, combaterr.ErrNoSpellSlots))
	assert.False(t, errors.Is(err, combaterr.ErrAbilityExhausted))
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("casting: %w", combaterr.New(combaterr.KindSessionBusy, "in flight"))
	assert.True(t, errors.Is(err, combaterr.ErrSessionBusy))
	assert.Equal(t, combaterr.KindSessionBusy, combaterr.KindOf(err))
}

func TestError_MessageFormat(t *testing.T) {
	err := combaterr.New(combaterr.KindAbilityExhausted, "rage has no uses left")
	assert.Equal(t, "ability_exhausted: rage has no uses left", err.Error())
	assert.Equal(t, "session_terminated", combaterr.ErrSessionTerminated.Error())
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("bad json")
	err := combaterr.Wrap(combaterr.KindInvalidSnapshot, cause, "decoding snapshot")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "bad json")
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, combaterr.KindNone, combaterr.KindOf(errors.New("plain")))
	assert.Equal(t, combaterr.KindNone, combaterr.KindOf(nil))
}

func TestWithMeta(t *testing.T) {
	err := combaterr.New(combaterr.KindNoSpellSlots, "x").WithMeta("level", 3)
	assert.Equal(t, 3, err.Meta["level"])
}
