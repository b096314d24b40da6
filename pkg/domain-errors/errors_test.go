package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCodeWalksTheChain(t *testing.T) {
	inner := New(CodeNotFound, "island handle")
	outer := Wrap(fmt.Errorf("lookup: %w", inner), CodeInternal, "migration step")

	assert.True(t, HasCode(outer, CodeInternal))
	assert.True(t, HasCode(outer, CodeNotFound))
	assert.False(t, HasCode(outer, CodeOverflow))
	assert.Equal(t, CodeInternal, CodeOf(outer))
	assert.True(t, Is(inner, CodeNotFound))
}

func TestPlainErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.False(t, HasCode(plain, CodeInternal))
	assert.Equal(t, CodeInternal, CodeOf(plain))
	assert.Nil(t, Wrap(nil, CodeInternal, "nothing"))
}

func TestMessages(t *testing.T) {
	cause := errors.New("eof")
	err := Wrap(cause, CodeInvalidInput, "decode snapshot")
	assert.Equal(t, "decode snapshot: eof", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "ordinal 7 out of range", Newf(CodeOutOfRange, "ordinal %d out of range", 7).Error())
}
