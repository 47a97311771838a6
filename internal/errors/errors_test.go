package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := Validation("rows below minimum")
	wrapped := Wrap(base, "loading source")

	assert.True(t, HasCode(wrapped, CodeValidation))
	assert.Equal(t, CodeValidation, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "loading source")
}

func TestWrap_UnknownErrorGetsInternalCode(t *testing.T) {
	wrapped := Wrap(fs.ErrPermission, "reading file")

	assert.Equal(t, CodeInternal, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, fs.ErrPermission), "cause should stay unwrappable")
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing happened"))
}

func TestHasCode(t *testing.T) {
	err := NotFoundf("source %s missing", "data.csv")

	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeValidation))
	assert.False(t, HasCode(nil, CodeNotFound))
	assert.False(t, HasCode(stderrors.New("plain"), CodeNotFound))
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{NotFoundf("x"), CodeNotFound},
		{UnsupportedFormat("x"), CodeUnsupportedFormat},
		{Validation("x"), CodeValidation},
		{Render("x", nil), CodeRender},
		{Collaborator("x", nil), CodeCollaborator},
		{ConfigInvalid("x"), CodeConfigInvalid},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, GetCode(tc.err))
	}
}
