package icons

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKind(t *testing.T) {
	err := errorf(KindData, "assemble", "duplicate id %q", "skin-7")

	assert.True(t, IsKind(err, KindData))
	assert.False(t, IsKind(err, KindFetch))
	assert.False(t, IsKind(nil, KindData))
	assert.False(t, IsKind(errors.New("plain"), KindData))
}

func TestIsKind_Wrapped(t *testing.T) {
	inner := newError(KindPackaging, "webdir", errors.New("permission denied"))
	wrapped := fmt.Errorf("run failed: %w", inner)

	assert.True(t, IsKind(wrapped, KindPackaging))
}

func TestError_Message(t *testing.T) {
	err := newError(KindFetch, "fingerprint", errors.New("resource not found"))

	assert.Equal(t, "fingerprint: resource not found", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "resource not found")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "config", KindConfig.String())
	assert.Equal(t, "data", KindData.String())
	assert.Equal(t, "fetch", KindFetch.String())
	assert.Equal(t, "packaging", KindPackaging.String())
}
