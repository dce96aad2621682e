package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	require.True(t, As(err, &appErr))
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())
	assert.Equal(t, origErr, Unwrap(wrappedErr))

	assert.Equal(t, "formatted wrapper: original error", Wrapf(origErr, "formatted %s", "wrapper").Error())

	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	origErr := fmt.Errorf("permission denied")
	fileErr := NewFileError("Failed to read post file", "/posts/a.md", FileReadFailed, origErr)
	assert.Equal(t, "Failed to read post file: /posts/a.md: permission denied", fileErr.Error())
	assert.Equal(t, "/posts/a.md", fileErr.Path())
	assert.Equal(t, origErr, Unwrap(fileErr))
	assert.Equal(t, "Failed to read post file", fileErr.Message())

	assert.Equal(t, "file not found", ErrFileNotFound.Error())
	assert.True(t, IsFileNotFound(NewFileError("gone", "/missing", FileNotFound, nil)))
	assert.False(t, IsFileNotFound(fileErr))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "popup_timeout", InvalidConfig, nil)
	assert.Equal(t, "invalid value: popup_timeout", configErr.Error())
	assert.Equal(t, "popup_timeout", configErr.Param())
	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsConfigNotFound(configErr))

	missing := NewConfigError("Failed to read posts directory", "/data/posts", ConfigNotFound, fmt.Errorf("no such file"))
	assert.Equal(t, "Failed to read posts directory: /data/posts: no such file", missing.Error())
	assert.True(t, IsConfigNotFound(Wrap(missing, "configure blog")))

	assert.Equal(t, "invalid configuration", ErrInvalidConfig.Error())
	assert.False(t, IsInvalidConfig(New("some other error")))
}

func TestAuthError(t *testing.T) {
	authErr := NewAuthError("login refused", "http://localhost:8080/api/auth/login", AuthRejected, nil).WithStatus(401)
	assert.Equal(t, 401, authErr.Status())
	assert.Equal(t, "http://localhost:8080/api/auth/login", authErr.Endpoint())
	assert.True(t, IsAuthRejected(authErr))

	transport := NewAuthError("request failed", "http://x", AuthTransport, fmt.Errorf("dial tcp: refused"))
	assert.Equal(t, "request failed: dial tcp: refused", transport.Error())
	assert.False(t, IsAuthRejected(transport))
	assert.Equal(t, 0, transport.Status())
}
