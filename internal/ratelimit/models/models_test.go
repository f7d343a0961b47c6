package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassFor(t *testing.T) {
	assert.Equal(t, ClassRead, ClassFor(http.MethodGet))
	assert.Equal(t, ClassRead, ClassFor(http.MethodHead))
	assert.Equal(t, ClassWrite, ClassFor(http.MethodPost))
	assert.Equal(t, ClassWrite, ClassFor(http.MethodDelete))
	assert.Equal(t, "rl:write:uid-1", Key(ClassWrite, "uid-1"))
}
