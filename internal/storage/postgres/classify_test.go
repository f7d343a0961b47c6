package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"frontier/pkg/platform/sentinel"
)

func TestClassify(t *testing.T) {
	t.Run("connection failure is unavailable", func(t *testing.T) {
		err := classify(&pq.Error{Code: "08006"})
		assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
	})

	t.Run("admin shutdown is unavailable", func(t *testing.T) {
		err := classify(&pq.Error{Code: "57P01"})
		assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
	})

	t.Run("syntax error passes through", func(t *testing.T) {
		err := classify(&pq.Error{Code: "42601"})
		assert.False(t, errors.Is(err, sentinel.ErrUnavailable))
	})

	t.Run("deadline is unavailable", func(t *testing.T) {
		err := classify(context.DeadlineExceeded)
		assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
	})
}
