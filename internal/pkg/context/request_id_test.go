package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "rid-42")
	assert.Equal(t, "rid-42", GetRequestID(ctx))
	assert.Equal(t, "", GetRequestID(context.Background()))
	//nolint:staticcheck // nil context must not panic
	assert.Equal(t, "", GetRequestID(nil))
}
