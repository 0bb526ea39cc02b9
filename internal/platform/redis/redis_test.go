package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arenax-backend/internal/platform/redis"
)

func TestOpenRejectsEmptyAddr(t *testing.T) {
	client, err := redis.Open(context.Background(), redis.Config{})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "no address configured")
}
