package file_test

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/costcache/pkg/file"
)

// MockRedisClient is a mock implementation of the RedisClient interface
type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) HExists(ctx context.Context, key, field string) *redis.BoolCmd {
	args := m.Called(ctx, key, field)
	return redis.NewBoolResult(args.Bool(0), args.Error(1))
}

func (m *MockRedisClient) HGet(ctx context.Context, key, field string) *redis.StringCmd {
	args := m.Called(ctx, key, field)
	return redis.NewStringResult(args.String(0), args.Error(1))
}

func (m *MockRedisClient) HSetNX(ctx context.Context, key, field string, value any) *redis.BoolCmd {
	args := m.Called(ctx, key, field, value)
	return redis.NewBoolResult(args.Bool(0), args.Error(1))
}

func (m *MockRedisClient) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	args := m.Called(ctx, key)
	var val map[string]string
	if v := args.Get(0); v != nil {
		val = v.(map[string]string)
	}
	return redis.NewMapStringStringResult(val, args.Error(1))
}

func (m *MockRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	args := m.Called(ctx)
	return redis.NewStatusResult(args.String(0), args.Error(1))
}

func TestNewRedisStorage(t *testing.T) {
	t.Parallel()

	s, err := file.NewRedisStorage(nil)
	assert.ErrorIs(t, err, file.ErrInvalidConfig)
	assert.Nil(t, s)
}

func TestRedisStorage_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("new file", func(t *testing.T) {
		t.Parallel()
		client := new(MockRedisClient)
		client.On("HSetNX", mock.Anything, "sim:files", "a", "10").Return(true, nil)

		s, err := file.NewRedisStorage(client, file.WithRedisKeyPrefix("sim"))
		require.NoError(t, err)

		f, err := s.Create(ctx, "a", 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), f.SizeKiB)
		assert.Equal(t, "sim:files/a", f.Location)
		client.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()
		client := new(MockRedisClient)
		client.On("HSetNX", mock.Anything, "costcache:files", "a", "3").Return(false, nil)

		s, err := file.NewRedisStorage(client)
		require.NoError(t, err)

		_, err = s.Create(ctx, "a", 3)
		assert.ErrorIs(t, err, file.ErrFileExists)
	})

	t.Run("connection error", func(t *testing.T) {
		t.Parallel()
		client := new(MockRedisClient)
		client.On("HSetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))

		s, err := file.NewRedisStorage(client)
		require.NoError(t, err)

		_, err = s.Create(ctx, "a", 3)
		assert.ErrorIs(t, err, file.ErrFailedToCreateFile)
	})
}

func TestRedisStorage_CreateOutOfRange(t *testing.T) {
	t.Parallel()

	client := new(MockRedisClient)
	s, err := file.NewRedisStorage(client)
	require.NoError(t, err)

	_, err = s.Create(context.Background(), "huge", file.MaxSizeKiB+1)
	assert.ErrorIs(t, err, file.ErrInvalidSize)
	client.AssertNotCalled(t, "HSetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRedisStorage_SizeKiB(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := new(MockRedisClient)
	client.On("HGet", mock.Anything, "costcache:files", "a").Return("12", nil)
	client.On("HGet", mock.Anything, "costcache:files", "missing").Return("", redis.Nil)
	client.On("HGet", mock.Anything, "costcache:files", "bad").Return("twelve", nil)
	client.On("HExists", mock.Anything, "costcache:files", "a").Return(true, nil)
	client.On("HExists", mock.Anything, "costcache:files", "missing").Return(false, nil)

	s, err := file.NewRedisStorage(client)
	require.NoError(t, err)

	size, err := s.SizeKiB(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(12), size)

	_, err = s.SizeKiB(ctx, "missing")
	assert.ErrorIs(t, err, file.ErrFileNotFound)

	_, err = s.SizeKiB(ctx, "bad")
	assert.ErrorIs(t, err, file.ErrInvalidSize)

	assert.True(t, s.Exists(ctx, "a"))
	assert.False(t, s.Exists(ctx, "missing"))
}

func TestRedisStorage_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := new(MockRedisClient)
	client.On("HGetAll", mock.Anything, "costcache:files").Return(map[string]string{
		"b":       "2",
		"a":       "1",
		"corrupt": "x",
	}, nil)

	s, err := file.NewRedisStorage(client)
	require.NoError(t, err)

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []file.Entry{{ID: "a", SizeKiB: 1}, {ID: "b", SizeKiB: 2}}, entries)
}

func TestRedisStorage_Ping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ok := new(MockRedisClient)
	ok.On("Ping", mock.Anything).Return("PONG", nil)
	s, err := file.NewRedisStorage(ok)
	require.NoError(t, err)
	assert.NoError(t, s.Ping(ctx))

	down := new(MockRedisClient)
	down.On("Ping", mock.Anything).Return("", errors.New("i/o timeout"))
	s, err = file.NewRedisStorage(down)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Ping(ctx), file.ErrStorageUnavailable)
}
