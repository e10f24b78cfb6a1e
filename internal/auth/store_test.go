package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeRedis struct {
	values map[string]string
	getErr error
	setErr error
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileStore(path)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)

	expiry := time.Date(2024, 11, 5, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(context.Background(), &oauth2.Token{AccessToken: "a", RefreshToken: "r", Expiry: expiry}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	tok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", tok.AccessToken)
	assert.True(t, tok.Expiry.Equal(expiry))
}

func TestFileStoreReadsLegacyTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yahoo_tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"a","refresh_token":"r","expires_in":3600,"token_type":"bearer"}`), 0o600))

	tok, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "r", tok.RefreshToken)
	assert.True(t, tok.Expiry.IsZero())
}

func TestFileStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))
	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorContains(t, err, "decode token")

	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))
	_, err = NewFileStore(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)

	assert.Error(t, NewFileStore(path).Save(context.Background(), nil))
}

func TestRedisStoreRoundTrip(t *testing.T) {
	fake := &fakeRedis{values: map[string]string{}}
	store := &RedisStore{client: fake, key: "yahoo:token"}

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Save(context.Background(), &oauth2.Token{AccessToken: "a", RefreshToken: "r"}))
	assert.Contains(t, fake.values["yahoo:token"], `"refresh_token": "r"`)

	tok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", tok.AccessToken)
}

func TestRedisStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	store := &RedisStore{client: &fakeRedis{values: map[string]string{}, getErr: boom, setErr: boom}, key: "k"}

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNoToken)

	err = store.Save(context.Background(), &oauth2.Token{AccessToken: "a"})
	assert.ErrorIs(t, err, boom)
}

func TestNewRedisStoreAcceptsClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	store := NewRedisStore(client, "k")
	assert.Equal(t, "k", store.key)
}
