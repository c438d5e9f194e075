package util

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ariebrainware/embryo-ai/config"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMockRedis(t *testing.T) redismock.ClientMock {
	t.Helper()
	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(client)
	t.Cleanup(func() {
		config.ResetRedisClientForTest()
		_ = client.Close()
	})
	return mock
}

func TestStoreSession(t *testing.T) {
	mock := withMockRedis(t)
	ttl := time.Hour

	mock.ExpectSet("session:tok-1", "7:doctor", ttl).SetVal("OK")
	mock.ExpectSAdd("user_sessions:7", "tok-1").SetVal(1)
	mock.ExpectExpire("user_sessions:7", ttl).SetVal(true)

	require.NoError(t, StoreSession(context.Background(), "tok-1", 7, "doctor", ttl))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSession_SetError(t *testing.T) {
	mock := withMockRedis(t)
	mock.ExpectSet("session:tok-1", "7:doctor", time.Hour).SetErr(errors.New("redis down"))

	assert.Error(t, StoreSession(context.Background(), "tok-1", 7, "doctor", time.Hour))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSession_NoRedis(t *testing.T) {
	config.ResetRedisClientForTest()
	assert.NoError(t, StoreSession(context.Background(), "tok", 1, "patient", time.Hour))
}

func TestLookupSession(t *testing.T) {
	mock := withMockRedis(t)

	mock.ExpectGet("session:good").SetVal("12:patient")
	uid, role, err := LookupSession(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, uint(12), uid)
	assert.Equal(t, "patient", role)

	mock.ExpectGet("session:missing").RedisNil()
	_, _, err = LookupSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	mock.ExpectGet("session:bad").SetVal("no-colon")
	_, _, err = LookupSession(context.Background(), "bad")
	assert.Error(t, err)

	mock.ExpectGet("session:zero").SetVal("0:doctor")
	_, _, err = LookupSession(context.Background(), "zero")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateUserSessions(t *testing.T) {
	mock := withMockRedis(t)

	mock.ExpectSMembers("user_sessions:3").SetVal([]string{"a", "b"})
	mock.ExpectDel("session:a").SetVal(1)
	mock.ExpectDel("session:b").SetVal(1)
	mock.ExpectDel("user_sessions:3").SetVal(1)

	require.NoError(t, InvalidateUserSessions(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateUserSessions_SMembersError(t *testing.T) {
	mock := withMockRedis(t)
	mock.ExpectSMembers("user_sessions:3").SetErr(errors.New("boom"))

	assert.Error(t, InvalidateUserSessions(context.Background(), 3))
}
