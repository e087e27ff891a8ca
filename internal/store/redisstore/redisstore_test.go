package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/notes/internal/store"
)

func TestRoundTripWithNamespace(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)

	s, err := New(ctx, Options{Addr: srv.Addr(), Namespace: "notes:"})
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, "board")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set(ctx, "board", []byte(`[{"id":1}]`)))
	got, err := s.Get(ctx, "board")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	raw, err := srv.Get("notes:board")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, raw)
	assert.Zero(t, srv.TTL("notes:board"))
}

func TestNewUsesPassword(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	srv.RequireAuth("s3cret")

	_, err := New(ctx, Options{Addr: srv.Addr()})
	require.Error(t, err)

	s, err := New(ctx, Options{Addr: srv.Addr(), Password: "s3cret"})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestNewRequiresAddr(t *testing.T) {
	_, err := New(context.Background(), Options{})
	require.Error(t, err)
}
