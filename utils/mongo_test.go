package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type fakeMongoConn struct {
	pingErr      error
	disconnected int
}

func (f *fakeMongoConn) Ping(context.Context, *readpref.ReadPref) error { return f.pingErr }

func (f *fakeMongoConn) Disconnect(context.Context) error {
	f.disconnected++
	return nil
}

func TestVerifyConnectionDisconnectsOnPingFailure(t *testing.T) {
	conn := &fakeMongoConn{pingErr: errors.New("server selection timeout")}

	err := verifyConnection(context.Background(), conn)
	require.ErrorContains(t, err, "failed to ping mongodb")
	require.Equal(t, 1, conn.disconnected)
}

func TestVerifyConnectionKeepsHealthyClient(t *testing.T) {
	conn := &fakeMongoConn{}

	require.NoError(t, verifyConnection(context.Background(), conn))
	require.Zero(t, conn.disconnected)
}

func TestVerifyConnectionDisconnectsAfterDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conn := &fakeMongoConn{pingErr: context.Canceled}

	err := verifyConnection(ctx, conn)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, conn.disconnected)
}
