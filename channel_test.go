package minipar

import (
	"bufio"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSendRecvRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &SChannel{ln: ln}
	defer srv.close()

	clientDone := make(chan error, 1)
	var client *CChannel
	go func() {
		conn, err := net.Dial("tcp", ln.Addr().String())
		if err != nil {
			clientDone <- err
			return
		}
		client = &CChannel{conn: conn, r: bufio.NewReader(conn)}
		clientDone <- nil
	}()

	serverConn, err := srv.accept()
	require.NoError(t, err)
	defer serverConn.close()
	require.NoError(t, <-clientDone)
	defer client.close()

	require.NoError(t, client.send("hello"))
	got, err := serverConn.recv()
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	require.NoError(t, serverConn.send("world"))
	got, err = client.recv()
	require.NoError(t, err)
	assert.Equal(t, "world", got)
}

func TestChannelCloseIsIdempotent(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &SChannel{ln: ln}
	require.NoError(t, srv.close())
	require.NoError(t, srv.close())
}

func TestChannelUseAfterCloseIsError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &SChannel{ln: ln}
	require.NoError(t, srv.close())
	_, err = srv.accept()
	assert.Error(t, err)

	cc := &CChannel{conn: nil, r: nil, closed: true}
	_, err = cc.recv()
	assert.Error(t, err)
	assert.Error(t, cc.send("x"))
}
