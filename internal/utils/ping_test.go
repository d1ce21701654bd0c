package utils_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/localnerve/visionfolio/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailAddress(t *testing.T) {
	cases := map[string]struct {
		host, port string
		want       string
	}{
		"bare host":          {"smtp.gmail.com", "", "smtp.gmail.com:587"},
		"bare host and port": {"smtp.gmail.com", "2525", "smtp.gmail.com:2525"},
		"smtp url":           {"smtp://mail.example.com:25", "", "mail.example.com:25"},
		"smtps url":          {"smtps://mail.example.com", "", "mail.example.com:465"},
		"port setting wins":  {"smtp://mail.example.com:25", "587", "mail.example.com:587"},
		"padded":             {"  smtp.gmail.com ", " 465 ", "smtp.gmail.com:465"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := utils.MailAddress(tc.host, tc.port)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMailAddressErrors(t *testing.T) {
	_, err := utils.MailAddress("", "587")
	assert.Error(t, err)

	_, err = utils.MailAddress("smtp://%zz", "")
	assert.Error(t, err)
}

func TestPingAddress(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	ctx := context.Background()
	assert.NoError(t, utils.PingAddress(ctx, ln.Addr().String(), time.Second))

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	assert.NoError(t, utils.PingMailHost(ctx, host, port))
	assert.NoError(t, utils.PingMailHost(ctx, "smtp://"+ln.Addr().String(), ""))
}

func TestPingClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	assert.Error(t, utils.PingAddress(context.Background(), addr, 200*time.Millisecond))
}

func TestPingCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, utils.PingAddress(ctx, "127.0.0.1:1", time.Second))
}
