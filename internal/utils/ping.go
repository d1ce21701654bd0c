package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// DefaultSMTPPort is used when the settings leave the port empty
const DefaultSMTPPort = "587"

// MailPingTimeout bounds a single mail host reachability check
const MailPingTimeout = 1500 * time.Millisecond

// MailAddress turns the SMTP host and port settings into host:port. The host
// may be bare or an smtp:// or smtps:// URL.
func MailAddress(host, port string) (string, error) {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)

	if strings.Contains(host, "://") {
		u, err := url.Parse(host)
		if err != nil {
			return "", fmt.Errorf("invalid mail host: %w", err)
		}
		if port == "" {
			port = u.Port()
		}
		if port == "" && u.Scheme == "smtps" {
			port = "465"
		}
		host = u.Hostname()
	}

	if host == "" {
		return "", errors.New("mail host is empty")
	}
	if port == "" {
		port = DefaultSMTPPort
	}
	return net.JoinHostPort(host, port), nil
}

// PingAddress dials address over TCP, giving up at timeout or when ctx ends
func PingAddress(ctx context.Context, address string, timeout time.Duration) error {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// PingMailHost checks that the configured SMTP host accepts connections
func PingMailHost(ctx context.Context, host, port string) error {
	address, err := MailAddress(host, port)
	if err != nil {
		return err
	}
	return PingAddress(ctx, address, MailPingTimeout)
}
