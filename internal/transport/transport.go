package transport

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// MaxRedirects is the number of redirects followed before giving up.
const MaxRedirects = 20

// ProxyKind selects how the connection reaches the target.
type ProxyKind int

const (
	ProxyNone ProxyKind = iota
	ProxyHTTP
	ProxySOCKS5
)

// Settings describe one client.
type Settings struct {
	// Timeout bounds the connect phase, the wait for response headers and
	// every read on the connection. Zero or negative disables it.
	Timeout time.Duration

	ProxyKind ProxyKind
	// ProxyAddr is host:port of the proxy.
	ProxyAddr     string
	ProxyUser     string
	ProxyPassword string

	FollowRedirects bool

	// RoundTripper replaces the built transport. Proxy and timeout settings
	// are not applied to it.
	RoundTripper http.RoundTripper
}

// Client is an *http.Client together with the means to release whatever
// connections it still holds.
type Client struct {
	HTTP      *http.Client
	transport *http.Transport
}

// CloseIdleConnections disconnects every connection the client kept.
func (c *Client) CloseIdleConnections() {
	if c.transport != nil {
		c.transport.CloseIdleConnections()
		return
	}
	c.HTTP.CloseIdleConnections()
}

// New builds a client for s.
func New(s Settings) (*Client, error) {
	c := &Client{
		HTTP: &http.Client{CheckRedirect: redirectPolicy(s.FollowRedirects)},
	}

	if s.RoundTripper != nil {
		c.HTTP.Transport = s.RoundTripper
		return c, nil
	}

	dialer := &timedDialer{
		dialer:  &net.Dialer{Timeout: positive(s.Timeout)},
		timeout: positive(s.Timeout),
	}

	t := &http.Transport{
		DisableKeepAlives:     true,
		ResponseHeaderTimeout: positive(s.Timeout),
		TLSHandshakeTimeout:   positive(s.Timeout),
		DialContext:           dialer.DialContext,
	}

	switch s.ProxyKind {
	case ProxyNone:
	case ProxyHTTP:
		u := &url.URL{Scheme: "http", Host: s.ProxyAddr}
		if s.ProxyUser != "" {
			u.User = url.UserPassword(s.ProxyUser, s.ProxyPassword)
		}
		t.Proxy = http.ProxyURL(u)
	case ProxySOCKS5:
		var auth *proxy.Auth
		if s.ProxyUser != "" {
			auth = &proxy.Auth{User: s.ProxyUser, Password: s.ProxyPassword}
		}
		socks, err := proxy.SOCKS5("tcp", s.ProxyAddr, auth, dialer)
		if err != nil {
			return nil, fmt.Errorf("socks5 proxy %s: %w", s.ProxyAddr, err)
		}
		cd, ok := socks.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("socks5 proxy %s: dialer does not support contexts", s.ProxyAddr)
		}
		t.DialContext = cd.DialContext
	default:
		return nil, fmt.Errorf("unknown proxy kind %d", s.ProxyKind)
	}

	c.HTTP.Transport = t
	c.transport = t
	return c, nil
}

func redirectPolicy(follow bool) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if !follow {
			return http.ErrUseLastResponse
		}
		if len(via) >= MaxRedirects {
			return fmt.Errorf("stopped after %d redirects", MaxRedirects)
		}
		return nil
	}
}

func positive(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// timedDialer hands out connections whose read deadline is pushed forward
// before every Read. It also satisfies proxy.Dialer so it can be the forward
// dialer of a SOCKS5 proxy.
type timedDialer struct {
	dialer  *net.Dialer
	timeout time.Duration
}

func (d *timedDialer) Dial(network, addr string) (net.Conn, error) {
	return d.DialContext(context.Background(), network, addr)
}

func (d *timedDialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	conn, err := d.dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	if d.timeout <= 0 {
		return conn, nil
	}
	return &deadlineConn{Conn: conn, timeout: d.timeout}, nil
}

// deadlineConn turns an absolute read deadline into an idle timeout.
type deadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}
