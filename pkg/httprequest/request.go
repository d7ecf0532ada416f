package httprequest

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/bft-labs/httprequest/pkg/log"
)

// DefaultUserAgent is sent unless SetUserAgent overrides it.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 6.1; Win64; x64; rv:25.0) Gecko/20100101 Firefox/25.0"

// DefaultTimeout applies to connecting and to every read.
const DefaultTimeout = 30_000 * time.Millisecond

// Request holds the configuration of one HTTP request and performs it on
// every Read call. Each call opens its own connection and closes it before
// returning.
//
// A Request is meant to be used by one goroutine at a time. Changing its
// configuration while a read is running is unsupported.
type Request struct {
	target *url.URL

	timeout         time.Duration
	cookie          string
	referer         string
	userAgent       string
	postData        string
	hasPostData     bool
	proxy           *Proxy
	followRedirects bool

	roundTripper http.RoundTripper
	logger       log.Logger

	mu   sync.Mutex
	last *ResponseMetadata
}

// Option configures optional behavior of a Request.
type Option func(*Request)

// WithLogger sets the logger used for connection setup and teardown.
// If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(r *Request) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRoundTripper makes every read go through rt instead of a freshly
// dialed connection. Proxy and timeout settings do not apply to rt; the
// redirect policy does.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(r *Request) {
		r.roundTripper = rt
	}
}

// New parses rawURL and returns a Request for it. The URL must be absolute
// with an http or https scheme and a host.
func New(rawURL string, opts ...Option) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedLocation, "%v", err)
	}
	return NewFromURL(u, opts...)
}

// NewFromURL returns a Request for an already parsed URL. The URL is copied.
func NewFromURL(u *url.URL, opts ...Option) (*Request, error) {
	if u == nil {
		return nil, errors.Wrap(ErrMalformedLocation, "nil url")
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "":
		return nil, errors.Wrapf(ErrMalformedLocation, "no protocol: %q", u.String())
	default:
		return nil, errors.Wrapf(ErrMalformedLocation, "unknown protocol: %s", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.Wrapf(ErrMalformedLocation, "no host: %q", u.String())
	}

	target := *u
	if u.User != nil {
		user := *u.User
		target.User = &user
	}

	r := &Request{
		target:          &target,
		timeout:         DefaultTimeout,
		userAgent:       DefaultUserAgent,
		followRedirects: true,
		logger:          log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(log.String("url", target.Redacted()))
	return r, nil
}

// URL returns a copy of the target.
func (r *Request) URL() *url.URL {
	u := *r.target
	return &u
}

// SetCookie sets the Cookie header. An empty string sends no Cookie header.
func (r *Request) SetCookie(cookie string) *Request {
	r.cookie = cookie
	return r
}

// SetReferer sets the Referer header. An empty string sends none.
func (r *Request) SetReferer(referer string) *Request {
	r.referer = referer
	return r
}

// SetPostData turns the request into a POST sending data byte for byte.
// An empty string still makes it a POST with an empty body.
func (r *Request) SetPostData(data string) *Request {
	r.postData = data
	r.hasPostData = true
	return r
}

// ClearPostData turns the request back into a GET.
func (r *Request) ClearPostData() *Request {
	r.postData = ""
	r.hasPostData = false
	return r
}

// SetUserAgent replaces DefaultUserAgent.
func (r *Request) SetUserAgent(userAgent string) *Request {
	r.userAgent = userAgent
	return r
}

// SetTimeout sets the timeout in milliseconds. Zero or negative values are
// accepted and disable the timeout.
func (r *Request) SetTimeout(millis int) *Request {
	r.timeout = time.Duration(millis) * time.Millisecond
	return r
}

// SetTimeoutDuration is SetTimeout for a time.Duration.
func (r *Request) SetTimeoutDuration(d time.Duration) *Request {
	r.timeout = d
	return r
}

// SetProxy routes connections through p. A nil proxy connects directly.
func (r *Request) SetProxy(p *Proxy) *Request {
	r.proxy = p
	return r
}

// SetFollowRedirects controls whether 3xx responses are followed. It only
// affects this Request.
func (r *Request) SetFollowRedirects(follow bool) *Request {
	r.followRedirects = follow
	return r
}

// Timeout returns the configured timeout.
func (r *Request) Timeout() time.Duration { return r.timeout }

// Cookie returns the configured cookie.
func (r *Request) Cookie() string { return r.cookie }

// Referer returns the configured referer.
func (r *Request) Referer() string { return r.referer }

// UserAgent returns the configured user agent.
func (r *Request) UserAgent() string { return r.userAgent }

// PostData returns the POST body and whether one is set.
func (r *Request) PostData() (string, bool) { return r.postData, r.hasPostData }

// Proxy returns the configured proxy, nil when connecting directly.
func (r *Request) Proxy() *Proxy { return r.proxy }

// FollowRedirects reports whether redirects are followed.
func (r *Request) FollowRedirects() bool { return r.followRedirects }

// LastMetadata returns what the server sent on the most recent read that
// got as far as a response header, or nil before that.
func (r *Request) LastMetadata() *ResponseMetadata {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last.clone()
}

// LastHeaders returns the response headers of the most recent read.
func (r *Request) LastHeaders() http.Header {
	if md := r.LastMetadata(); md != nil {
		return md.Headers
	}
	return nil
}

// LastStatusCode returns the status code of the most recent read, or 0.
func (r *Request) LastStatusCode() int {
	if md := r.LastMetadata(); md != nil {
		return md.StatusCode
	}
	return 0
}

func (r *Request) record(md *ResponseMetadata) {
	r.mu.Lock()
	r.last = md
	r.mu.Unlock()
}
