package httprequest

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/bft-labs/httprequest/internal/transport"
	"github.com/bft-labs/httprequest/pkg/log"
)

// ReadSingle returns the first line of the body. It fails with
// ErrEmptyResult when the body is empty.
func (r *Request) ReadSingle(ctx context.Context) (string, error) {
	lines, err := r.ReadLines(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", &Error{Kind: ErrEmptyResult, Method: r.method(), URL: r.target.Redacted(), Err: errors.New("body has no lines")}
	}
	return lines[0], nil
}

// ReadLines returns the lines of the body, without terminators. When limit
// is positive at most limit lines are read and the connection is closed
// without consuming the rest; otherwise the whole body is read.
func (r *Request) ReadLines(ctx context.Context, limit int) ([]string, error) {
	var lines []string
	err := r.do(ctx, func(body io.Reader) error {
		var err error
		lines, err = readLines(body, limit)
		return errors.Wrap(err, "read lines")
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// ReadAllLines returns every line of the body.
func (r *Request) ReadAllLines(ctx context.Context) ([]string, error) {
	return r.ReadLines(ctx, -1)
}

// ReadJoinedString returns all lines joined with os.PathSeparator, not
// with newlines. Existing callers depend on this separator.
func (r *Request) ReadJoinedString(ctx context.Context) (string, error) {
	lines, err := r.ReadAllLines(ctx)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, string(os.PathSeparator)), nil
}

// ReadBytes returns the body exactly as received.
func (r *Request) ReadBytes(ctx context.Context) ([]byte, error) {
	var data []byte
	err := r.do(ctx, func(body io.Reader) error {
		var err error
		data, err = io.ReadAll(body)
		return errors.Wrap(err, "read body")
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Request) method() string {
	if r.hasPostData {
		return http.MethodPost
	}
	return http.MethodGet
}

// session holds the handles that live for the duration of one read.
type session struct {
	client  *transport.Client
	reqBody io.Closer
	body    io.Closer
	logger  log.Logger
}

// teardown releases every handle of the session. A failure to release one
// does not stop the others and is only logged.
func (s *session) teardown() {
	release := func(resource string, closer io.Closer) {
		if closer == nil {
			return
		}
		if err := closer.Close(); err != nil {
			s.logger.Warn("release failed", log.String("resource", resource), log.Err(err))
		}
	}
	release("reader", s.body)
	release("writer", s.reqBody)
	if s.client != nil {
		s.client.CloseIdleConnections()
	}
	s.logger.Debug("connection released")
}

// do runs one request and hands the response body to consume.
func (r *Request) do(ctx context.Context, consume func(body io.Reader) error) error {
	method := r.method()
	location := r.target.Redacted()
	fail := func(kind, cause error) error {
		return &Error{Kind: kind, Method: method, URL: location, Err: cause}
	}

	settings := transport.Settings{
		Timeout:         r.timeout,
		FollowRedirects: r.followRedirects,
		RoundTripper:    r.roundTripper,
	}
	r.proxy.apply(&settings)

	client, err := transport.New(settings)
	if err != nil {
		return fail(ErrConnection, err)
	}

	s := &session{client: client, logger: r.logger}
	defer s.teardown()

	var body io.Reader
	if r.hasPostData {
		body = strings.NewReader(r.postData)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.target.String(), body)
	if err != nil {
		return fail(ErrMalformedLocation, err)
	}
	if req.Body != nil {
		s.reqBody = req.Body
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if r.cookie != "" {
		req.Header.Set("Cookie", r.cookie)
	}
	if r.referer != "" {
		req.Header.Add("Referer", r.referer)
	}
	req.Header.Set("User-Agent", r.userAgent)

	r.logger.Debug("opening connection",
		log.String("method", method),
		log.String("proxy", r.proxy.String()),
		log.Duration("timeout", r.timeout),
		log.Bool("follow_redirects", r.followRedirects))

	resp, err := client.HTTP.Do(req)
	if err != nil {
		return fail(classify(err), err)
	}
	s.body = resp.Body

	r.record(newMetadata(resp))
	r.logger.Debug("response received",
		log.Int("status", resp.StatusCode),
		log.Int64("content_length", resp.ContentLength))

	if resp.StatusCode >= http.StatusBadRequest {
		return fail(ErrHTTPStatus, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status})
	}

	if err := consume(resp.Body); err != nil {
		return fail(classify(err), err)
	}
	return nil
}
