// Package httprequest performs simple, single-shot HTTP requests and reads
// the response as lines, a joined string or raw bytes.
//
// # Usage
//
// Configure a request with the chained setters, then read it:
//
//	req, err := httprequest.New("https://example.com")
//	if err != nil {
//	    return err
//	}
//	req.SetUserAgent("my-agent/1.0").SetTimeout(5000)
//
//	lines, err := req.ReadAllLines(ctx)
//	if err != nil {
//	    return err
//	}
//
// Setting post data turns the request into a POST:
//
//	req.SetPostData("name=value")
//	first, err := req.ReadSingle(ctx)
//
// # Connections
//
// Every read opens a new connection, optionally through a [Proxy], and
// closes it before returning, whether the read succeeded or not. Nothing is
// cached or reused between reads and failed reads are never retried.
//
// The timeout applies to connecting and to each read on the connection, so
// a server that keeps sending data slowly does not time out.
//
// # Response Metadata
//
// After a read has received a response header, [Request.LastMetadata]
// returns its status and headers. A read that fails before that leaves the
// previous metadata in place.
//
// # Errors
//
// Read errors are *[Error] values that match one of [ErrConnection],
// [ErrTimeout], [ErrProtocol], [ErrHTTPStatus] or [ErrEmptyResult] with
// errors.Is, and also match the underlying network error.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package httprequest
