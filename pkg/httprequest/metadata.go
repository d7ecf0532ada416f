package httprequest

import (
	"net/http"
	"net/url"
)

// ResponseMetadata is what a server sent besides the body.
type ResponseMetadata struct {
	StatusCode int
	Status     string
	Proto      string

	// Headers maps each header name to its values in the order received.
	Headers http.Header

	// URL is the location that produced the response, after redirects.
	URL *url.URL

	// ContentLength is -1 when the server did not announce it.
	ContentLength int64
}

func newMetadata(resp *http.Response) *ResponseMetadata {
	md := &ResponseMetadata{
		StatusCode:    resp.StatusCode,
		Status:        resp.Status,
		Proto:         resp.Proto,
		Headers:       resp.Header.Clone(),
		ContentLength: resp.ContentLength,
	}
	if resp.Request != nil && resp.Request.URL != nil {
		u := *resp.Request.URL
		md.URL = &u
	}
	if md.Headers == nil {
		md.Headers = http.Header{}
	}
	return md
}

func (md *ResponseMetadata) clone() *ResponseMetadata {
	if md == nil {
		return nil
	}
	c := *md
	c.Headers = md.Headers.Clone()
	if md.URL != nil {
		u := *md.URL
		c.URL = &u
	}
	return &c
}
