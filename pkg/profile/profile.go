package profile

import (
	"fmt"
	"time"

	"github.com/bft-labs/httprequest/pkg/httprequest"
)

// Profile holds request defaults.
type Profile struct {
	UserAgent string
	Cookie    string
	Referer   string
	Timeout   time.Duration

	// Proxy is a descriptor accepted by httprequest.ParseProxy.
	Proxy string

	FollowRedirects bool
}

// DefaultProfile returns the defaults of a fresh httprequest.Request.
func DefaultProfile() Profile {
	return Profile{
		UserAgent:       httprequest.DefaultUserAgent,
		Timeout:         httprequest.DefaultTimeout,
		FollowRedirects: true,
	}
}

// Validate checks the profile for errors.
func (p *Profile) Validate() error {
	if p.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if _, err := httprequest.ParseProxy(p.Proxy); err != nil {
		return fmt.Errorf("proxy: %w", err)
	}
	return nil
}

// Apply copies the profile onto req.
func (p Profile) Apply(req *httprequest.Request) error {
	proxy, err := httprequest.ParseProxy(p.Proxy)
	if err != nil {
		return fmt.Errorf("proxy: %w", err)
	}
	if proxy.Type == httprequest.ProxyDirect {
		proxy = nil
	}

	req.SetUserAgent(p.UserAgent).
		SetCookie(p.Cookie).
		SetReferer(p.Referer).
		SetTimeoutDuration(p.Timeout).
		SetProxy(proxy).
		SetFollowRedirects(p.FollowRedirects)
	return nil
}

// NewRequest creates a request for rawURL configured by the profile.
func (p Profile) NewRequest(rawURL string, opts ...httprequest.Option) (*httprequest.Request, error) {
	req, err := httprequest.New(rawURL, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(req); err != nil {
		return nil, err
	}
	return req, nil
}
