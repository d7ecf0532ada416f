package profile

import "os"

// Environment variables read by ApplyEnv.
const (
	EnvUserAgent       = "HTTPREQUEST_USER_AGENT"
	EnvCookie          = "HTTPREQUEST_COOKIE"
	EnvReferer         = "HTTPREQUEST_REFERER"
	EnvTimeout         = "HTTPREQUEST_TIMEOUT"
	EnvProxy           = "HTTPREQUEST_PROXY"
	EnvFollowRedirects = "HTTPREQUEST_FOLLOW_REDIRECTS"
)

// ApplyEnv applies HTTPREQUEST_* environment variables to p, skipping
// settings whose flag is in changed.
func ApplyEnv(p *Profile, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString(FlagUserAgent, os.Getenv(EnvUserAgent), &p.UserAgent)
	s.setString(FlagCookie, os.Getenv(EnvCookie), &p.Cookie)
	s.setString(FlagReferer, os.Getenv(EnvReferer), &p.Referer)
	s.setString(FlagProxy, os.Getenv(EnvProxy), &p.Proxy)

	if err := s.setDuration(FlagTimeout, os.Getenv(EnvTimeout), &p.Timeout); err != nil {
		return err
	}

	s.setBoolFromString(FlagFollowRedirects, os.Getenv(EnvFollowRedirects), &p.FollowRedirects)
	return nil
}
