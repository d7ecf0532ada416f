package profile

import (
	pflag "github.com/spf13/pflag"
)

// Flag names registered by BindFlags.
const (
	FlagUserAgent       = "user-agent"
	FlagCookie          = "cookie"
	FlagReferer         = "referer"
	FlagTimeout         = "timeout"
	FlagProxy           = "proxy"
	FlagFollowRedirects = "follow-redirects"
)

// BindFlags registers flags on fs that write into p. The current values of
// p are the flag defaults.
func BindFlags(fs *pflag.FlagSet, p *Profile) {
	fs.StringVar(&p.UserAgent, FlagUserAgent, p.UserAgent, "User-Agent header")
	fs.StringVar(&p.Cookie, FlagCookie, p.Cookie, "Cookie header")
	fs.StringVar(&p.Referer, FlagReferer, p.Referer, "Referer header")
	fs.DurationVar(&p.Timeout, FlagTimeout, p.Timeout, "connect and read timeout (0 disables)")
	fs.StringVar(&p.Proxy, FlagProxy, p.Proxy, "proxy, e.g. http://host:3128 or socks5://host:1080")
	fs.BoolVar(&p.FollowRedirects, FlagFollowRedirects, p.FollowRedirects, "follow 3xx redirects")
}

// ChangedFlags returns the names of the flags set on the command line.
func ChangedFlags(fs *pflag.FlagSet) map[string]bool {
	changed := map[string]bool{}
	fs.Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	return changed
}
