package profile

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileProfile mirrors Profile with a string timeout to keep TOML friendly.
type FileProfile struct {
	UserAgent       string `toml:"user_agent"`
	Cookie          string `toml:"cookie"`
	Referer         string `toml:"referer"`
	Timeout         string `toml:"timeout"`
	Proxy           string `toml:"proxy"`
	FollowRedirects *bool  `toml:"follow_redirects"`
}

// LoadFile reads and parses a TOML profile.
func LoadFile(path string) (FileProfile, error) {
	var fp FileProfile
	b, err := os.ReadFile(path)
	if err != nil {
		return fp, err
	}
	if err := toml.Unmarshal(b, &fp); err != nil {
		return fp, err
	}
	return fp, nil
}

// DefaultPath returns ~/.httprequest/profile.toml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".httprequest", "profile.toml")
	}
	return ""
}

// ApplyFile applies fp to p, skipping settings whose flag is in changed.
func ApplyFile(p *Profile, fp FileProfile, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString(FlagUserAgent, fp.UserAgent, &p.UserAgent)
	s.setString(FlagCookie, fp.Cookie, &p.Cookie)
	s.setString(FlagReferer, fp.Referer, &p.Referer)
	s.setString(FlagProxy, fp.Proxy, &p.Proxy)

	if err := s.setDuration(FlagTimeout, fp.Timeout, &p.Timeout); err != nil {
		return err
	}

	s.setBool(FlagFollowRedirects, fp.FollowRedirects, &p.FollowRedirects)
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
