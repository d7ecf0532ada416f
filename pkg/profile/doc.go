// Package profile keeps reusable request defaults.
//
// A [Profile] carries the settings most callers repeat on every request:
// user agent, cookie, referer, timeout, proxy and redirect policy. Profiles
// are layered the same way everywhere: defaults, then a TOML file, then
// HTTPREQUEST_* environment variables, then command line flags. A layer
// never overrides a flag the user set explicitly.
//
// # Usage
//
//	p := profile.DefaultProfile()
//	if fp, err := profile.LoadFile(profile.DefaultPath()); err == nil {
//	    if err := profile.ApplyFile(&p, fp, nil); err != nil {
//	        return err
//	    }
//	}
//	if err := profile.ApplyEnv(&p, nil); err != nil {
//	    return err
//	}
//
//	req, err := p.NewRequest("https://example.com")
//
// A [Watcher] reloads a profile file whenever it changes, so long running
// programs pick up new defaults without restarting.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package profile
