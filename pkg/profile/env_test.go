package profile

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		changed map[string]bool
		initial Profile
		want    Profile
		wantErr bool
	}{
		{
			name: "applies all env vars",
			env: map[string]string{
				EnvUserAgent:       "env-agent",
				EnvCookie:          "a=b",
				EnvReferer:         "http://ref/",
				EnvTimeout:         "250ms",
				EnvProxy:           "http://p:8080",
				EnvFollowRedirects: "false",
			},
			initial: Profile{FollowRedirects: true},
			want: Profile{
				UserAgent:       "env-agent",
				Cookie:          "a=b",
				Referer:         "http://ref/",
				Timeout:         250 * time.Millisecond,
				Proxy:           "http://p:8080",
				FollowRedirects: false,
			},
		},
		{
			name:    "respects changed flags",
			env:     map[string]string{EnvUserAgent: "env-agent", EnvFollowRedirects: "1"},
			changed: map[string]bool{FlagUserAgent: true},
			initial: Profile{UserAgent: "flag-agent"},
			want:    Profile{UserAgent: "flag-agent", FollowRedirects: true},
		},
		{
			name:    "invalid duration",
			env:     map[string]string{EnvTimeout: "fast"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{EnvUserAgent, EnvCookie, EnvReferer, EnvTimeout, EnvProxy, EnvFollowRedirects} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			p := tt.initial
			err := ApplyEnv(&p, tt.changed)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, p); diff != "" {
				t.Errorf("ApplyEnv() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
