package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mapEnv(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{
		ROPaths: []string{"/flag"},
		Command: []string{"prog"},
	}
	ApplyEnv(cfg, mapEnv(map[string]string{
		EnvROPaths: "/a:/b",
		EnvRWPaths: "/c",
		EnvRODirs:  ":/d::",
		EnvRWDirs:  "",
	}))

	assert.Equal(t, &Config{
		ROPaths: []string{"/flag", "/a", "/b"},
		RWPaths: []string{"/c"},
		RODirs:  []string{"/d"},
		Command: []string{"prog"},
	}, cfg)
}

func TestApplyEnvDebug(t *testing.T) {
	for _, tc := range []struct {
		value string
		want  bool
	}{
		{"", false},
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"t", true},
		{"y", true},
		{"Yes", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"garbage", false},
	} {
		cfg := &Config{}
		ApplyEnv(cfg, mapEnv(map[string]string{EnvDebug: tc.value}))
		assert.Equal(t, tc.want, cfg.Debug, "%s=%q", EnvDebug, tc.value)
	}
}

func TestApplyEnvKeepsFlagDebug(t *testing.T) {
	cfg := &Config{Debug: true}
	ApplyEnv(cfg, mapEnv(map[string]string{EnvDebug: "false"}))
	assert.True(t, cfg.Debug)
}
