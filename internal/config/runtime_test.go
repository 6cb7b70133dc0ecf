package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDebug(t *testing.T) {
	for value, want := range map[string]bool{
		"":      false,
		"1":     true,
		"true":  true,
		"TRUE":  true,
		"0":     false,
		"yes":   false,
		" 1 ":   true,
		"false": false,
	} {
		t.Setenv("EDAGENT_DEBUG", value)
		assert.Equal(t, want, IsDebug(), "EDAGENT_DEBUG=%q", value)
	}
}

func TestGetRuntimePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "default", value: "", want: filepath.Join(home, ".edagent")},
		{name: "relative", value: "coach", want: filepath.Join(home, "coach")},
		{name: "tilde", value: "~/data/coach", want: filepath.Join(home, "data/coach")},
		{name: "absolute", value: "/var/lib/edagent/", want: "/var/lib/edagent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDAGENT_RUNTIME_PATH", tt.value)
			assert.Equal(t, tt.want, GetRuntimePath())
		})
	}
}
