package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{input: "hello", wantOK: false},
		{input: "  /Status  ", wantName: "status", wantArgs: []string{}, wantOK: true},
		{input: "/model list", wantName: "model", wantArgs: []string{"list"}, wantOK: true},
		{input: "/status@edagent_bot", wantName: "status", wantArgs: []string{}, wantOK: true},
		{input: "/", wantOK: false},
		{input: "/@bot", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, args, ok := ParseCommand(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, name)
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}
