package redact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecrets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "connection refused", want: "connection refused"},
		{name: "bearer", in: "auth failed: Bearer sk-or-123 rejected", want: "auth failed: Bearer <redacted> rejected"},
		{name: "kv", in: "bad api_key=abc123 in request", want: "bad <redacted_kv> in request"},
		{name: "header", in: "x-api-key: hunter2", want: "<redacted_kv>"},
		{name: "url param", in: "POST https://host/v1beta/models/m:generateContent?key=AIza123&alt=sse", want: "POST https://host/v1beta/models/m:generateContent?key=<redacted>&alt=sse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Secrets(tt.in))
		})
	}
}

func TestErr(t *testing.T) {
	assert.Equal(t, "", Err(nil))
	assert.Equal(t, "Bearer <redacted>", Err(errors.New("Bearer abc")))
}
