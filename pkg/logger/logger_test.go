package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		pattern   string
		want      bool
	}{
		{name: "wildcard all", namespace: "schema:registry", pattern: "*", want: true},
		{name: "exact match", namespace: "schema:registry", pattern: "schema:registry", want: true},
		{name: "prefix wildcard", namespace: "schema:registry", pattern: "schema:*", want: true},
		{name: "suffix wildcard", namespace: "schema:registry", pattern: "*:registry", want: true},
		{name: "middle wildcard", namespace: "script:embedded", pattern: "script*ed", want: true},
		{name: "no match", namespace: "schema:registry", pattern: "script:*", want: false},
		{name: "empty pattern", namespace: "schema:registry", pattern: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchPattern(tt.namespace, tt.pattern))
		})
	}
}

func TestNewDisabledByDefault(t *testing.T) {
	if os.Getenv("DEBUG") != "" {
		t.Skip("DEBUG is set; enabled state depends on its patterns")
	}
	log := New("test:namespace")
	assert.False(t, log.Enabled())

	// Disabled loggers must not panic on output calls.
	log.Print("ignored")
	log.Printf("ignored %d", 42)
}
