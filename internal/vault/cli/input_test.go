package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := GetSimpleText(reader, "Say something", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Say something")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("partial"))

	got, err := GetSimpleText(reader, "Prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}

func TestGetSimpleText_EOFWithoutInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(reader, "Prompt", &out)
	assert.Error(t, err)
}

func TestGetYesNo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   bool
		want  bool
	}{
		{"yes", "y\n", false, true},
		{"yes word", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty takes default true", "\n", true, true},
		{"empty takes default false", "\n", false, false},
		{"garbage is no", "whatever\n", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			reader := bufio.NewReader(strings.NewReader(tt.input))
			got, err := GetYesNo(reader, "Proceed?", tt.def, &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetSecret_UsesStubbedReader(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("hunter2"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	secret, err := GetSecret("Root secret", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), secret)
	assert.Contains(t, out.String(), "Root secret")
}
