package tweetie

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentials(t *testing.T) {
	c, err := ParseCredentials("ck, cs, 12345-at, ats\n", 1)
	require.NoError(t, err)
	assert.Equal(t, "ck", c.ConsumerKey)
	assert.Equal(t, "cs", c.ConsumerSecret)
	assert.Equal(t, "12345-at", c.AccessToken)
	assert.Equal(t, "ats", c.AccessTokenSecret)
	assert.Equal(t, "12345", c.ID())
	assert.True(t, c.IsActive())
}

func TestParseCredentials_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		fields int
	}{
		{"three fields", "ck, cs, at", 3},
		{"five fields", "ck, cs, at, ats, extra", 5},
		{"no space separator", "ck,cs,at,ats", 1},
		{"empty line", "", 1},
		{"empty field", "ck, , at, ats", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCredentials(tt.line, 3)
			var cfe *CredentialFormatError
			require.True(t, errors.As(err, &cfe), "got %v", err)
			assert.Equal(t, 3, cfe.Line)
			assert.Equal(t, tt.fields, cfe.Fields)
		})
	}
}

func TestLoadCredentials(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "twitter.csv")
	require.NoError(t, os.WriteFile(path, []byte("a, b, 1-c, d\n\n2-x, y, 2-z, w\n"), 0o600))
	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	require.Len(t, creds, 2)
	assert.Equal(t, "a", creds[0].ConsumerKey)
	assert.Equal(t, "2-z", creds[1].AccessToken)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("a, b, c\n"), 0o600))
	_, err = LoadCredentials(bad)
	var cfe *CredentialFormatError
	assert.True(t, errors.As(err, &cfe))

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = LoadCredentials(empty)
	assert.True(t, errors.As(err, &cfe))

	_, err = LoadCredentials(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
