package downloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePath(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "http://example.com/file.tar.gz", "file.tar.gz"},
		{"nested", "http://example.com/nested/path/backup.tar.gz", "nested/path/backup.tar.gz"},
		{"query stripped", "http://example.com/path/to/file.sql.gz?token=123", "path/to/file.sql.gz"},
		{"percent decoded", "http://example.com/mail/user%40example.com.tar.gz", "mail/user@example.com.tar.gz"},
		{"fragment dropped", "http://example.com/a.tar.gz#section", "a.tar.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DerivePath(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.False(t, len(got) > 0 && got[0] == '/', "derived path must be relative")
		})
	}
}

func TestDerivePathInvalidURL(t *testing.T) {
	_, err := DerivePath("http://example.com/%zz.tar.gz")
	assert.Error(t, err)
}

func TestDerivePathQueryVariantsCollide(t *testing.T) {
	a, err := DerivePath("http://example.com/db.sql.gz?token=1")
	require.NoError(t, err)
	b, err := DerivePath("http://example.com/db.sql.gz?token=2")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
