package downloader

import (
	"net/url"
	"strings"
)

// DerivePath maps a URL to the relative local path its download is
// written to. Only the path component is used: query and fragment are
// dropped, percent escapes are decoded and a single leading slash is
// stripped. Two URLs differing only by query string land on the same
// file, last write wins.
func DerivePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(u.Path, "/"), nil
}
