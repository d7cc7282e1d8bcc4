// Package extractor scans a saved HTML page for backup archive links.
package extractor

import (
	"io"
	"log"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// DefaultSuffixes matches the archive formats a host backup page links
// to.
var DefaultSuffixes = []string{".tar.gz", ".sql.gz"}

// Extractor collects anchor hrefs whose URL path ends with an accepted
// suffix.
type Extractor struct {
	Suffixes []string
}

func New(suffixes ...string) *Extractor {
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	return &Extractor{Suffixes: suffixes}
}

// ExtractFile reads a saved HTML page and returns its matching links.
// An unreadable file yields an empty list, not an error: to the caller
// a missing page and a page without usable links are the same thing.
func (e *Extractor) ExtractFile(path string) []string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("extractor: %v", err)
		return nil
	}
	defer file.Close()

	return e.Extract(file)
}

// Extract scans r for <a href> links with an accepted suffix. Links
// come back in document order, duplicates included. The tokenizer
// never fails on arbitrary bytes, so malformed markup simply yields
// whatever anchors were recognisable.
func (e *Extractor) Extract(r io.Reader) []string {
	var links []string

	tokenizer := html.NewTokenizer(r)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tokenizer.TagName()
			if len(name) != 1 || name[0] != 'a' || !hasAttr {
				continue
			}
			for {
				key, val, more := tokenizer.TagAttr()
				if string(key) == "href" {
					if href := string(val); e.accepts(href) {
						links = append(links, href)
					}
					break
				}
				if !more {
					break
				}
			}
		}
	}
}

// accepts reports whether the link's path component ends with one of
// the accepted suffixes. The query string is ignored so signed links
// still match.
func (e *Extractor) accepts(link string) bool {
	path := link
	if u, err := url.Parse(link); err == nil {
		path = u.Path
	}
	for _, suffix := range e.Suffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
