package execute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenLinkRejectsNonHTTP(t *testing.T) {
	for _, link := range []string{
		"",
		"file:///etc/passwd",
		"javascript:alert(1)",
		"https://",
		"/relative/path",
		"%zz",
	} {
		assert.Error(t, OpenLink("true", link), link)
	}
}

func TestOpenLink(t *testing.T) {
	assert.NoError(t, OpenLink("true", "https://www.vaevi.com"))
	assert.NoError(t, OpenLink("true", "http://example.com/path?q=1"))
}

func TestOpenLinkMissingOpener(t *testing.T) {
	assert.Error(t, OpenLink("/nonexistent/opener", "https://example.com"))
}
