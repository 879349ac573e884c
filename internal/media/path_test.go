package media

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidStoredPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "plain date path", path: "2026/8/31/report.pdf", want: true},
		{name: "underscore and hyphen", path: "2026/8/31/my_file-v2.txt", want: true},
		{name: "backslash allowed", path: `2026\8\31\report.pdf`, want: true},
		{name: "dotted traversal still matches charset", path: "2026/../secret", want: true},
		{name: "empty", path: "", want: false},
		{name: "doubled slash", path: "2026//report.pdf", want: false},
		{name: "doubled slash at start", path: "//etc/passwd", want: false},
		{name: "space", path: "2026/8/31/my report.pdf", want: false},
		{name: "percent escape", path: "2026/8/31/a%20b.pdf", want: false},
		{name: "null byte", path: "2026/8/31/a\x00b", want: false},
		{name: "unicode", path: "2026/8/31/résumé.pdf", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidStoredPath(tt.path))
		})
	}
}

func TestStoredPathFor(t *testing.T) {
	at := time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026/3/7/invoice.pdf", storedPathFor(at, "invoice.pdf"))
}
