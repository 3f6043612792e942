package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText_Clean(t *testing.T) {
	s := NewText()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Intro to Go", "Intro to Go"},
		{"trims", "  Go  ", "Go"},
		{"strips tags", "<b>Go</b> basics", "Go basics"},
		{"drops scripts entirely", "<script>alert(1)</script>", ""},
		{"keeps ampersands readable", "Tips & tricks", "Tips & tricks"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Clean(tt.in))
		})
	}
}
