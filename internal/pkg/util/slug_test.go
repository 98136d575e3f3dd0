package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Hello   World  ", "hello-world"},
		{"Go 1.24 Released!", "go-1-24-released"},
		{"UPPER case Title", "upper-case-title"},
		{"---dashes---", "dashes"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveSlug(tc.title), "title=%q", tc.title)
	}
}

func TestValidateSlug(t *testing.T) {
	valid := []string{"hello-world", "a", "go-1-24", "x9"}
	for _, s := range valid {
		assert.True(t, ValidateSlug(s), "slug=%q", s)
	}

	invalid := []string{"", "-leading", "trailing-", "double--dash", "UPPER", "with space", "中文", "under_score"}
	for _, s := range invalid {
		assert.False(t, ValidateSlug(s), "slug=%q", s)
	}
}
