package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"technews", "technews"},
		{" Tech News ", "technews"},
		{"TECH NEWS", "technews"},
		{"Tech\tNews\n", "technews"},
		{"Go Tips", "gotips"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeCategory(tc.in), "input %q", tc.in)
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RolePublisher))
	assert.False(t, ValidRole("admin"))
	assert.False(t, ValidRole(""))
}
