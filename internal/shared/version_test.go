package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "semver greater", a: "13.0.1", b: "12.0.3", want: 1},
		{name: "semver prerelease lower", a: "1.0.0-beta", b: "1.0.0", want: -1},
		{name: "semver equal", a: "2.1.0", b: "2.1.0", want: 0},
		{name: "assembly versions", a: "4.0.10.0", b: "4.0.9.0", want: 1},
		{name: "assembly version shorter", a: "1.0", b: "1.0.0.1", want: -1},
		{name: "mixed falls back to text", a: "abc", b: "ABD", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareVersions(tt.a, tt.b))
		})
	}
}

func TestIsSemanticVersion(t *testing.T) {
	assert.True(t, IsSemanticVersion("1.2.3"))
	assert.True(t, IsSemanticVersion("8.0.0-preview.1"))
	assert.False(t, IsSemanticVersion("1.0.0.0"))
	assert.False(t, IsSemanticVersion("latest"))
}
