package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Target
	}{
		{
			name:  "framework only",
			input: ".NETCoreApp,Version=v8.0",
			want:  Target{Framework: ".NETCoreApp,Version=v8.0"},
		},
		{
			name:  "framework and rid",
			input: ".NETCoreApp,Version=v8.0/linux-x64",
			want:  Target{Framework: ".NETCoreApp,Version=v8.0", RuntimeIdentifier: "linux-x64"},
		},
		{
			name:  "empty",
			input: "  ",
			want:  Target{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTarget(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Name(), got.Name())
		})
	}
}

func TestTargetName(t *testing.T) {
	assert.Equal(t, "net8.0/linux-x64", Target{Framework: "net8.0", RuntimeIdentifier: "linux-x64"}.Name())
	assert.Equal(t, "net8.0", Target{Framework: "net8.0"}.Name())
}

func TestParseEnums(t *testing.T) {
	kind, ok := ParseLibraryKind("Package")
	assert.True(t, ok)
	assert.Equal(t, LibraryKindPackage, kind)
	_, ok = ParseLibraryKind("msbuildproject")
	assert.False(t, ok)

	assetType, ok := ParseAssetType("native")
	assert.True(t, ok)
	assert.Equal(t, AssetTypeNative, assetType)
	_, ok = ParseAssetType("compile")
	assert.False(t, ok, "compile assets are not valid runtime target asset types")

	action, ok := ParseRecordAction("shadowed")
	assert.True(t, ok)
	assert.Equal(t, RecordActionShadowed, action)
	_, ok = ParseRecordAction("forced")
	assert.False(t, ok)
}

func TestDependencyContextRuntimeLibrary(t *testing.T) {
	dc := DependencyContext{RuntimeLibraries: []RuntimeLibrary{
		{Library: Library{Name: "A", Version: "1.0.0"}},
		{Library: Library{Name: "B", Version: "2.0.0"}},
	}}
	lib, ok := dc.RuntimeLibrary("B")
	assert.True(t, ok)
	assert.Equal(t, "2.0.0", lib.Version)
	_, ok = dc.RuntimeLibrary("C")
	assert.False(t, ok)
}
