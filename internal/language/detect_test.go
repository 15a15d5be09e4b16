package language

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromExtension(t *testing.T) {
	tests := []struct {
		path string
		lang string
	}{
		{"main.py", "python"},
		{"app.js", "javascript"},
		{"app.jsx", "javascript"},
		{"index.ts", "typescript"},
		{"component.tsx", "typescript"},
		{"Main.java", "java"},
		{"lib.rs", "rust"},
		{"server.go", "go"},
		{"util.hpp", "cpp"},
		{"MODULE.PY", "python"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := FromExtension(tt.path)
			assert.True(t, ok)
			assert.Equal(t, tt.lang, lang)
		})
	}
}

func TestFromExtension_Unrecognized(t *testing.T) {
	_, ok := FromExtension("README.md")
	assert.False(t, ok)
}

func TestFromContent(t *testing.T) {
	pySource := "#!/usr/bin/env python\nimport os\n\ndef main():\n    pass\n"
	assert.Equal(t, "python", FromContent(pySource))

	goSource := "package main\n\nimport (\n\t\"fmt\"\n)\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n"
	assert.Equal(t, "go", FromContent(goSource))
}

func TestFromContent_RequiresTwoHits(t *testing.T) {
	// A single matching pattern is not enough evidence.
	assert.Equal(t, "", FromContent("echo hello"))
	assert.Equal(t, "", FromContent("plain prose with no code in it"))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, "python", Detect("script.py", nil))
	assert.Equal(t, "python", Detect("script", []byte("import os\nfrom sys import argv\n")))
	assert.Equal(t, Unknown, Detect("notes.txt", []byte("shopping list")))
}

func TestDetect_ScoresLeadingBytesOnly(t *testing.T) {
	pySource := []byte("import os\nfrom sys import argv\ndef main():\n    pass\n")

	// Markers buried past the sample window carry no weight.
	buried := append(bytes.Repeat([]byte("x"), SampleSize), pySource...)
	assert.Equal(t, Unknown, Detect("script", buried))

	leading := append(pySource, bytes.Repeat([]byte("x"), SampleSize)...)
	assert.Equal(t, "python", Detect("script", leading))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.py"))
	assert.True(t, Supported("b.go"))
	assert.False(t, Supported("c.md"))
	assert.False(t, Supported("Makefile"))
}
