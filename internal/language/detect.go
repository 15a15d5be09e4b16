// Package language classifies source files by programming language.
// Detection is extension-first with a multi-pattern content scorer as
// fallback; both are pure functions over the inputs.
package language

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Unknown is returned when neither the extension nor the content
// identifies a language.
const Unknown = "unknown"

// SampleSize caps how many leading bytes the content scorer inspects.
const SampleSize = 4096

var extensionMap = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".java":  "java",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".cxx":   "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".go":    "go",
	".rs":    "rust",
	".rb":    "ruby",
	".php":   "php",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
}

var contentPatterns = map[string][]*regexp.Regexp{
	"python": compileAll(
		`(?m)^#!.*python`,
		`import\s+\w+`,
		`from\s+\w+\s+import`,
		`def\s+\w+\s*\(`,
		`class\s+\w+`,
		`if\s+__name__\s*==\s*["']__main__["']`,
	),
	"java": compileAll(
		`(?m)^package\s+\w+`,
		`import\s+java\.`,
		`public\s+class\s+\w+`,
		`public\s+static\s+void\s+main`,
	),
	"javascript": compileAll(
		`(?m)^#!.*node`,
		`require\s*\(\s*["']`,
		`import\s+.*from\s+["']`,
		`function\s+\w+\s*\(`,
		`const\s+\w+\s*=`,
		`let\s+\w+\s*=`,
		`console\.log`,
		`module\.exports`,
	),
	"typescript": compileAll(
		`import\s+.*from\s+["']`,
		`interface\s+\w+`,
		`type\s+\w+\s*=`,
		`:\s*(string|number|boolean|any)\b`,
		`as\s+(string|number|boolean|any)\b`,
	),
	"php": compileAll(
		`(?m)^<\?php`,
		`<\?=`,
		`echo\s+`,
		`\$\w+\s*=`,
	),
	"ruby": compileAll(
		`(?m)^#!.*ruby`,
		`require\s+["']`,
		`def\s+\w+`,
		`class\s+\w+`,
		`puts\s+`,
	),
	"go": compileAll(
		`(?m)^package\s+\w+`,
		`import\s+\(`,
		`func\s+\w+\s*\(`,
		`type\s+\w+\s+struct`,
		`fmt\.Print`,
	),
	"rust": compileAll(
		`(?m)^#!\[`,
		`use\s+\w+`,
		`fn\s+\w+\s*\(`,
		`struct\s+\w+`,
		`impl\s+\w+`,
		`let\s+mut\s+`,
	),
	"c": compileAll(
		`(?m)^#include\s*<`,
		`(?m)^#include\s*"`,
		`int\s+main\s*\(`,
		`printf\s*\(`,
		`void\s+\w+\s*\(`,
	),
	"cpp": compileAll(
		`(?m)^#include\s*<`,
		`using\s+namespace`,
		`std::`,
		`cout\s*<<`,
		`class\s+\w+\s*\{`,
		`public:`,
		`private:`,
	),
	"csharp": compileAll(
		`using\s+System`,
		`namespace\s+\w+`,
		`class\s+\w+`,
		`public\s+static\s+void\s+Main`,
		`Console\.WriteLine`,
	),
}

// scorerOrder fixes the tie-break: the first language to reach the top
// score wins, so scoring must not depend on map iteration order.
var scorerOrder = []string{
	"python", "java", "javascript", "typescript", "php",
	"ruby", "go", "rust", "c", "cpp", "csharp",
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// Detect classifies a file by its path and leading bytes. The extension
// wins when recognized; otherwise the content scorer decides.
func Detect(path string, leading []byte) string {
	if lang, ok := FromExtension(path); ok {
		return lang
	}
	if len(leading) > SampleSize {
		leading = leading[:SampleSize]
	}
	if lang := FromContent(string(leading)); lang != "" {
		return lang
	}
	return Unknown
}

// FromExtension maps a file extension to a language tag.
func FromExtension(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := extensionMap[ext]
	return lang, ok
}

// FromContent scores the content against every language's pattern set and
// returns the best match, or "" when no language reaches two pattern hits.
func FromContent(content string) string {
	maxScore := 0
	detected := ""

	for _, lang := range scorerOrder {
		score := 0
		for _, p := range contentPatterns[lang] {
			if p.MatchString(content) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			detected = lang
		}
	}

	if maxScore < 2 {
		return ""
	}
	return detected
}

// Supported reports whether path has an extension warden can scan.
func Supported(path string) bool {
	_, ok := extensionMap[strings.ToLower(filepath.Ext(path))]
	return ok
}
