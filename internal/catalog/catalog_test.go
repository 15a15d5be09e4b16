package catalog

import (
	"sort"
	"testing"

	"github.com/buemura/warden/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesFor_KnownLanguages(t *testing.T) {
	for _, lang := range []string{"python", "javascript", "java", "go", "rust", "php", "ruby", "c", "cpp"} {
		t.Run(lang, func(t *testing.T) {
			assert.NotEmpty(t, RulesFor(lang))
		})
	}
}

func TestRulesFor_TypeScriptAliasesJavaScript(t *testing.T) {
	js := RulesFor("javascript")
	ts := RulesFor("typescript")
	require.Equal(t, len(js), len(ts))
	for i := range js {
		assert.Equal(t, js[i].Issue, ts[i].Issue)
		assert.Equal(t, js[i].Pattern.String(), ts[i].Pattern.String())
	}
}

func TestRulesFor_UnknownLanguage(t *testing.T) {
	assert.Empty(t, RulesFor("cobol"))
}

func TestRules_MatchCaseInsensitively(t *testing.T) {
	rules := RulesFor("python")
	matched := false
	for _, r := range rules {
		if r.Issue == "code-injection" && r.Pattern.MatchString("EVAL(user_input)") {
			matched = true
		}
	}
	assert.True(t, matched, "eval rule should match regardless of case")
}

func TestWeakness(t *testing.T) {
	tests := []struct {
		issue string
		cwe   string
		owasp string
	}{
		{"sql-injection", "CWE-89", "A03:2021 - Injection"},
		{"code-injection", "CWE-94", "A03:2021 - Injection"},
		{"path-traversal", "CWE-22", "A01:2021 - Broken Access Control"},
		{"hardcoded-secret", "CWE-798", "A07:2021 - Identification and Authentication Failures"},
	}
	for _, tt := range tests {
		t.Run(tt.issue, func(t *testing.T) {
			info := Weakness(tt.issue)
			assert.Equal(t, tt.cwe, info.CWE)
			assert.Equal(t, tt.owasp, info.OWASP)
		})
	}
}

func TestWeakness_UnknownIssueReturnsSentinel(t *testing.T) {
	info := Weakness("quantum-tunneling")
	assert.Equal(t, "Unknown", info.CWE)
	assert.Equal(t, "Unknown", info.OWASP)
	assert.Equal(t, types.SeverityMedium, info.Severity)
}

func TestSeverityWeight(t *testing.T) {
	assert.Equal(t, 100, SeverityWeight(types.SeverityCritical))
	assert.Equal(t, 80, SeverityWeight(types.SeverityHigh))
	assert.Equal(t, 60, SeverityWeight(types.SeverityMedium))
	assert.Equal(t, 40, SeverityWeight(types.SeverityLow))
	assert.Equal(t, 20, SeverityWeight(types.SeverityInfo))
	assert.Equal(t, 50, SeverityWeight(types.Severity("bogus")))
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, "Injection", CategoryOf("sql-injection"))
	assert.Equal(t, "Secrets Management", CategoryOf("hardcoded-secret"))
	assert.Equal(t, "General Security", CategoryOf("something-else"))
}

func TestDescriptionOf(t *testing.T) {
	assert.Contains(t, DescriptionOf("CWE-89"), "SQL Injection")
	assert.Equal(t, "CWE-9999 - Security vulnerability", DescriptionOf("CWE-9999"))
}

func TestRemediationFor(t *testing.T) {
	assert.Contains(t, RemediationFor("sql-injection"), "parameterized")
	assert.Contains(t, RemediationFor("made-up-issue"), "made-up-issue")
}

func TestReferences(t *testing.T) {
	refs := References("CWE-94")
	require.Len(t, refs, 2)
	assert.Equal(t, "https://cwe.mitre.org/data/definitions/94.html", refs[0])
	assert.Equal(t, "https://owasp.org/www-community/vulnerabilities/", refs[1])
}

func TestBannedAPIs(t *testing.T) {
	assert.Contains(t, BannedAPIs("python"), "eval")
	assert.Contains(t, BannedAPIs("c"), "gets")
	assert.Empty(t, BannedAPIs("haskell"))
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	assert.Contains(t, langs, "python")
	assert.Contains(t, langs, "typescript")
	assert.True(t, sort.StringsAreSorted(langs))
}
