package catalog

import (
	"fmt"
	"strings"

	"github.com/buemura/warden/pkg/types"
)

// WeaknessInfo classifies an issue kind under a CWE id and an OWASP
// Top 10 category.
type WeaknessInfo struct {
	CWE      string
	OWASP    string
	Severity types.Severity
}

var cweMappings = map[string]WeaknessInfo{
	"sql-injection":            {"CWE-89", "A03:2021 - Injection", types.SeverityHigh},
	"nosql-injection":          {"CWE-943", "A03:2021 - Injection", types.SeverityHigh},
	"command-injection":        {"CWE-78", "A03:2021 - Injection", types.SeverityHigh},
	"ldap-injection":           {"CWE-90", "A03:2021 - Injection", types.SeverityHigh},
	"xss":                      {"CWE-79", "A03:2021 - Injection", types.SeverityHigh},
	"path-traversal":           {"CWE-22", "A01:2021 - Broken Access Control", types.SeverityHigh},
	"weak-crypto":              {"CWE-327", "A02:2021 - Cryptographic Failures", types.SeverityMedium},
	"insecure-randomness":      {"CWE-330", "A02:2021 - Cryptographic Failures", types.SeverityMedium},
	"tls-issues":               {"CWE-295", "A02:2021 - Cryptographic Failures", types.SeverityHigh},
	"hardcoded-secret":         {"CWE-798", "A07:2021 - Identification and Authentication Failures", types.SeverityHigh},
	"code-injection":           {"CWE-94", "A03:2021 - Injection", types.SeverityCritical},
	"buffer-overflow":          {"CWE-120", "A06:2021 - Vulnerable and Outdated Components", types.SeverityHigh},
	"memory-leak":              {"CWE-401", "A06:2021 - Vulnerable and Outdated Components", types.SeverityMedium},
	"unsafe-code":              {"CWE-119", "A06:2021 - Vulnerable and Outdated Components", types.SeverityMedium},
	"banned-api":               {"CWE-676", "A06:2021 - Vulnerable and Outdated Components", types.SeverityMedium},
	"insecure-deserialization": {"CWE-502", "A08:2021 - Software and Data Integrity Failures", types.SeverityHigh},
	"ssrf":                     {"CWE-918", "A10:2021 - Server-Side Request Forgery", types.SeverityHigh},
	"xxe":                      {"CWE-611", "A05:2021 - Security Misconfiguration", types.SeverityHigh},
	"race-condition":           {"CWE-362", "A04:2021 - Insecure Design", types.SeverityMedium},
	"privilege-escalation":     {"CWE-269", "A01:2021 - Broken Access Control", types.SeverityHigh},
}

// Weakness returns the CWE mapping for an issue kind. Unknown kinds map to
// a sentinel rather than failing.
func Weakness(issue string) WeaknessInfo {
	if info, ok := cweMappings[issue]; ok {
		return info
	}
	return WeaknessInfo{CWE: "Unknown", OWASP: "Unknown", Severity: types.SeverityMedium}
}

var severityWeights = map[types.Severity]int{
	types.SeverityCritical: 100,
	types.SeverityHigh:     80,
	types.SeverityMedium:   60,
	types.SeverityLow:      40,
	types.SeverityInfo:     20,
}

// SeverityWeight returns the prioritization weight for a severity.
// Unknown severities weigh 50.
func SeverityWeight(s types.Severity) int {
	if w, ok := severityWeights[s]; ok {
		return w
	}
	return 50
}

var categories = map[string]string{
	"sql-injection":            "Injection",
	"nosql-injection":          "Injection",
	"command-injection":        "Injection",
	"ldap-injection":           "Injection",
	"code-injection":           "Injection",
	"xss":                      "Cross-Site Scripting",
	"path-traversal":           "Access Control",
	"weak-crypto":              "Cryptography",
	"insecure-randomness":      "Cryptography",
	"tls-issues":               "Cryptography",
	"hardcoded-secret":         "Secrets Management",
	"buffer-overflow":          "Memory Safety",
	"memory-leak":              "Memory Safety",
	"unsafe-code":              "Code Safety",
	"banned-api":               "Code Safety",
	"insecure-deserialization": "Data Integrity",
	"ssrf":                     "Network Security",
	"xxe":                      "XML Security",
	"race-condition":           "Concurrency",
	"privilege-escalation":     "Access Control",
}

// CategoryOf returns the security category for an issue kind.
func CategoryOf(issue string) string {
	if c, ok := categories[issue]; ok {
		return c
	}
	return "General Security"
}

var cweDescriptions = map[string]string{
	"CWE-89":  "SQL Injection - Improper neutralization of SQL commands",
	"CWE-78":  "OS Command Injection - Improper neutralization of OS commands",
	"CWE-79":  "Cross-site Scripting (XSS) - Improper neutralization of input during web page generation",
	"CWE-22":  "Path Traversal - Improper limitation of a pathname to a restricted directory",
	"CWE-94":  "Code Injection - Improper control of generation of code",
	"CWE-327": "Use of Broken or Risky Cryptographic Algorithm",
	"CWE-330": "Use of Insufficiently Random Values",
	"CWE-295": "Improper Certificate Validation",
	"CWE-798": "Use of Hard-coded Credentials",
	"CWE-120": "Buffer Copy without Checking Size of Input (Buffer Overflow)",
	"CWE-401": "Missing Release of Memory after Effective Lifetime (Memory Leak)",
	"CWE-119": "Improper Restriction of Operations within Bounds of a Memory Buffer",
	"CWE-502": "Deserialization of Untrusted Data",
	"CWE-918": "Server-Side Request Forgery (SSRF)",
	"CWE-611": "Improper Restriction of XML External Entity Reference (XXE)",
	"CWE-362": "Concurrent Execution using Shared Resource with Improper Synchronization (Race Condition)",
	"CWE-269": "Improper Privilege Management",
	"CWE-90":  "LDAP Injection",
	"CWE-943": "Improper Neutralization of Special Elements in Data Query Logic (NoSQL Injection)",
	"CWE-676": "Use of Potentially Dangerous Function (Banned API)",
}

// DescriptionOf returns the human-readable description for a CWE id.
func DescriptionOf(cwe string) string {
	if d, ok := cweDescriptions[cwe]; ok {
		return d
	}
	return cwe + " - Security vulnerability"
}

var remediations = map[string]string{
	"sql-injection":            "Use parameterized queries or prepared statements instead of string concatenation.",
	"command-injection":        "Use safe APIs that do not invoke shells, or properly escape/validate all inputs.",
	"code-injection":           "Avoid using eval() or similar dynamic code execution. Use safe alternatives.",
	"xss":                      "Sanitize and encode all user input before rendering in HTML. Use Content Security Policy.",
	"path-traversal":           "Validate and sanitize file paths. Use allowlists for permitted directories.",
	"weak-crypto":              "Use modern, secure cryptographic algorithms (e.g., AES-256, SHA-256).",
	"insecure-randomness":      "Use cryptographically secure random number generators.",
	"hardcoded-secret":         "Move secrets to environment variables or a secrets management system.",
	"tls-issues":               "Enable certificate verification and use TLS 1.2 or higher.",
	"buffer-overflow":          "Use safe string functions (e.g., strncpy, snprintf) with proper bounds checking.",
	"memory-leak":              "Ensure all allocated memory is properly freed. Consider using smart pointers.",
	"insecure-deserialization": "Avoid deserializing untrusted data. Use safe serialization formats.",
	"ssrf":                     "Validate and allowlist URLs. Do not pass user input directly to HTTP requests.",
	"xxe":                      "Disable external entity processing in XML parsers.",
}

// RemediationFor returns static per-issue remediation advice, with a
// generic fallback for unmapped kinds.
func RemediationFor(issue string) string {
	if r, ok := remediations[issue]; ok {
		return r
	}
	return fmt.Sprintf("Review and fix the %s vulnerability following security best practices.", issue)
}

// References returns deterministic reference links for a CWE id.
func References(cwe string) []string {
	num := cwe
	if i := strings.Index(cwe, "-"); i >= 0 {
		num = cwe[i+1:]
	}
	return []string{
		fmt.Sprintf("https://cwe.mitre.org/data/definitions/%s.html", num),
		"https://owasp.org/www-community/vulnerabilities/",
	}
}

var bannedAPIs = map[string][]string{
	"python":     {"eval", "exec", "pickle.loads", "marshal.loads", "yaml.load"},
	"javascript": {"eval", "Function", "setTimeout(string)", "setInterval(string)"},
	"java":       {"Runtime.exec", "ObjectInputStream.readObject", "XMLDecoder.readObject"},
	"c":          {"gets", "strcpy", "strcat", "sprintf", "scanf"},
	"cpp":        {"gets", "strcpy", "strcat", "sprintf"},
	"php":        {"eval", "system", "exec", "shell_exec", "passthru"},
	"ruby":       {"eval", "instance_eval", "class_eval", "system", "exec"},
}

// BannedAPIs lists well-known dangerous functions for a language.
func BannedAPIs(language string) []string {
	return bannedAPIs[language]
}
