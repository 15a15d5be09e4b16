// Package catalog holds the static, language-keyed rule tables and the
// weakness lookups the rest of the pipeline reads. Everything here is
// immutable after init; there is no runtime mutation API.
package catalog

import (
	"regexp"
	"sort"

	"github.com/buemura/warden/pkg/types"
)

// Rule defines one detectable insecure pattern for a language.
type Rule struct {
	Pattern  *regexp.Regexp
	Issue    string
	Severity types.Severity
}

type rawRule struct {
	pattern  string
	issue    string
	severity types.Severity
}

var rulesByLanguage map[string][]Rule

func init() {
	rulesByLanguage = make(map[string][]Rule, len(rawRules))
	for lang, raws := range rawRules {
		rules := make([]Rule, len(raws))
		for i, r := range raws {
			rules[i] = Rule{
				// Rules match case-insensitively against raw line text.
				Pattern:  regexp.MustCompile("(?i)" + r.pattern),
				Issue:    r.issue,
				Severity: r.severity,
			}
		}
		rulesByLanguage[lang] = rules
	}
}

// RulesFor returns the ordered rule list for a language. TypeScript reuses
// the JavaScript rules; unknown languages get an empty list.
func RulesFor(language string) []Rule {
	if language == "typescript" {
		return rulesByLanguage["javascript"]
	}
	return rulesByLanguage[language]
}

// Languages returns the sorted list of languages with rule tables.
// TypeScript is included even though it shares the JavaScript rules.
func Languages() []string {
	langs := make([]string, 0, len(rulesByLanguage)+1)
	for lang := range rulesByLanguage {
		langs = append(langs, lang)
	}
	langs = append(langs, "typescript")
	sort.Strings(langs)
	return langs
}

var rawRules = map[string][]rawRule{
	"python": {
		// SQL injection
		{`execute\s*\(\s*["'].*%.*["']`, "sql-injection", types.SeverityHigh},
		{`execute\s*\(\s*["'].*\+.*["']`, "sql-injection", types.SeverityHigh},
		{`execute\s*\(\s*f["']`, "sql-injection", types.SeverityHigh},
		{`cursor\.execute\s*\(\s*["'].*%s`, "sql-injection", types.SeverityHigh},
		{`\.raw\s*\(\s*["'].*%`, "sql-injection", types.SeverityHigh},

		// Command injection
		{`os\.system\s*\(`, "command-injection", types.SeverityHigh},
		{`os\.popen\s*\(`, "command-injection", types.SeverityHigh},
		{`subprocess\.call\s*\(\s*["']`, "command-injection", types.SeverityHigh},
		{`subprocess\.run\s*\(\s*["']`, "command-injection", types.SeverityHigh},
		{`subprocess\.Popen\s*\(\s*["'].*shell\s*=\s*True`, "command-injection", types.SeverityCritical},

		// Code injection
		{`\beval\s*\(`, "code-injection", types.SeverityCritical},
		{`\bexec\s*\(`, "code-injection", types.SeverityCritical},
		{`compile\s*\(.*,.*["']exec["']`, "code-injection", types.SeverityHigh},

		// Path traversal
		{`open\s*\(\s*[^,]+\+`, "path-traversal", types.SeverityHigh},
		{`os\.path\.join\s*\(.*request`, "path-traversal", types.SeverityHigh},

		// Weak crypto
		{`hashlib\.md5\s*\(`, "weak-crypto", types.SeverityMedium},
		{`hashlib\.sha1\s*\(`, "weak-crypto", types.SeverityMedium},
		{`DES\.new\s*\(`, "weak-crypto", types.SeverityHigh},
		{`Blowfish\.new\s*\(`, "weak-crypto", types.SeverityMedium},

		// Insecure randomness
		{`random\.random\s*\(`, "insecure-randomness", types.SeverityMedium},
		{`random\.randint\s*\(`, "insecure-randomness", types.SeverityMedium},

		// Hardcoded secrets
		{`password\s*=\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},
		{`api_key\s*=\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},
		{`secret\s*=\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},
		{`token\s*=\s*["'][a-zA-Z0-9]{20,}["']`, "hardcoded-secret", types.SeverityHigh},

		// Insecure deserialization
		{`pickle\.loads?\s*\(`, "insecure-deserialization", types.SeverityHigh},
		{`yaml\.load\s*\([^,]+\)`, "insecure-deserialization", types.SeverityHigh},
		{`marshal\.loads?\s*\(`, "insecure-deserialization", types.SeverityHigh},

		// SSRF
		{`requests\.get\s*\(\s*[^,]*\+`, "ssrf", types.SeverityHigh},
		{`urllib\.request\.urlopen\s*\(\s*[^,]*\+`, "ssrf", types.SeverityHigh},

		// XXE
		{`etree\.parse\s*\(`, "xxe", types.SeverityMedium},
		{`xml\.dom\.minidom\.parse\s*\(`, "xxe", types.SeverityMedium},

		// TLS issues
		{`verify\s*=\s*False`, "tls-issues", types.SeverityHigh},
		{`ssl\._create_unverified_context`, "tls-issues", types.SeverityHigh},
	},

	"javascript": {
		// SQL injection
		{`query\s*\(\s*["'].*\+`, "sql-injection", types.SeverityHigh},
		{"query\\s*\\(\\s*`.*\\$\\{", "sql-injection", types.SeverityHigh},
		{`execute\s*\(\s*["'].*\+`, "sql-injection", types.SeverityHigh},

		// Command injection
		{`exec\s*\(\s*["']`, "command-injection", types.SeverityHigh},
		{`execSync\s*\(\s*["']`, "command-injection", types.SeverityHigh},
		{`spawn\s*\(\s*["'].*\+`, "command-injection", types.SeverityHigh},
		{`child_process\.exec\s*\(`, "command-injection", types.SeverityHigh},

		// Code injection
		{`\beval\s*\(`, "code-injection", types.SeverityCritical},
		{`new\s+Function\s*\(`, "code-injection", types.SeverityCritical},
		{`setTimeout\s*\(\s*["']`, "code-injection", types.SeverityHigh},
		{`setInterval\s*\(\s*["']`, "code-injection", types.SeverityHigh},

		// XSS
		{`innerHTML\s*=`, "xss", types.SeverityHigh},
		{`outerHTML\s*=`, "xss", types.SeverityHigh},
		{`document\.write\s*\(`, "xss", types.SeverityHigh},
		{`\.html\s*\(\s*[^)]*\+`, "xss", types.SeverityHigh},

		// Path traversal
		{`fs\.readFileSync\s*\(\s*[^,]*\+`, "path-traversal", types.SeverityHigh},
		{`fs\.readFile\s*\(\s*[^,]*\+`, "path-traversal", types.SeverityHigh},
		{`path\.join\s*\(.*req\.`, "path-traversal", types.SeverityHigh},

		// Hardcoded secrets
		{`password\s*[=:]\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},
		{`apiKey\s*[=:]\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},
		{`secret\s*[=:]\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},
		{`token\s*[=:]\s*["'][a-zA-Z0-9]{20,}["']`, "hardcoded-secret", types.SeverityHigh},

		// Insecure randomness
		{`Math\.random\s*\(`, "insecure-randomness", types.SeverityMedium},

		// SSRF
		{`fetch\s*\(\s*[^)]*\+`, "ssrf", types.SeverityHigh},
		{`axios\.\w+\s*\(\s*[^)]*\+`, "ssrf", types.SeverityHigh},

		// Prototype pollution
		{`Object\.assign\s*\(\s*\{\}`, "unsafe-code", types.SeverityMedium},
		{`\[.*\]\s*=.*req\.`, "unsafe-code", types.SeverityHigh},
	},

	"java": {
		// SQL injection
		{`executeQuery\s*\(\s*["'].*\+`, "sql-injection", types.SeverityHigh},
		{`executeUpdate\s*\(\s*["'].*\+`, "sql-injection", types.SeverityHigh},
		{`createQuery\s*\(\s*["'].*\+`, "sql-injection", types.SeverityHigh},
		{`Statement\s+\w+\s*=.*createStatement`, "sql-injection", types.SeverityMedium},

		// Command injection
		{`Runtime\.getRuntime\(\)\.exec\s*\(`, "command-injection", types.SeverityHigh},
		{`ProcessBuilder\s*\(\s*["']`, "command-injection", types.SeverityHigh},

		// Code injection
		{`ScriptEngine.*eval\s*\(`, "code-injection", types.SeverityCritical},
		{`Interpreter.*eval\s*\(`, "code-injection", types.SeverityCritical},

		// Path traversal
		{`new\s+File\s*\(\s*[^)]*\+`, "path-traversal", types.SeverityHigh},
		{`Paths\.get\s*\(\s*[^)]*\+`, "path-traversal", types.SeverityHigh},

		// XSS
		{`\.getParameter\s*\([^)]+\)`, "xss", types.SeverityMedium},
		{`response\.getWriter\(\)\.print`, "xss", types.SeverityMedium},

		// Weak crypto
		{`Cipher\.getInstance\s*\(\s*["']DES`, "weak-crypto", types.SeverityHigh},
		{`MessageDigest\.getInstance\s*\(\s*["']MD5`, "weak-crypto", types.SeverityMedium},
		{`MessageDigest\.getInstance\s*\(\s*["']SHA-1`, "weak-crypto", types.SeverityMedium},

		// Hardcoded secrets
		{`password\s*=\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},
		{`apiKey\s*=\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},

		// Insecure deserialization
		{`ObjectInputStream.*readObject\s*\(`, "insecure-deserialization", types.SeverityHigh},
		{`XMLDecoder.*readObject\s*\(`, "insecure-deserialization", types.SeverityHigh},

		// XXE
		{`DocumentBuilder.*parse\s*\(`, "xxe", types.SeverityMedium},
		{`SAXParser.*parse\s*\(`, "xxe", types.SeverityMedium},

		// TLS issues
		{`TrustAllCertificates`, "tls-issues", types.SeverityHigh},
		{`setHostnameVerifier.*ALLOW_ALL`, "tls-issues", types.SeverityHigh},
	},

	"go": {
		// SQL injection
		{`db\.Query\s*\(\s*["'].*\+`, "sql-injection", types.SeverityHigh},
		{`db\.Exec\s*\(\s*["'].*\+`, "sql-injection", types.SeverityHigh},
		{`fmt\.Sprintf\s*\(\s*["'].*SELECT`, "sql-injection", types.SeverityHigh},

		// Command injection
		{`exec\.Command\s*\(`, "command-injection", types.SeverityHigh},
		{`os/exec\.Command\s*\(`, "command-injection", types.SeverityHigh},

		// Path traversal
		{`filepath\.Join\s*\(.*r\.URL`, "path-traversal", types.SeverityHigh},
		{`os\.Open\s*\(\s*[^)]*\+`, "path-traversal", types.SeverityHigh},

		// Hardcoded secrets
		{`password\s*:?=\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},
		{`apiKey\s*:?=\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},

		// TLS issues
		{`InsecureSkipVerify:\s*true`, "tls-issues", types.SeverityHigh},
	},

	"rust": {
		// Command injection
		{`Command::new\s*\(`, "command-injection", types.SeverityMedium},
		{`\.arg\s*\(\s*&?format!`, "command-injection", types.SeverityHigh},

		// Unsafe code
		{`unsafe\s*\{`, "unsafe-code", types.SeverityMedium},

		// Hardcoded secrets
		{`password\s*=\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},
	},

	"php": {
		// SQL injection
		{`mysql_query\s*\(\s*["'].*\$`, "sql-injection", types.SeverityHigh},
		{`mysqli_query\s*\([^,]+,\s*["'].*\$`, "sql-injection", types.SeverityHigh},
		{`\->query\s*\(\s*["'].*\$`, "sql-injection", types.SeverityHigh},

		// Command injection
		{`system\s*\(`, "command-injection", types.SeverityHigh},
		{`exec\s*\(`, "command-injection", types.SeverityHigh},
		{`shell_exec\s*\(`, "command-injection", types.SeverityHigh},
		{`passthru\s*\(`, "command-injection", types.SeverityHigh},
		{"`.*\\$", "command-injection", types.SeverityHigh},

		// Code injection
		{`\beval\s*\(`, "code-injection", types.SeverityCritical},
		{`assert\s*\(\s*\$`, "code-injection", types.SeverityHigh},
		{`create_function\s*\(`, "code-injection", types.SeverityHigh},

		// Path traversal
		{`include\s*\(\s*\$`, "path-traversal", types.SeverityHigh},
		{`require\s*\(\s*\$`, "path-traversal", types.SeverityHigh},
		{`file_get_contents\s*\(\s*\$`, "path-traversal", types.SeverityHigh},

		// XSS
		{`echo\s+\$_`, "xss", types.SeverityHigh},
		{`print\s+\$_`, "xss", types.SeverityHigh},

		// Hardcoded secrets
		{`\$password\s*=\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},
	},

	"ruby": {
		// SQL injection
		{`\.where\s*\(\s*["'].*#\{`, "sql-injection", types.SeverityHigh},
		{`\.execute\s*\(\s*["'].*#\{`, "sql-injection", types.SeverityHigh},

		// Command injection
		{`system\s*\(`, "command-injection", types.SeverityHigh},
		{`exec\s*\(`, "command-injection", types.SeverityHigh},
		{"`.*#\\{", "command-injection", types.SeverityHigh},
		{`%x\[.*#\{`, "command-injection", types.SeverityHigh},

		// Code injection
		{`\beval\s*\(`, "code-injection", types.SeverityCritical},
		{`instance_eval\s*\(`, "code-injection", types.SeverityHigh},
		{`class_eval\s*\(`, "code-injection", types.SeverityHigh},

		// Path traversal
		{`File\.read\s*\(\s*[^)]*\+`, "path-traversal", types.SeverityHigh},
		{`File\.open\s*\(\s*[^)]*\+`, "path-traversal", types.SeverityHigh},

		// Hardcoded secrets
		{`password\s*=\s*["'][^"']+["']`, "hardcoded-secret", types.SeverityHigh},
	},

	"c": {
		// Buffer overflow
		{`strcpy\s*\(`, "buffer-overflow", types.SeverityHigh},
		{`strcat\s*\(`, "buffer-overflow", types.SeverityHigh},
		{`sprintf\s*\(`, "buffer-overflow", types.SeverityHigh},
		{`gets\s*\(`, "buffer-overflow", types.SeverityCritical},
		{`scanf\s*\(\s*["']%s`, "buffer-overflow", types.SeverityHigh},

		// Command injection
		{`system\s*\(`, "command-injection", types.SeverityHigh},
		{`popen\s*\(`, "command-injection", types.SeverityHigh},
		{`execl\s*\(`, "command-injection", types.SeverityHigh},

		// Memory issues
		{`malloc\s*\([^)]+\)[^;]*;[^f]*$`, "memory-leak", types.SeverityMedium},
		{`free\s*\([^)]+\);.*free\s*\(`, "unsafe-code", types.SeverityHigh},
	},

	"cpp": {
		// Buffer overflow
		{`strcpy\s*\(`, "buffer-overflow", types.SeverityHigh},
		{`strcat\s*\(`, "buffer-overflow", types.SeverityHigh},
		{`sprintf\s*\(`, "buffer-overflow", types.SeverityHigh},
		{`gets\s*\(`, "buffer-overflow", types.SeverityCritical},

		// Command injection
		{`system\s*\(`, "command-injection", types.SeverityHigh},
		{`popen\s*\(`, "command-injection", types.SeverityHigh},

		// Unsafe operations
		{`reinterpret_cast\s*<`, "unsafe-code", types.SeverityMedium},
		{`const_cast\s*<`, "unsafe-code", types.SeverityMedium},
	},
}
