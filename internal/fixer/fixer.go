// Package fixer defines the collaborator interface that supplies
// replacement code for findings. An absent fix is a normal outcome,
// not an error.
package fixer

import (
	"context"

	"github.com/buemura/warden/pkg/types"
)

// Provider generates replacement code for a finding. ok is false when no
// fix is available; err is reserved for provider-level failures.
type Provider interface {
	Fix(ctx context.Context, finding types.Finding) (replacement string, ok bool, err error)
}

// TemplateProvider serves canned single-line replacements for issue
// kinds with an uncontroversial mechanical fix. Everything else reports
// no fix available.
type TemplateProvider struct{}

// NewTemplateProvider creates a TemplateProvider.
func NewTemplateProvider() *TemplateProvider {
	return &TemplateProvider{}
}

var templates = map[string]map[string]string{
	"python": {
		"weak-crypto":         "hashlib.sha256(data)",
		"insecure-randomness": "secrets.token_hex(16)",
		"tls-issues":          "verify=True",
	},
	"javascript": {
		"insecure-randomness": "crypto.randomBytes(16)",
	},
	"go": {
		"tls-issues": "InsecureSkipVerify: false,",
	},
}

// Fix returns a template replacement when one exists for the finding's
// language and issue kind.
func (p *TemplateProvider) Fix(_ context.Context, finding types.Finding) (string, bool, error) {
	byIssue, ok := templates[finding.Language]
	if !ok {
		return "", false, nil
	}
	replacement, ok := byIssue[finding.Issue]
	return replacement, ok, nil
}

// Collect asks the provider for a fix for each finding and returns the
// available replacements keyed by finding index, ready for the patcher's
// batch application.
func Collect(ctx context.Context, provider Provider, findings []types.Finding) (map[int]string, error) {
	fixes := make(map[int]string)
	for i, f := range findings {
		replacement, ok, err := provider.Fix(ctx, f)
		if err != nil {
			return fixes, err
		}
		if ok {
			fixes[i] = replacement
		}
	}
	return fixes, nil
}
