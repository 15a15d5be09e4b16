package fixer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/warden/pkg/types"
)

func TestTemplateProviderKnownIssue(t *testing.T) {
	p := NewTemplateProvider()

	replacement, ok, err := p.Fix(context.Background(), types.Finding{
		Language: "python",
		Issue:    "weak-crypto",
	})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hashlib.sha256(data)", replacement)
}

func TestTemplateProviderUnknownIssue(t *testing.T) {
	p := NewTemplateProvider()

	_, ok, err := p.Fix(context.Background(), types.Finding{
		Language: "python",
		Issue:    "sql-injection",
	})

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTemplateProviderUnknownLanguage(t *testing.T) {
	p := NewTemplateProvider()

	_, ok, err := p.Fix(context.Background(), types.Finding{
		Language: "cobol",
		Issue:    "weak-crypto",
	})

	require.NoError(t, err)
	assert.False(t, ok)
}

type stubProvider struct {
	fixes map[string]string
	err   error
}

func (s *stubProvider) Fix(_ context.Context, f types.Finding) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	r, ok := s.fixes[f.Issue]
	return r, ok, nil
}

func TestCollectSkipsFindingsWithoutFix(t *testing.T) {
	provider := &stubProvider{fixes: map[string]string{"code-injection": "ast.literal_eval(x)"}}
	findings := []types.Finding{
		{Issue: "code-injection"},
		{Issue: "sql-injection"},
		{Issue: "code-injection"},
	}

	fixes, err := Collect(context.Background(), provider, findings)

	require.NoError(t, err)
	assert.Len(t, fixes, 2)
	assert.Equal(t, "ast.literal_eval(x)", fixes[0])
	assert.Equal(t, "ast.literal_eval(x)", fixes[2])
}

func TestCollectPropagatesProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("backend unavailable")}

	_, err := Collect(context.Background(), provider, []types.Finding{{Issue: "code-injection"}})

	assert.Error(t, err)
}
