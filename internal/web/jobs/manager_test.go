package jobs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/warden/internal/scanner"
	"github.com/buemura/warden/pkg/types"
)

// vulnerableTree writes a small Python project with one known finding
// and returns its root.
func vulnerableTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := "import os\n\nresult = eval(user_input)\n"
	err := os.WriteFile(filepath.Join(dir, "app.py"), []byte(content), 0644)
	require.NoError(t, err)
	return dir
}

func TestCreate_ReturnsPendingJob(t *testing.T) {
	m := NewManager()
	root := vulnerableTree(t)

	job := m.Create(root, scanner.DefaultOptions())

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, StatusPending, job.Status)
	assert.Equal(t, root, job.Root)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestStartAndComplete(t *testing.T) {
	m := NewManager()
	root := vulnerableTree(t)

	job := m.Create(root, scanner.DefaultOptions())
	err := m.Start(job.ID)
	require.NoError(t, err)

	// Wait for completion.
	assert.Eventually(t, func() bool {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return job.Status == StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, StatusCompleted, job.Status)
	require.NotNil(t, job.Result)
	assert.Equal(t, root, job.Result.Root)
	assert.NotEmpty(t, job.Result.Findings)
	assert.False(t, job.CompletedAt.IsZero())
}

func TestStart_BadRootFailsJob(t *testing.T) {
	m := NewManager()

	job := m.Create("/nonexistent/path", scanner.DefaultOptions())
	err := m.Start(job.ID)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return job.Status == StatusFailed
	}, 5*time.Second, 10*time.Millisecond)

	assert.NotEmpty(t, job.Error)
	assert.Nil(t, job.Result)
}

func TestGet_ReturnsJob(t *testing.T) {
	m := NewManager()
	job := m.Create(vulnerableTree(t), scanner.DefaultOptions())

	got, err := m.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	m := NewManager()
	job := m.Create(vulnerableTree(t), scanner.DefaultOptions())

	got, err := m.Get(job.ID)
	require.NoError(t, err)

	// The caller's copy is decoupled from the stored job, so readers
	// never observe the scan goroutine's writes mid-marshal.
	got.Status = StatusFailed
	got.Error = "mutated by caller"

	again, err := m.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, again.Status)
	assert.Empty(t, again.Error)
}

func TestGet_NotFound(t *testing.T) {
	m := NewManager()
	_, err := m.Get("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestList_SortedByCreatedAtDesc(t *testing.T) {
	m := NewManager()
	root := vulnerableTree(t)

	// Override UUID generator for deterministic IDs.
	counter := 0
	origUUID := newUUID
	newUUID = func() string {
		counter++
		return fmt.Sprintf("job-%d", counter)
	}
	defer func() { newUUID = origUUID }()

	j1 := m.Create(root, scanner.DefaultOptions())
	time.Sleep(time.Millisecond)
	j2 := m.Create(root, scanner.DefaultOptions())

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, j2.ID, list[0].ID) // most recent first
	assert.Equal(t, j1.ID, list[1].ID)
}

func TestDelete_RemovesJob(t *testing.T) {
	m := NewManager()
	job := m.Create(vulnerableTree(t), scanner.DefaultOptions())

	err := m.Delete(job.ID)
	require.NoError(t, err)

	_, err = m.Get(job.ID)
	assert.Error(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	m := NewManager()
	err := m.Delete("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStart_InvalidJobID(t *testing.T) {
	m := NewManager()
	err := m.Start("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFindingCount(t *testing.T) {
	job := &Job{
		Result: &types.ScanResult{
			Findings: []types.Finding{{Issue: "code-injection"}, {Issue: "weak-crypto"}},
		},
	}
	assert.Equal(t, 2, job.FindingCount())

	assert.Equal(t, 0, (&Job{}).FindingCount())
}
