package sync

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"compass/internal/config"
	"compass/internal/storage"
)

func skipIfNoGit(t *testing.T) {
	t.Helper()
	if !IsGitInstalled() {
		t.Skip("git not installed")
	}
}

// createTestDir returns a temp data dir with a commit identity set through
// the environment, leaving the developer's git config alone.
func createTestDir(t *testing.T) string {
	t.Helper()
	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
	return t.TempDir()
}

func initRepo(t *testing.T, cfg *Config) (*GitSync, string) {
	t.Helper()
	skipIfNoGit(t)

	dir := createTestDir(t)
	gs := New(dir, cfg)
	if err := gs.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	return gs, dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func git(t *testing.T, gs *GitSync, args ...string) string {
	t.Helper()
	out, err := gs.runGitTimeout(defaultGitTimeout, args...)
	if err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
	return trimOutput(out)
}

func TestFromConfig(t *testing.T) {
	c := FromConfig(config.SyncConfig{Enabled: true, AutoPush: true, CommitMessage: "x"})
	if !c.Enabled || !c.AutoPush || c.AutoCommit || c.CommitMessage != "x" {
		t.Errorf("FromConfig() = %+v", c)
	}
	if d := DefaultConfig(); d.Enabled || !d.AutoCommit || d.CommitMessage != "auto" {
		t.Errorf("DefaultConfig() = %+v", d)
	}
}

func TestGitSync_Init(t *testing.T) {
	skipIfNoGit(t)

	dir := createTestDir(t)
	gs := New(dir, &Config{Enabled: true, AutoCommit: true})

	if gs.IsRepo() {
		t.Error("Expected IsRepo() to return false before init")
	}
	if err := gs.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if !gs.IsRepo() {
		t.Error("Expected IsRepo() to return true after init")
	}

	content, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatalf("Failed to read .gitignore: %v", err)
	}
	for _, pattern := range []string{"backups/", "logs/", "*.bak", "*.corrupt.*"} {
		if !strings.Contains(string(content), pattern) {
			t.Errorf("Expected .gitignore to contain %q", pattern)
		}
	}
}

func TestGitSync_InitCommitsExistingData(t *testing.T) {
	skipIfNoGit(t)

	dir := createTestDir(t)
	if _, err := storage.New(dir); err != nil {
		t.Fatal(err)
	}
	gs := New(dir, &Config{Enabled: true})
	if err := gs.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	tracked := git(t, gs, "ls-files")
	if !strings.Contains(tracked, storage.CalendarFile) || !strings.Contains(tracked, storage.InsightsFile) {
		t.Errorf("tracked files = %q", tracked)
	}
}

func TestGitSync_IsRepo(t *testing.T) {
	dir := createTestDir(t)
	gs := New(dir, &Config{Enabled: true})

	if gs.IsRepo() {
		t.Error("Expected IsRepo() to return false for non-repo")
	}
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0700); err != nil {
		t.Fatalf("Failed to create .git dir: %v", err)
	}
	if !gs.IsRepo() {
		t.Error("Expected IsRepo() to return true after creating .git")
	}
}

func TestGitSync_Commit(t *testing.T) {
	gs, dir := initRepo(t, &Config{Enabled: true, AutoCommit: true, CommitMessage: "auto"})

	writeFile(t, dir, storage.CalendarFile, `{}`)
	if err := gs.Commit([]string{storage.CalendarFile}); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	if got := git(t, gs, "log", "-1", "--format=%s"); got != "Update emotion calendar" {
		t.Errorf("commit message = %q", got)
	}
}

func TestGitSync_CommitMultipleFiles(t *testing.T) {
	gs, dir := initRepo(t, &Config{Enabled: true, AutoCommit: true, CommitMessage: "auto"})

	files := []string{storage.CalendarFile, storage.LettersFile}
	for _, f := range files {
		writeFile(t, dir, f, `{}`)
	}
	if err := gs.Commit(files); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	if got := git(t, gs, "log", "-1", "--format=%s"); got != "Update 2 files" {
		t.Errorf("commit message = %q", got)
	}
}

func TestGitSync_CommitNoChanges(t *testing.T) {
	gs, _ := initRepo(t, &Config{Enabled: true})

	if err := gs.Commit([]string{}); err != nil {
		t.Errorf("Commit() with no files should not error: %v", err)
	}
	before := git(t, gs, "rev-list", "--count", "HEAD")
	if err := gs.Commit([]string{".gitignore"}); err != nil {
		t.Errorf("Commit() of unchanged file should not error: %v", err)
	}
	if after := git(t, gs, "rev-list", "--count", "HEAD"); after != before {
		t.Errorf("commit count %s -> %s for unchanged file", before, after)
	}
}

func TestGitSync_CommitAll(t *testing.T) {
	gs, dir := initRepo(t, &Config{Enabled: true})

	writeFile(t, dir, storage.MoodLogFile, "[2024-03-10 09:00:00] ok\n")
	if err := gs.CommitAll(); err != nil {
		t.Fatalf("CommitAll() error: %v", err)
	}
	if got := git(t, gs, "log", "-1", "--format=%s"); got != "Update journal" {
		t.Errorf("commit message = %q", got)
	}
}

func TestGitSync_Status(t *testing.T) {
	skipIfNoGit(t)

	dir := createTestDir(t)
	gs := New(dir, &Config{Enabled: true})

	status, err := gs.Status()
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if status.IsRepo {
		t.Error("Expected IsRepo=false for non-repo")
	}

	if err := gs.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	status, err = gs.Status()
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if !status.IsRepo || status.Branch == "" || status.HasRemote {
		t.Errorf("status = %+v", status)
	}
	if status.LastCommitAt == nil {
		t.Error("Expected LastCommitAt after init")
	}
}

func TestGitSync_StatusWithChanges(t *testing.T) {
	gs, dir := initRepo(t, &Config{Enabled: true})

	writeFile(t, dir, "test.json", `{}`)
	status, err := gs.Status()
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if !status.HasChanges {
		t.Error("Expected HasChanges=true with uncommitted file")
	}
}

func TestGitSync_AddRemote(t *testing.T) {
	gs, _ := initRepo(t, &Config{Enabled: true})

	if err := gs.AddRemote("origin", "https://example.com/a.git"); err != nil {
		t.Fatalf("AddRemote() error: %v", err)
	}
	if err := gs.AddRemote("origin", "https://example.com/b.git"); err != nil {
		t.Fatalf("AddRemote() update error: %v", err)
	}
	if got := git(t, gs, "remote", "get-url", "origin"); got != "https://example.com/b.git" {
		t.Errorf("origin = %q", got)
	}
	if err := gs.AddRemote("", "x"); err == nil {
		t.Error("Expected error for empty remote name")
	}
	if err := gs.AddRemote("origin", ""); err == nil {
		t.Error("Expected error for empty URL")
	}

	status, err := gs.Status()
	if err != nil {
		t.Fatal(err)
	}
	if !status.HasRemote || status.RemoteName != "origin" {
		t.Errorf("status = %+v", status)
	}
}

func TestGitSync_Debounce(t *testing.T) {
	gs, dir := initRepo(t, &Config{Enabled: true, AutoCommit: true})
	gs.debounceDuration = 100 * time.Millisecond

	files := []string{storage.CalendarFile, storage.LettersFile, storage.MoodLogFile}
	for _, f := range files {
		writeFile(t, dir, f, `{}`)
	}
	for _, f := range files {
		gs.OnFileSaved(f)
	}

	time.Sleep(400 * time.Millisecond)

	if got := git(t, gs, "rev-list", "--count", "HEAD"); got != "2" {
		t.Errorf("Expected 2 commits (init + debounced), got: %s", got)
	}
}

func TestGitSync_StorageHookWritesSemanticCommit(t *testing.T) {
	gs, dir := initRepo(t, &Config{Enabled: true, AutoCommit: true, CommitMessage: "auto"})
	gs.debounceDuration = 10 * time.Second

	store, err := storage.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	store.SetNowFunc(func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local) })
	store.SetOnSaveWithContext(gs.OnFileSavedWithContext)

	if _, err := store.RecordEmotion(storage.EmotionCalm, "slow morning", ""); err != nil {
		t.Fatal(err)
	}
	gs.Flush()

	if got := git(t, gs, "log", "-1", "--format=%s"); got != "Record emotion: 2024-03-10 calm" {
		t.Errorf("commit message = %q", got)
	}
}

func TestGitSync_OnFileSavedDisabled(t *testing.T) {
	gs, dir := initRepo(t, &Config{Enabled: false, AutoCommit: true})

	writeFile(t, dir, storage.CalendarFile, `{}`)
	gs.OnFileSaved(storage.CalendarFile)
	time.Sleep(50 * time.Millisecond)

	status, err := gs.Status()
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if !status.HasChanges {
		t.Error("Expected changes to remain uncommitted when sync is disabled")
	}
}

func TestGitSync_CustomCommitMessage(t *testing.T) {
	customMsg := "Journal sync"
	gs, dir := initRepo(t, &Config{Enabled: true, CommitMessage: customMsg})

	writeFile(t, dir, storage.CalendarFile, `{}`)
	if err := gs.Commit([]string{storage.CalendarFile}); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if got := git(t, gs, "log", "-1", "--format=%s"); got != customMsg {
		t.Errorf("Expected commit message %q, got: %s", customMsg, got)
	}
}

func TestGitSync_CommitNotARepo(t *testing.T) {
	gs := New(createTestDir(t), &Config{Enabled: true})
	if err := gs.Commit([]string{storage.CalendarFile}); err == nil {
		t.Error("Expected error when committing to non-repo")
	}
}

func TestGitSync_PullPushNoRemote(t *testing.T) {
	gs, _ := initRepo(t, &Config{Enabled: true})

	if err := gs.Pull(); err == nil {
		t.Error("Expected error when pulling without remote")
	}
	if err := gs.Push(); err == nil {
		t.Error("Expected error when pushing without remote")
	}
}

func TestGitSync_Flush(t *testing.T) {
	gs, dir := initRepo(t, &Config{Enabled: true, AutoCommit: true})
	gs.debounceDuration = 10 * time.Second

	writeFile(t, dir, storage.CalendarFile, `{}`)
	gs.OnFileSaved(storage.CalendarFile)
	gs.Flush()

	status, err := gs.Status()
	if err != nil {
		t.Fatalf("Status() error: %v", err)
	}
	if status.HasChanges {
		t.Error("Expected no changes after Flush()")
	}
}

func TestGenerateCommitMessage(t *testing.T) {
	gs := New("", &Config{CommitMessage: "auto"})

	tests := []struct {
		files    []string
		expected string
	}{
		{[]string{storage.CalendarFile}, "Update emotion calendar"},
		{[]string{storage.LettersFile}, "Update letters"},
		{[]string{storage.MoodLogFile}, "Update mood log"},
		{[]string{"other.json"}, "Update other.json"},
		{[]string{storage.CalendarFile, storage.LettersFile}, "Update 2 files"},
	}
	for _, tc := range tests {
		if got := gs.generateCommitMessage(tc.files); got != tc.expected {
			t.Errorf("generateCommitMessage(%v) = %q, want %q", tc.files, got, tc.expected)
		}
	}
}

func TestGenerateCommitMessageFromContexts(t *testing.T) {
	gs := New("", &Config{CommitMessage: "auto"})

	record := storage.SaveContext{Filename: storage.CalendarFile, Operation: "record", ItemType: "emotion", ItemName: "2024-03-10 calm"}
	write := storage.SaveContext{Filename: storage.LettersFile, Operation: "write", ItemType: "letter", ItemName: "1 month"}
	read := storage.SaveContext{Filename: storage.LettersFile, Operation: "read", ItemType: "letter"}
	note := storage.SaveContext{Filename: storage.MoodLogFile, Operation: "append", ItemType: "note", ItemName: "long day"}
	imp := storage.SaveContext{Filename: storage.CalendarFile, Operation: "import", ItemType: "emotion", ItemName: "12 days"}

	tests := []struct {
		name     string
		contexts []storage.SaveContext
		expected string
	}{
		{"record", []storage.SaveContext{record}, "Record emotion: 2024-03-10 calm"},
		{"write", []storage.SaveContext{write}, "Write letter: 1 month"},
		{"read", []storage.SaveContext{read}, "Read letter"},
		{"note", []storage.SaveContext{note}, "Add note: long day"},
		{"import", []storage.SaveContext{imp}, "Import emotion: 12 days"},
		{"same op", []storage.SaveContext{note, note, note}, "Add 3 notes"},
		{"mixed", []storage.SaveContext{record, write}, "Update journal: 2 changes"},
		{"none", nil, "Update emotion calendar"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := gs.generateCommitMessageFromContexts([]string{storage.CalendarFile}, tc.contexts)
			if got != tc.expected {
				t.Errorf("got %q, want %q", got, tc.expected)
			}
		})
	}

	custom := New("", &Config{CommitMessage: "sync"})
	if got := custom.generateCommitMessageFromContexts(nil, []storage.SaveContext{record}); got != "sync" {
		t.Errorf("custom message = %q", got)
	}
}

func TestEnvWithOverrides(t *testing.T) {
	got := envWithOverrides([]string{"A=1", "GIT_TERMINAL_PROMPT=1", "weird"}, map[string]string{"GIT_TERMINAL_PROMPT": "0", "B": "2"})
	want := map[string]bool{"A=1": true, "GIT_TERMINAL_PROMPT=0": true, "weird": true, "B=2": true}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for _, kv := range got {
		if !want[kv] {
			t.Errorf("unexpected %q", kv)
		}
	}
}
