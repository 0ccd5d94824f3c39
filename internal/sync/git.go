// Package sync versions the journal's data directory with git: debounced
// auto-commits with messages derived from what was saved, plus pull and push.
package sync

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	gosync "sync"
	"time"

	"compass/internal/config"
	"compass/internal/fsutil"
	"compass/internal/logger"
	"compass/internal/storage"
)

type Config struct {
	Enabled       bool
	AutoCommit    bool
	AutoPush      bool
	PullOnStartup bool
	CommitMessage string // "auto" or a fixed message
}

func DefaultConfig() Config {
	return Config{AutoCommit: true, CommitMessage: "auto"}
}

// FromConfig converts the user's sync settings.
func FromConfig(c config.SyncConfig) *Config {
	return &Config{
		Enabled:       c.Enabled,
		AutoCommit:    c.AutoCommit,
		AutoPush:      c.AutoPush,
		PullOnStartup: c.PullOnStartup,
		CommitMessage: c.CommitMessage,
	}
}

type Status struct {
	IsRepo       bool
	HasRemote    bool
	RemoteName   string
	RemoteURL    string
	Branch       string
	Ahead        int
	Behind       int
	HasChanges   bool
	LastCommitAt *time.Time
}

// GitSync manages git operations for the data directory.
type GitSync struct {
	dataDir string
	config  *Config

	pendingFiles    map[string]bool
	pendingContexts []storage.SaveContext
	commitTimer     *time.Timer
	mu              gosync.Mutex

	// Serializes git invocations; git holds index.lock while running.
	opMu gosync.Mutex

	debounceDuration time.Duration
}

func New(dataDir string, cfg *Config) *GitSync {
	return &GitSync{
		dataDir:          dataDir,
		config:           cfg,
		pendingFiles:     make(map[string]bool),
		debounceDuration: 2 * time.Second,
	}
}

func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

func (g *GitSync) IsRepo() bool {
	info, err := os.Stat(filepath.Join(g.dataDir, ".git"))
	return err == nil && info.IsDir()
}

const (
	defaultGitTimeout  = 10 * time.Second
	pullPushGitTimeout = 60 * time.Second
	commitGitTimeout   = 15 * time.Second
)

const gitignoreContent = `# compass data repository
backups/
logs/
*.bak
*.corrupt.*
*.tmp-*
`

const notRepoHint = "not a git repository - run 'compass sync --init' first"

// Init creates the repository with an ignore file for backups, logs and
// recovery leftovers.
func (g *GitSync) Init() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	if !IsGitInstalled() {
		return fmt.Errorf("git is not installed")
	}

	if _, err := g.runGitTimeout(commitGitTimeout, "init"); err != nil {
		return fmt.Errorf("failed to initialize git repository: %w", err)
	}

	if err := fsutil.WriteFileAtomic(filepath.Join(g.dataDir, ".gitignore"), []byte(gitignoreContent), 0600); err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	if _, err := g.runGitTimeout(defaultGitTimeout, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}
	if _, err := g.runGitTimeout(commitGitTimeout, "-c", "commit.gpgsign=false", "commit", "-m", "Initialize compass journal"); err != nil {
		if !isGitNothingToCommit(err) {
			return fmt.Errorf("failed to create initial commit: %w", err)
		}
	}
	return nil
}

func (g *GitSync) Status() (*Status, error) {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	status := &Status{IsRepo: g.IsRepo()}
	if !status.IsRepo {
		return status, nil
	}

	if branch, err := g.runGitTimeout(defaultGitTimeout, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		status.Branch = trimOutput(branch)
	}

	// First line looks like "origin\tgit@host:me/journal.git (fetch)".
	if remotes, err := g.runGitTimeout(defaultGitTimeout, "remote", "-v"); err == nil && trimOutput(remotes) != "" {
		status.HasRemote = true
		first, _, _ := strings.Cut(trimOutput(remotes), "\n")
		if parts := strings.Fields(first); len(parts) >= 2 {
			status.RemoteName = parts[0]
			status.RemoteURL = parts[1]
		}
	}

	if out, err := g.runGitTimeout(defaultGitTimeout, "status", "--porcelain"); err == nil {
		status.HasChanges = trimOutput(out) != ""
	}

	if status.HasRemote && status.Branch != "" {
		remote := status.RemoteName + "/" + status.Branch
		if out, err := g.runGitTimeout(defaultGitTimeout, "rev-list", "--left-right", "--count", status.Branch+"..."+remote); err == nil {
			fmt.Sscanf(trimOutput(out), "%d\t%d", &status.Ahead, &status.Behind)
		}
	}

	if out, err := g.runGitTimeout(defaultGitTimeout, "log", "-1", "--format=%ci"); err == nil && trimOutput(out) != "" {
		if t, err := time.Parse("2006-01-02 15:04:05 -0700", trimOutput(out)); err == nil {
			status.LastCommitAt = &t
		}
	}

	return status, nil
}

// Commit stages and commits the given files with a file-based message.
func (g *GitSync) Commit(files []string) error {
	return g.commitWithContexts(files, nil)
}

// CommitAll stages and commits every change in the data directory.
func (g *GitSync) CommitAll() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	if !g.IsRepo() {
		return fmt.Errorf(notRepoHint)
	}
	if _, err := g.runGitTimeout(defaultGitTimeout, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}
	return g.commitStaged("Update journal")
}

// Pull rebases local commits onto the remote.
func (g *GitSync) Pull() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	if err := g.requireRemote(); err != nil {
		return err
	}
	if _, err := g.runGitTimeout(pullPushGitTimeout, "pull", "--rebase"); err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}
	return nil
}

func (g *GitSync) Push() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()
	return g.push()
}

func (g *GitSync) push() error {
	if err := g.requireRemote(); err != nil {
		return err
	}
	if _, err := g.runGitTimeout(pullPushGitTimeout, "push"); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	return nil
}

func (g *GitSync) requireRemote() error {
	if !g.IsRepo() {
		return fmt.Errorf("not a git repository")
	}
	remotes, err := g.runGitTimeout(defaultGitTimeout, "remote")
	if err != nil || trimOutput(remotes) == "" {
		return fmt.Errorf("no remote configured - add one with 'compass sync --remote <url>'")
	}
	return nil
}

// AddRemote adds name, or repoints it when it already exists.
func (g *GitSync) AddRemote(name, url string) error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	if !g.IsRepo() {
		return fmt.Errorf(notRepoHint)
	}
	if name == "" {
		return fmt.Errorf("remote name is required")
	}
	if url == "" {
		return fmt.Errorf("remote URL is required")
	}

	remotes, _ := g.runGitTimeout(defaultGitTimeout, "remote")
	for _, line := range strings.Split(trimOutput(remotes), "\n") {
		if strings.TrimSpace(line) == name {
			if _, err := g.runGitTimeout(defaultGitTimeout, "remote", "set-url", name, url); err != nil {
				return fmt.Errorf("failed to update remote: %w", err)
			}
			return nil
		}
	}

	if _, err := g.runGitTimeout(defaultGitTimeout, "remote", "add", name, url); err != nil {
		return fmt.Errorf("failed to add remote: %w", err)
	}
	return nil
}

// OnFileSaved queues filename for the next debounced commit.
func (g *GitSync) OnFileSaved(filename string) {
	g.enqueue(storage.SaveContext{Filename: filename})
}

// OnFileSavedWithContext queues a save together with what it was, so the
// commit can read "Record emotion: 2024-03-10 calm".
func (g *GitSync) OnFileSavedWithContext(ctx storage.SaveContext) {
	g.enqueue(ctx)
}

func (g *GitSync) enqueue(ctx storage.SaveContext) {
	if !g.config.Enabled || !g.config.AutoCommit || !g.IsRepo() {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.pendingFiles[ctx.Filename] = true
	if ctx.Operation != "" {
		g.pendingContexts = append(g.pendingContexts, ctx)
	}

	if g.commitTimer != nil {
		g.commitTimer.Stop()
	}
	g.commitTimer = time.AfterFunc(g.debounceDuration, g.flushCommit)
}

// Flush commits pending saves now instead of waiting out the debounce.
func (g *GitSync) Flush() {
	g.mu.Lock()
	if g.commitTimer != nil {
		g.commitTimer.Stop()
		g.commitTimer = nil
	}
	g.mu.Unlock()

	g.flushCommit()
}

func (g *GitSync) flushCommit() {
	g.mu.Lock()
	files := make([]string, 0, len(g.pendingFiles))
	for f := range g.pendingFiles {
		files = append(files, f)
	}
	contexts := g.pendingContexts
	g.pendingFiles = make(map[string]bool)
	g.pendingContexts = nil
	g.mu.Unlock()

	if len(files) == 0 {
		return
	}
	if err := g.commitWithContexts(files, contexts); err != nil {
		logger.Warn("auto-commit failed", "files", files, "err", err)
	}
}

func (g *GitSync) commitWithContexts(files []string, contexts []storage.SaveContext) error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	if !g.IsRepo() {
		return fmt.Errorf(notRepoHint)
	}
	if len(files) == 0 {
		return nil
	}

	args := append([]string{"add", "--"}, files...)
	if _, err := g.runGitTimeout(defaultGitTimeout, args...); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}

	if err := g.commitStaged(g.generateCommitMessageFromContexts(files, contexts)); err != nil {
		return err
	}

	if g.config.AutoPush {
		if err := g.push(); err != nil {
			return fmt.Errorf("committed locally, but push failed: %w", err)
		}
	}
	return nil
}

// commitStaged commits the index, doing nothing when it is clean. Callers
// hold opMu.
func (g *GitSync) commitStaged(message string) error {
	staged, err := g.runGitTimeout(defaultGitTimeout, "diff", "--cached", "--name-only")
	if err != nil {
		return fmt.Errorf("failed to check staged changes: %w", err)
	}
	if trimOutput(staged) == "" {
		return nil
	}
	if _, err := g.runGitTimeout(commitGitTimeout, "-c", "commit.gpgsign=false", "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	logger.Debug("committed", "message", message)
	return nil
}

func (g *GitSync) customMessage() (string, bool) {
	m := g.config.CommitMessage
	return m, m != "" && m != "auto"
}

func (g *GitSync) generateCommitMessage(files []string) string {
	if m, ok := g.customMessage(); ok {
		return m
	}

	if len(files) == 1 {
		switch files[0] {
		case storage.CalendarFile:
			return "Update emotion calendar"
		case storage.LettersFile:
			return "Update letters"
		case storage.MoodLogFile:
			return "Update mood log"
		}
		return fmt.Sprintf("Update %s", files[0])
	}
	return fmt.Sprintf("Update %d files", len(files))
}

// generateCommitMessageFromContexts produces messages such as
// "Write letter: 1 month" or "Record 3 emotions".
func (g *GitSync) generateCommitMessageFromContexts(files []string, contexts []storage.SaveContext) string {
	if m, ok := g.customMessage(); ok {
		return m
	}

	switch len(contexts) {
	case 0:
		return g.generateCommitMessage(files)
	case 1:
		return formatSemanticMessage(contexts[0])
	}

	first := contexts[0]
	for _, ctx := range contexts[1:] {
		if ctx.Operation != first.Operation || ctx.ItemType != first.ItemType {
			return fmt.Sprintf("Update journal: %d changes", len(contexts))
		}
	}
	return fmt.Sprintf("%s %d %ss", capitalizeFirst(verbFor(first.Operation)), len(contexts), first.ItemType)
}

// verbFor maps a save operation to the verb used in commit messages.
func verbFor(op string) string {
	switch op {
	case "append":
		return "add"
	default:
		return op
	}
}

func formatSemanticMessage(ctx storage.SaveContext) string {
	verb := capitalizeFirst(verbFor(ctx.Operation))
	switch {
	case ctx.Operation == "import":
		return fmt.Sprintf("Import %s: %s", ctx.ItemType, ctx.ItemName)
	case ctx.ItemName != "":
		return fmt.Sprintf("%s %s: %s", verb, ctx.ItemType, ctx.ItemName)
	default:
		return fmt.Sprintf("%s %s", verb, ctx.ItemType)
	}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (g *GitSync) runGitTimeout(timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dataDir
	cmd.Env = envWithOverrides(os.Environ(), map[string]string{
		"GIT_TERMINAL_PROMPT": "0",
		"GIT_ASKPASS":         "",
		"SSH_ASKPASS":         "",
	})
	cmd.Stdin = bytes.NewReader(nil)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("git %s timed out after %s", strings.Join(args, " "), timeout)
		}
		msg := stderr.String()
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s", trimOutput(msg))
	}
	return stdout.String(), nil
}

func envWithOverrides(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(overrides))
	seen := make(map[string]bool, len(overrides))
	for _, kv := range base {
		k, _, ok := strings.Cut(kv, "=")
		if v, hit := overrides[k]; ok && hit {
			out = append(out, k+"="+v)
			seen[k] = true
			continue
		}
		out = append(out, kv)
	}
	for k, v := range overrides {
		if !seen[k] {
			out = append(out, k+"="+v)
		}
	}
	return out
}

func isGitNothingToCommit(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "nothing to commit") ||
		strings.Contains(msg, "nothing added to commit") ||
		strings.Contains(msg, "no changes added to commit")
}

func trimOutput(s string) string {
	return strings.TrimSpace(s)
}
