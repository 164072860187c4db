package mirror

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// GitOptions 配置基于 git 命令行的远端镜像。
type GitOptions struct {
	// WorkDir 是数据根目录，必须位于一个 git 仓库内。
	WorkDir string
	// RemoteURL 是带凭据的推送地址。
	RemoteURL string
	// Secret 会从所有错误与日志中抹去（通常是 token）。
	Secret      string
	Branch      string
	AuthorName  string
	AuthorEmail string
	// Timeout 限制单条 git 命令的执行时间，0 表示不限制。
	Timeout time.Duration
	Logger  *slog.Logger
}

// Git 通过系统 git 命令实现 Mirror：暂存全部变更、提交、推送到指定分支。
type Git struct {
	opts   GitOptions
	logger *slog.Logger

	// git 自身不允许并发写 index，这里串行化所有命令。
	mu sync.Mutex
}

// NewGit 返回 git 镜像实例。
func NewGit(opts GitOptions) *Git {
	if opts.Branch == "" {
		opts.Branch = "main"
	}
	if opts.AuthorName == "" {
		opts.AuthorName = "Portfolio Admin"
	}
	if opts.AuthorEmail == "" {
		opts.AuthorEmail = "admin@localhost"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Git{
		opts:   opts,
		logger: logger.With(slog.String("mirror", "git")),
	}
}

func (g *Git) Name() string { return "git" }

// Push 暂存工作区全部变更并提交、推送。
// “nothing to commit” 视为成功，推送仍会执行以补齐此前未推送的提交。
func (g *Git) Push(ctx context.Context, change Change) Result {
	ctx = context.WithoutCancel(ctx)
	g.mu.Lock()
	defer g.mu.Unlock()

	res := Result{Backend: g.Name()}
	message := change.message()

	if _, err := g.run(ctx, "add", "-A"); err != nil {
		res.Err = fmt.Errorf("stage changes: %w", err)
		g.logger.Warn("git add failed", slog.String("error", res.Err.Error()))
		return res
	}

	commitArgs := []string{
		"-c", "user.name=" + g.opts.AuthorName,
		"-c", "user.email=" + g.opts.AuthorEmail,
		"commit", "-m", message,
	}
	if out, err := g.run(ctx, commitArgs...); err != nil {
		if !isNothingToCommit(string(out)) {
			res.Err = fmt.Errorf("commit: %w", err)
			g.logger.Warn("git commit failed", slog.String("error", res.Err.Error()))
			return res
		}
		g.logger.Debug("nothing to commit", slog.String("message", message))
	}

	out, err := g.run(ctx, "push", g.opts.RemoteURL, "HEAD:"+g.opts.Branch)
	if err != nil {
		if isPushRejected(string(out)) {
			err = fmt.Errorf("%w: %w", ErrPushRejected, err)
		}
		res.Err = fmt.Errorf("push: %w", err)
		g.logger.Warn("git push failed", slog.String("error", res.Err.Error()))
		return res
	}

	g.logger.Info("pushed to remote", slog.String("message", message), slog.String("branch", g.opts.Branch))
	return res
}

// Restore 拉取远端分支后逐个取出 paths 覆盖本地文件。
// 单个文件失败只记录日志，不影响其它文件。
func (g *Git) Restore(ctx context.Context, paths []string) Report {
	ctx = context.WithoutCancel(ctx)
	g.mu.Lock()
	defer g.mu.Unlock()

	var report Report
	g.logger.Info("restoring data from remote", slog.String("branch", g.opts.Branch), slog.Int("files", len(paths)))

	if _, err := g.run(ctx, "fetch", g.opts.RemoteURL, g.opts.Branch); err != nil {
		err = fmt.Errorf("%w: %w", ErrUnreachable, err)
		g.logger.Error("cannot fetch remote, skipping restore", slog.String("error", err.Error()))
		for _, p := range paths {
			report.fail(p, err)
		}
		return report
	}

	for _, rel := range paths {
		// ./ 让路径相对 WorkDir 解析，数据根目录可以是仓库的子目录。
		data, err := g.show(ctx, "FETCH_HEAD:./"+filepath.ToSlash(rel))
		switch {
		case errors.Is(err, ErrNotFound):
			g.logger.Info("not found on remote, using local default", slog.String("path", rel))
			report.Missing = append(report.Missing, rel)
			continue
		case err != nil:
			g.logger.Warn("error pulling file", slog.String("path", rel), slog.String("error", err.Error()))
			report.fail(rel, err)
			continue
		}

		if err := writeLocal(g.opts.WorkDir, rel, data); err != nil {
			g.logger.Warn("error writing restored file", slog.String("path", rel), slog.String("error", err.Error()))
			report.fail(rel, err)
			continue
		}
		g.logger.Info("restored from remote", slog.String("path", rel))
		report.Restored = append(report.Restored, rel)
	}

	return report
}

// show 返回 git show 的标准输出；路径不存在时返回 ErrNotFound。
func (g *Git) show(ctx context.Context, rev string) ([]byte, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "show", rev)
	cmd.Dir = g.opts.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if isPathMissing(msg) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("git show %s failed: %w: %s", rev, err, g.redact(msg))
	}
	return stdout.Bytes(), nil
}

// run 执行一条 git 命令并返回合并输出，错误信息中的凭据会被抹去。
func (g *Git) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.opts.WorkDir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\n%s",
			g.redact(strings.Join(args, " ")), err, g.redact(strings.TrimSpace(string(output))))
	}
	return output, nil
}

func (g *Git) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.opts.Timeout > 0 {
		return context.WithTimeout(ctx, g.opts.Timeout)
	}
	return ctx, func() {}
}

func (g *Git) redact(s string) string {
	if g.opts.Secret == "" {
		return s
	}
	return strings.ReplaceAll(s, g.opts.Secret, "***")
}

func writeLocal(root, rel string, data []byte) error {
	local := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(local, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}
