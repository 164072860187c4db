// Package mirror 负责把本地数据目录同步到远端副本，并在启动时从远端恢复。
//
// 本地磁盘始终是当前进程的事实来源；远端只是为了在宿主文件系统被清空
// （重新部署、重启）之后仍能找回数据。推送失败不会回滚本地写入。
package mirror

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// DefaultMessage 在调用方未提供提交说明时使用。
const DefaultMessage = "Update content via Admin Dashboard"

// Mirror 是远端同步适配器的抽象。
type Mirror interface {
	// Name 返回后端名称（git、object、nop），用于日志与指标。
	Name() string
	// Restore 将 paths（相对数据根目录）逐个从远端拉取并覆盖本地文件。
	Restore(ctx context.Context, paths []string) Report
	// Push 将本地变更推送到远端。
	Push(ctx context.Context, change Change) Result
}

// Change 描述一次需要推送的本地变更。
type Change struct {
	Message string
	// Paths 是新增或修改的文件（相对根目录，斜杠分隔）。git 后端会忽略它并暂存全部变更。
	Paths []string
	// Removed 是已删除的文件。
	Removed []string
}

func (c Change) message() string {
	if c.Message == "" {
		return DefaultMessage
	}
	return c.Message
}

// Result 是一次推送的结果。Err 非空表示远端未同步成功，但本地写入仍然有效。
type Result struct {
	Backend string
	Skipped bool
	Err     error
}

// OK 报告远端是否已与本地一致（或处于仅本地模式）。
func (r Result) OK() bool {
	return r.Err == nil
}

// Warning 返回面向调用方的告警文案，成功时为空串。
func (r Result) Warning() string {
	if r.Err == nil {
		return ""
	}
	return fmt.Sprintf("Data saved locally but remote sync failed: %v", r.Err)
}

// Report 汇总启动恢复的逐文件结果。
type Report struct {
	Restored []string
	Missing  []string
	Failed   map[string]error
}

func (r *Report) fail(path string, err error) {
	if r.Failed == nil {
		r.Failed = make(map[string]error)
	}
	r.Failed[path] = err
}

// Err 聚合失败的文件；缺失的文件不算失败。
func (r Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	paths := make([]string, 0, len(r.Failed))
	for p := range r.Failed {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	errs := make([]error, 0, len(paths))
	for _, p := range paths {
		errs = append(errs, fmt.Errorf("%s: %w", p, r.Failed[p]))
	}
	return errors.Join(errs...)
}

// Nop 是仅本地模式：未配置远端凭据时使用，恢复与推送都不做任何事。
type Nop struct{}

func (Nop) Name() string { return "nop" }

func (Nop) Restore(context.Context, []string) Report { return Report{} }

func (Nop) Push(context.Context, Change) Result {
	return Result{Backend: "nop", Skipped: true}
}
