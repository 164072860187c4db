package mirror

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound 表示远端不存在该文件。启动恢复时属于预期情况。
	ErrNotFound = errors.New("file not found on remote")

	// ErrNothingToCommit 表示工作区与上次提交一致。
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrPushRejected 表示远端拒绝推送，通常是非快进更新。
	ErrPushRejected = errors.New("push rejected by remote")

	// ErrUnreachable 表示无法连接远端（网络、鉴权、仓库不存在）。
	ErrUnreachable = errors.New("remote unreachable")
)

func isNothingToCommit(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "nothing to commit") ||
		strings.Contains(lower, "nothing added to commit") ||
		strings.Contains(lower, "no changes added to commit")
}

func isPushRejected(output string) bool {
	return strings.Contains(output, "rejected") || strings.Contains(output, "non-fast-forward")
}

// isPathMissing 识别 git show <rev>:<path> 在路径不存在时的几种报错。
func isPathMissing(output string) bool {
	return strings.Contains(output, "does not exist in") ||
		strings.Contains(output, "exists on disk, but not in") ||
		(strings.Contains(output, "path '") && strings.Contains(output, "' does not exist"))
}
