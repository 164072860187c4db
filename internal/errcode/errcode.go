package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：业务可恢复/告警类错误（例如输入非法、记录缺失、远端同步失败但本地已保存）
// - 5xxx：系统错误（需要中断流程）
const (
	OK              = 0
	InvalidInput    = 4000
	Unauthorized    = 4001
	ResourceMissing = 4004
	SyncWarning     = 4009
	DataConflict    = 4090
	SystemError     = 5000
)
