package engine

// Outcome 协作方调用的结果：可用时携带值，不可用时携带原因。
// 可用但 Reason 非空表示部分成功。
type Outcome[T any] struct {
	Value  T
	OK     bool
	Reason string
}

// Available 构造可用结果
func Available[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, OK: true}
}

// Unavailable 构造不可用结果
func Unavailable[T any](reason string) Outcome[T] {
	return Outcome[T]{Reason: reason}
}

// StageOutcome 写入元数据的阶段来源记录
type StageOutcome struct {
	Stage  string `json:"stage"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func stageOf[T any](stage string, o Outcome[T]) StageOutcome {
	status := "available"
	switch {
	case !o.OK:
		status = "unavailable"
	case o.Reason != "":
		status = "partial"
	}
	return StageOutcome{Stage: stage, Status: status, Reason: o.Reason}
}
