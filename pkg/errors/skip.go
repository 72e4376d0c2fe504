package errors

import "errors"

// SkipMessageError 消费者用它声明"这条消息应当丢弃而不是重试"，
// 典型场景是幂等标记命中后的重复投递
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}

// IsSkipMessageError 判断错误链上是否有跳过语义
func IsSkipMessageError(err error) bool {
	var skip *SkipMessageError
	return errors.As(err, &skip)
}
