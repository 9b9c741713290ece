package builder

import (
	"errors"
	"fmt"
	"strings"
)

// 预定义错误
var (
	// ErrNoTypeProvider 组件不支持类型内省
	ErrNoTypeProvider = errors.New("component has no type provider")

	// ErrAdapterNotFound 目录中没有该适配器
	ErrAdapterNotFound = errors.New("adapter not found")

	// ErrCallbackNotFound 目录中没有该延迟回调
	ErrCallbackNotFound = errors.New("lazy callback not found")

	// ErrMROConflict 无法计算一致的方法解析顺序
	ErrMROConflict = errors.New("cannot create a consistent method resolution order")

	// ErrNoLoader 未配置会话加载器
	ErrNoLoader = errors.New("no loader configured")

	// ErrBuilderConsumed 构建器已经被使用过
	ErrBuilderConsumed = errors.New("builder already consumed")

	// ErrInvalidKind 无效的构造约定或检查方式
	ErrInvalidKind = errors.New("invalid kind")

	// ErrInitCancelled 混入初始化被钩子取消
	ErrInitCancelled = errors.New("mixin init cancelled")
)

// ResolveError 适配器解析失败
type ResolveError struct {
	Name        string
	Suggestions []string
	Err         error
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("resolve %s: %v", e.Name, e.Err)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// SynthesisError 组合类合成失败
type SynthesisError struct {
	Class string
	Bases []string
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize %s from [%s]: %v", e.Class, strings.Join(e.Bases, ", "), e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// InitError 混入初始化失败
type InitError struct {
	Class   string
	Adapter string
	Kind    InitKind
	Err     error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s (%s) on %s: %v", e.Adapter, e.Kind, e.Class, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
