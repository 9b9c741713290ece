// Package events 实现事件混入的延迟监听注册
//
// 事件混入在构造时并不向组件注册底层监听器，而是在调用方第一次订阅
// 命名事件时才通过 LazyCallback 完成注册。回调设置
// ListenerEvent.RemoveCallback 之后便不会再被调用。
package events

import (
	"sync"

	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

// ListenerEvent 延迟回调收到的可变负载
type ListenerEvent struct {
	Source    any
	EventName string
	Data      any

	// RemoveCallback 由回调置为 true，表示不再调用该回调
	RemoveCallback bool
}

// LazyCallback 第一次订阅时调用的注册回调
type LazyCallback func(source any, ev *ListenerEvent, component uno.Component, mixin any)

// TriggerArgs 事件混入构造时收到的触发参数
type TriggerArgs struct {
	Source    any
	Component uno.Component
	Extra     map[string]any
}

// EventArgs 分发给订阅者的事件参数
type EventArgs struct {
	Name   string
	Source any
	Data   any

	// Cancel 置为 true 时停止后续订阅者
	Cancel bool
}

// Handler 事件处理函数
type Handler func(source any, args *EventArgs)

type subscription struct {
	id      uint64
	handler Handler
}

// Emitter 命名事件分发器
type Emitter struct {
	mu       sync.Mutex
	handlers map[string][]subscription
	nextID   uint64

	trigger TriggerArgs
	lazy    LazyCallback
	owner   any
}

// NewEmitter 创建分发器；trigger 可以为 nil
func NewEmitter(trigger *TriggerArgs, cb LazyCallback) *Emitter {
	e := &Emitter{
		handlers: make(map[string][]subscription),
		lazy:     cb,
	}
	if trigger != nil {
		e.trigger = *trigger
	}
	return e
}

// Bind 设置传给延迟回调的混入实例
func (e *Emitter) Bind(owner any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.owner = owner
}

// TriggerArgs 返回构造时的触发参数
func (e *Emitter) TriggerArgs() TriggerArgs {
	return e.trigger
}

// HasLazy 延迟回调是否仍待调用
func (e *Emitter) HasLazy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lazy != nil
}

// Subscribe 订阅命名事件，返回取消订阅函数
func (e *Emitter) Subscribe(name string, handler Handler) func() {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.handlers[name] = append(e.handlers[name], subscription{id: id, handler: handler})
	cb, owner := e.lazy, e.owner
	e.lazy = nil
	e.mu.Unlock()

	// 执行期间回调已被取出，回调内部再次订阅或并发订阅都不会重入
	if cb != nil {
		ev := &ListenerEvent{Source: e.trigger.Source, EventName: name}
		cb(e.trigger.Source, ev, e.trigger.Component, owner)
		if !ev.RemoveCallback {
			e.mu.Lock()
			if e.lazy == nil {
				e.lazy = cb
			}
			e.mu.Unlock()
		}
	}

	return func() { e.unsubscribe(name, id) }
}

func (e *Emitter) unsubscribe(name string, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs := e.handlers[name]
	for i, s := range subs {
		if s.id == id {
			e.handlers[name] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(e.handlers[name]) == 0 {
		delete(e.handlers, name)
	}
}

// Trigger 按订阅顺序分发事件，返回事件参数
func (e *Emitter) Trigger(name string, data any) *EventArgs {
	e.mu.Lock()
	subs := make([]subscription, len(e.handlers[name]))
	copy(subs, e.handlers[name])
	e.mu.Unlock()

	args := &EventArgs{Name: name, Source: e.trigger.Source, Data: data}
	for _, s := range subs {
		s.handler(e.trigger.Source, args)
		if args.Cancel {
			break
		}
	}
	return args
}

// SubscriberCount 返回指定事件的订阅数量
func (e *Emitter) SubscriberCount(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[name])
}
