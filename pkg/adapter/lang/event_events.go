package lang

import (
	"github.com/nerdneilsfield/go-ooodev/pkg/events"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
)

// 事件混入名称
const (
	EventEventsModule = Module + ".event_events"
	EventEventsClass  = "EventEvents"
	EventEventsName   = EventEventsModule + "." + EventEventsClass
	LazyCallbackName  = "on_lazy_cb"

	// EventDisposing 组件释放事件
	EventDisposing = "disposing"
)

// EventListener 把组件的 Disposing 通知转发到事件分发器
type EventListener struct {
	emitter *events.Emitter
}

// Disposing 实现 uno.EventListener
func (l *EventListener) Disposing(event uno.EventObject) {
	l.emitter.Trigger(EventDisposing, event)
}

// EventEvents 释放事件混入
//
// 底层监听器在第一次订阅时才注册到组件上。
type EventEvents struct {
	*events.Emitter
	listener *EventListener
}

// NewEventEvents 创建事件混入；cb 为 nil 时立即注册监听器
func NewEventEvents(trigger events.TriggerArgs, cb events.LazyCallback) *EventEvents {
	e := &EventEvents{Emitter: events.NewEmitter(&trigger, cb)}
	e.Bind(e)
	if cb == nil {
		e.attach(trigger.Component)
	}
	return e
}

// NewEventEventsMixin 是 builder.EventFactory 形式的构造函数
func NewEventEventsMixin(trigger events.TriggerArgs, cb events.LazyCallback) (any, error) {
	return NewEventEvents(trigger, cb), nil
}

// AddEventDisposing 订阅释放事件，返回取消订阅函数
func (e *EventEvents) AddEventDisposing(handler events.Handler) func() {
	return e.Subscribe(EventDisposing, handler)
}

// Listener 返回已注册的监听器，尚未注册时为 nil
func (e *EventEvents) Listener() *EventListener {
	return e.listener
}

func (e *EventEvents) attach(component uno.Component) bool {
	if e.listener != nil {
		return false
	}
	d, ok := component.(uno.Disposable)
	if !ok {
		return false
	}
	e.listener = &EventListener{emitter: e.Emitter}
	d.AddEventListener(e.listener)
	return true
}

// OnLazyCallback 在第一次订阅时把监听器注册到组件
func OnLazyCallback(_ any, ev *events.ListenerEvent, component uno.Component, mixin any) {
	ev.RemoveCallback = true
	if e, ok := mixin.(*EventEvents); ok {
		e.attach(component)
	}
}
