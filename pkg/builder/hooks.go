package builder

import "github.com/nerdneilsfield/go-ooodev/pkg/events"

// ClassCreateContext class_create 钩子负载
type ClassCreateContext struct {
	Name  string
	Bases []string
	// Cancel 置为 true 时不合成，直接返回基类
	Cancel bool
}

// ClassInitContext class_init 钩子负载
type ClassInitContext struct {
	Class    *Class
	Adapter  string
	Kind     InitKind
	Instance *Composite
	Args     []any
	Kwargs   map[string]any
	// Cancel 置为 true 时跳过该混入
	Cancel bool
}

// ClassEventInitContext class_event_init 钩子负载
type ClassEventInitContext struct {
	Class    *Class
	Adapter  string
	Instance *Composite
	Trigger  events.TriggerArgs
	Callback events.LazyCallback
	Cancel   bool
}

// ClassPropertyContext class_property_init 钩子负载
type ClassPropertyContext struct {
	Class  *Class
	Name   string
	Value  any
	Cancel bool
}

type hooks struct {
	classCreate   []func(*ClassCreateContext)
	classInit     []func(*ClassInitContext)
	classEvent    []func(*ClassEventInitContext)
	classProperty []func(*ClassPropertyContext)
}

func (h *hooks) fireCreate(ctx *ClassCreateContext) {
	for _, fn := range h.classCreate {
		fn(ctx)
		if ctx.Cancel {
			return
		}
	}
}

func (h *hooks) fireInit(ctx *ClassInitContext) {
	for _, fn := range h.classInit {
		fn(ctx)
		if ctx.Cancel {
			return
		}
	}
}

func (h *hooks) fireEventInit(ctx *ClassEventInitContext) {
	for _, fn := range h.classEvent {
		fn(ctx)
		if ctx.Cancel {
			return
		}
	}
}

func (h *hooks) fireProperty(ctx *ClassPropertyContext) {
	for _, fn := range h.classProperty {
		fn(ctx)
		if ctx.Cancel {
			return
		}
	}
}
