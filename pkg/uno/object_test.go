package uno_test

import (
	"errors"
	"testing"

	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	events []uno.EventObject
}

func (l *recordingListener) Disposing(ev uno.EventObject) {
	l.events = append(l.events, ev)
}

// sliceListener 是不可比较的值类型监听器
type sliceListener struct {
	names []string
}

func (sliceListener) Disposing(uno.EventObject) {}

func TestObjectIntrospection(t *testing.T) {
	o := uno.NewObject("test.Impl",
		uno.WithInterfaces(uno.XTypeProvider, uno.XNameAccess),
		uno.WithServices("com.sun.star.container.NameContainer"),
	)

	names, ok := uno.InterfaceNames(o)
	require.True(t, ok)
	assert.Equal(t, []string{uno.XTypeProvider, uno.XNameAccess}, names)
	assert.True(t, uno.HasInterface(o, uno.XNameAccess))
	assert.False(t, uno.HasInterface(o, uno.XIndexAccess))

	assert.Equal(t, "test.Impl", o.ImplementationName())
	assert.True(t, o.SupportsService("com.sun.star.container.NameContainer"))
	assert.False(t, o.SupportsService("com.sun.star.text.TextDocument"))

	_, ok = uno.InterfaceNames(struct{}{})
	assert.False(t, ok)
}

func TestObjectElements(t *testing.T) {
	o := uno.NewObject("test.Impl",
		uno.WithElement("b", 2),
		uno.WithElement("a", 1),
		uno.WithElement("b", 3),
		uno.WithItems("x", "y"),
	)

	assert.True(t, o.HasElements())
	assert.Equal(t, []string{"b", "a"}, o.ElementNames())

	v, err := o.ByName("b")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = o.ByName("missing")
	assert.ErrorIs(t, err, uno.ErrNoSuchElement)

	assert.Equal(t, 2, o.Count())
	_, err = o.ByIndex(2)
	assert.ErrorIs(t, err, uno.ErrIndexOutOfBounds)
}

func TestObjectProperties(t *testing.T) {
	o := uno.NewObject("test.Impl", uno.WithProperty("Title", "a"), uno.WithProperty("Author", "b"))

	assert.Equal(t, []string{"Author", "Title"}, o.PropertyNames())
	require.NoError(t, o.SetPropertyValue("Title", "c"))

	v, err := o.PropertyValue("Title")
	require.NoError(t, err)
	assert.Equal(t, "c", v)

	assert.ErrorIs(t, o.SetPropertyValue("Missing", 1), uno.ErrUnknownProperty)
}

func TestObjectDispose(t *testing.T) {
	o := uno.NewObject("test.Impl", uno.WithProperty("Title", "a"))
	keep, drop := &recordingListener{}, &recordingListener{}

	o.AddEventListener(keep)
	o.AddEventListener(drop)
	o.RemoveEventListener(drop)
	assert.Equal(t, 1, o.ListenerCount())

	o.Dispose()
	o.Dispose()

	require.Len(t, keep.events, 1)
	assert.Same(t, o, keep.events[0].Source)
	assert.Empty(t, drop.events)
	assert.True(t, o.IsDisposed())
	assert.ErrorIs(t, o.SetPropertyValue("Title", "b"), uno.ErrDisposed)
}

func TestRemoveUncomparableListener(t *testing.T) {
	o := uno.NewObject("test.Impl")
	ptr := &recordingListener{}

	o.AddEventListener(sliceListener{names: []string{"a"}})
	o.AddEventListener(ptr)

	assert.NotPanics(t, func() {
		o.RemoveEventListener(sliceListener{names: []string{"a"}})
	})
	assert.Equal(t, 2, o.ListenerCount())

	assert.NotPanics(t, func() { o.RemoveEventListener(ptr) })
	assert.Equal(t, 1, o.ListenerCount())
}

func TestObjectNewInstance(t *testing.T) {
	_, err := uno.NewObject("test.Impl").NewInstance()
	assert.ErrorIs(t, err, uno.ErrNoFactory)

	child := uno.NewObject("test.Child")
	o := uno.NewObject("test.Factory", uno.WithFactory(func() (uno.Component, error) {
		return child, nil
	}))
	got, err := o.NewInstance()
	require.NoError(t, err)
	assert.Same(t, child, got)

	o.Dispose()
	_, err = o.NewInstance()
	assert.ErrorIs(t, err, uno.ErrDisposed)
}

func TestStaticLoader(t *testing.T) {
	l := uno.NewStaticLoader()
	boom := errors.New("boom")

	require.NoError(t, l.Register("svc.B", func() (uno.Component, error) { return nil, boom }))
	require.NoError(t, l.Register("svc.A", func() (uno.Component, error) { return uno.NewObject("a"), nil }))
	assert.Error(t, l.Register("svc.A", nil))

	assert.Equal(t, []string{"svc.A", "svc.B"}, l.AvailableServiceNames())

	c, err := l.CreateInstance("svc.A")
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = l.CreateInstance("svc.B")
	assert.ErrorIs(t, err, boom)

	_, err = l.CreateInstance("svc.C")
	assert.ErrorContains(t, err, "not found")
}
