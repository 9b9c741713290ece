package builder_test

import (
	"testing"

	"github.com/nerdneilsfield/go-ooodev/internal/test"
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	nameAccessAdapter  = "ooodev.adapter.container.name_access_partial.NameAccessPartial"
	indexAccessAdapter = "ooodev.adapter.container.index_access_partial.IndexAccessPartial"
	propertySetAdapter = "ooodev.adapter.beans.property_set_partial.PropertySetPartial"
)

func TestAddImportReplacesInPlace(t *testing.T) {
	b := builder.GetBuilder(test.NewDocument())

	b.AddImport(builder.ImportArg{Name: "pkg.a.A", Optional: true, Check: builder.CheckInterfaceAny})
	b.AddImport(builder.ImportArg{Name: "pkg.b.B"})
	b.AddImport(builder.ImportArg{Name: "pkg.c.C"})
	b.AddImport(builder.ImportArg{Name: "pkg.a.A", Optional: false, Init: builder.InitLoader, Check: builder.CheckNone})

	assert.Equal(t, []string{"pkg.a.A", "pkg.b.B", "pkg.c.C"}, b.ImportNames())

	arg, ok := b.Import("pkg.a.A")
	require.True(t, ok)
	assert.False(t, arg.Optional)
	assert.Equal(t, builder.InitLoader, arg.Init)
	assert.Equal(t, builder.CheckNone, arg.Check)
}

func TestInsertImportRehomes(t *testing.T) {
	b := builder.GetBuilder(test.NewDocument())

	b.AddImport(builder.ImportArg{Name: "pkg.a.A"})
	b.AddImport(builder.ImportArg{Name: "pkg.b.B"})
	b.AddImport(builder.ImportArg{Name: "pkg.c.C"})

	b.InsertImport(0, builder.ImportArg{Name: "pkg.c.C", Optional: true})
	assert.Equal(t, []string{"pkg.c.C", "pkg.a.A", "pkg.b.B"}, b.ImportNames())

	arg, _ := b.Import("pkg.c.C")
	assert.True(t, arg.Optional)

	b.InsertImport(1, builder.ImportArg{Name: "pkg.d.D"})
	assert.Equal(t, []string{"pkg.c.C", "pkg.d.D", "pkg.a.A", "pkg.b.B"}, b.ImportNames())
}

func TestImportIsCopied(t *testing.T) {
	b := builder.GetBuilder(test.NewDocument())
	caps := []string{uno.XNameAccess}

	b.AddImport(builder.ImportArg{Name: "pkg.a.A", Capabilities: caps})
	caps[0] = "mutated"

	arg, _ := b.Import("pkg.a.A")
	assert.Equal(t, []string{uno.XNameAccess}, arg.Capabilities)
}

func TestEventsDeduplicateByIdentity(t *testing.T) {
	b := builder.GetBuilder(test.NewDocument())

	ev := builder.EventArg{Module: "ooodev.adapter.lang.event_events", Class: "EventEvents", Callback: "on_lazy_cb"}
	b.AddEvent(ev)
	b.AddEvent(builder.EventArg{Module: "ooodev.adapter.util.modify_events", Class: "ModifyEvents", Callback: "on_lazy_cb"})

	ev.Optional = true
	b.AddEvent(ev)

	events := b.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "EventEvents", events[0].Class)
	assert.True(t, events[0].Optional)

	b.InsertEvent(0, events[1])
	assert.Equal(t, "ModifyEvents", b.Events()[0].Class)

	assert.True(t, b.RemoveEvent(ev))
	assert.Len(t, b.Events(), 1)
}

func TestSetOmitNormalizes(t *testing.T) {
	b := builder.GetBuilder(test.NewDocument())

	b.SetOmit(uno.XNameAccess, indexAccessAdapter)

	assert.True(t, b.HasOmit(nameAccessAdapter))
	assert.True(t, b.HasOmit(uno.XNameAccess))
	assert.True(t, b.HasOmit(uno.XIndexAccess))
	assert.False(t, b.HasOmit(uno.XPropertySet))
	assert.Equal(t, []string{indexAccessAdapter, nameAccessAdapter}, b.Omitted())
}

func TestAutoAddInterface(t *testing.T) {
	b := builder.GetBuilder(test.NewDocument())

	b.AutoAddInterface("com.sun.star.beans.XPropertySet")

	require.True(t, b.HasImport(propertySetAdapter))
	assert.True(t, b.HasImport(uno.XPropertySet))

	arg, _ := b.Import(propertySetAdapter)
	assert.Equal(t, []string{uno.XPropertySet}, arg.Capabilities)
	assert.True(t, arg.Optional)
	assert.Equal(t, builder.InitComponent, arg.Init)
	assert.Equal(t, builder.CheckInterfaceAny, arg.Check)

	b.AutoAddInterfaceWith(uno.XPropertySet, false, builder.CheckInterfaceAll)
	arg, _ = b.Import(propertySetAdapter)
	assert.False(t, arg.Optional)
	assert.Equal(t, builder.CheckInterfaceAll, arg.Check)
	assert.Len(t, b.ImportNames(), 1)
}

func TestAutoInterfaceIsIdempotent(t *testing.T) {
	b := builder.GetBuilder(test.NewDocument())
	b.SetOmit(uno.XIndexAccess)

	require.NoError(t, b.AutoInterface())
	first := b.ImportNames()

	require.NoError(t, b.AutoInterface())
	assert.Equal(t, first, b.ImportNames())

	assert.Len(t, first, 6)
	assert.True(t, b.HasImport(uno.XNameAccess))
	assert.False(t, b.HasImport(uno.XIndexAccess))
}

func TestAutoInterfaceWithoutTypeProvider(t *testing.T) {
	b := builder.GetBuilder(&test.Opaque{Name: "mock"})

	err := b.AutoInterface()
	assert.ErrorIs(t, err, builder.ErrNoTypeProvider)
	assert.Empty(t, b.ImportNames())
}

func TestMerge(t *testing.T) {
	component := test.NewDocument()

	left := builder.GetBuilder(component)
	left.AddImport(builder.ImportArg{Name: "pkg.a.A", Optional: false, Check: builder.CheckNone})
	left.SetOmit("pkg.x.X")
	left.SetProperty("Kind", "left")

	right := builder.GetBuilder(component)
	right.AddImport(builder.ImportArg{Name: "pkg.b.B", Optional: false})
	right.AddEvent(builder.EventArg{Module: "pkg.ev", Class: "Events", Callback: "cb"})
	right.SetOmit("pkg.y.Y")
	right.SetProperty("Kind", "right")

	t.Run("plain merge", func(t *testing.T) {
		b := builder.GetBuilder(component)
		b.Merge(left)
		b.Merge(right)

		assert.Equal(t, []string{"pkg.a.A", "pkg.b.B"}, b.ImportNames())
		assert.Len(t, b.Events(), 1)
		assert.True(t, b.HasOmit("pkg.x.X"))
		assert.True(t, b.HasOmit("pkg.y.Y"))
		assert.Equal(t, []builder.Property{{Name: "Kind", Value: "right"}}, b.Properties())
	})

	t.Run("override flags", func(t *testing.T) {
		b := builder.GetBuilder(component)
		b.Merge(right, builder.MergeOptional(true), builder.MergeCheck(builder.CheckInterfaceAll))

		arg, ok := b.Import("pkg.b.B")
		require.True(t, ok)
		assert.True(t, arg.Optional)
		assert.Equal(t, builder.CheckInterfaceAll, arg.Check)

		ev := b.Events()[0]
		assert.True(t, ev.Optional)
		assert.Equal(t, builder.CheckInterfaceAll, ev.Check)

		// 源注册表保持不变
		orig, _ := right.Import("pkg.b.B")
		assert.False(t, orig.Optional)
	})

	t.Run("nil is ignored", func(t *testing.T) {
		b := builder.GetBuilder(component)
		b.Merge(nil)
		assert.Empty(t, b.ImportNames())
	})
}

func TestMergeModule(t *testing.T) {
	catalog := builder.NewCatalog()
	require.NoError(t, catalog.RegisterBuilder("pkg.container", func(component uno.Component, opts ...builder.Option) *builder.DefaultBuilder {
		b := builder.GetBuilder(component, opts...)
		b.AutoAddInterface(uno.XNameAccess)
		return b
	}))

	b := builder.GetBuilder(test.NewDocument(), builder.WithCatalog(catalog))
	require.NoError(t, b.MergeModule("pkg.container", builder.MergeOptional(false)))

	arg, ok := b.Import(uno.XNameAccess)
	require.True(t, ok)
	assert.False(t, arg.Optional)

	err := b.MergeModule("pkg.missing")
	assert.ErrorIs(t, err, builder.ErrAdapterNotFound)
}

func TestRemoveImport(t *testing.T) {
	b := builder.GetBuilder(test.NewDocument())
	b.AutoAddInterface(uno.XNameAccess)

	assert.True(t, b.RemoveImport(uno.XNameAccess))
	assert.False(t, b.RemoveImport(nameAccessAdapter))
	assert.Empty(t, b.Imports())
}
