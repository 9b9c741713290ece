package comp_test

import (
	"testing"

	"github.com/nerdneilsfield/go-ooodev/internal/test"
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter"
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter/beans"
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter/comp"
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter/container"
	"github.com/nerdneilsfield/go-ooodev/pkg/adapter/lang"
	"github.com/nerdneilsfield/go-ooodev/pkg/builder"
	"github.com/nerdneilsfield/go-ooodev/pkg/events"
	"github.com/nerdneilsfield/go-ooodev/pkg/uno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewComponentComp(t *testing.T) {
	doc := test.NewDocument()

	inst, err := comp.NewComponentComp(doc)
	require.NoError(t, err)

	names, ok := builder.As[*container.NameAccessPartial](inst)
	require.True(t, ok)
	assert.Equal(t, []string{"Standard"}, names.GetElementNames())
	assert.True(t, names.HasElements())

	index, ok := builder.As[*container.IndexAccessPartial](inst)
	require.True(t, ok)
	assert.Equal(t, 3, index.GetCount())
	v, err := index.GetByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, "p2", v)

	props, ok := builder.As[*beans.PropertySetPartial](inst)
	require.True(t, ok)
	values, err := props.GetPropertyValues("Title", "CharHeight")
	require.NoError(t, err)
	assert.Equal(t, []any{"Untitled", 12.0}, values)

	info, ok := builder.As[*lang.ServiceInfoPartial](inst)
	require.True(t, ok)
	assert.Equal(t, "test.Document", info.GetImplementationName())

	// ElementAccess 由 IndexAccess 继承
	mro := inst.Class().MRO()
	assert.NotContains(t, inst.Class().Bases(), container.ElementAccessName)
	assert.Contains(t, mro, container.ElementAccessName)
	part, ok := inst.Part(uno.XElementAccess)
	require.True(t, ok)
	assert.Same(t, index, part)
	assert.True(t, inst.Supports(uno.XElementAccess))

	// 接口混入在基类列表中的顺序
	assert.Equal(t, builder.ComponentBaseName, mro[1])
	assert.Equal(t, lang.EventEventsName, mro[len(mro)-1])
}

func TestDisposingListenerRegistersOnce(t *testing.T) {
	doc := test.NewDocument()

	inst, err := comp.NewComponentComp(doc)
	require.NoError(t, err)

	ev, ok := builder.As[*lang.EventEvents](inst)
	require.True(t, ok)
	assert.Equal(t, 0, doc.ListenerCount())
	assert.True(t, ev.HasLazy())

	var disposed []uno.EventObject
	ev.AddEventDisposing(func(_ any, args *events.EventArgs) {
		disposed = append(disposed, args.Data.(uno.EventObject))
	})
	assert.Equal(t, 1, doc.ListenerCount())
	assert.False(t, ev.HasLazy())

	unsubscribe := ev.AddEventDisposing(func(any, *events.EventArgs) {})
	assert.Equal(t, 1, doc.ListenerCount())
	unsubscribe()

	component, ok := builder.As[*lang.ComponentPartial](inst)
	require.True(t, ok)
	component.Dispose()

	require.Len(t, disposed, 1)
	assert.Same(t, doc, disposed[0].Source)
	assert.True(t, doc.IsDisposed())
}

func TestComponentPartialForwardsListeners(t *testing.T) {
	doc := test.NewDocument()

	inst, err := comp.NewComponentComp(doc)
	require.NoError(t, err)
	component, ok := builder.As[*lang.ComponentPartial](inst)
	require.True(t, ok)

	kept, removed := &test.MockListener{}, &test.MockListener{}
	kept.On("Disposing", mock.MatchedBy(func(ev uno.EventObject) bool {
		return ev.Source == doc
	})).Once()

	component.AddEventListener(kept)
	component.AddEventListener(removed)
	component.RemoveEventListener(removed)
	component.Dispose()

	kept.AssertExpectations(t)
	removed.AssertNotCalled(t, "Disposing", mock.Anything)
}

func TestNameContainerComp(t *testing.T) {
	inst, err := comp.NewComponentComp(test.NewNameContainer())
	require.NoError(t, err)

	_, ok := builder.As[*container.NameAccessPartial](inst)
	assert.True(t, ok)
	_, ok = builder.As[*beans.PropertySetPartial](inst)
	assert.False(t, ok)
	_, ok = builder.As[*lang.EventEvents](inst)
	assert.False(t, ok)
}

func TestComponentCompWithoutTypeProvider(t *testing.T) {
	_, err := comp.NewComponentComp(&test.Opaque{Name: "opaque"})
	assert.ErrorIs(t, err, builder.ErrNoTypeProvider)
}

func TestMissingInterfaceSurfaces(t *testing.T) {
	component := uno.NewObject("test.Bare", uno.WithInterfaces(uno.XTypeProvider))

	t.Run("validated", func(t *testing.T) {
		b := builder.GetBuilder(component, builder.WithCatalog(comp.Catalog()))
		b.AddImport(builder.ImportArg{Name: container.NameAccessName, Init: builder.InitComponent})

		_, err := b.Build("")
		var missing *adapter.MissingInterfaceError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, uno.XNameAccess, missing.Interface)
		assert.Equal(t, container.NameAccessName, missing.Adapter)
	})

	t.Run("nil handle skips validation", func(t *testing.T) {
		b := builder.GetBuilder(component, builder.WithCatalog(comp.Catalog()))
		b.AddImport(builder.ImportArg{Name: container.NameAccessName, Init: builder.InitComponentHandle})

		inst, err := b.Build("")
		require.NoError(t, err)
		assert.True(t, inst.Has(container.NameAccessName))
	})
}

func TestCallbackInitUsesHookHandle(t *testing.T) {
	component := uno.NewObject("test.Bare",
		uno.WithInterfaces(uno.XTypeProvider),
		uno.WithProperty("Title", "Untitled"),
	)

	build := func(hook func(*builder.ClassInitContext)) (*builder.Composite, error) {
		b := builder.GetBuilder(component, builder.WithCatalog(comp.Catalog()), builder.OnClassInit(hook))
		b.AddImport(builder.ImportArg{Name: beans.PropertySetName, Init: builder.InitCallback})
		return b.Build("")
	}

	t.Run("nil handle skips validation", func(t *testing.T) {
		inst, err := build(func(ctx *builder.ClassInitContext) {
			ctx.Args = append(ctx.Args, nil)
		})
		require.NoError(t, err)

		props, ok := builder.As[*beans.PropertySetPartial](inst)
		require.True(t, ok)
		title, err := props.GetPropertyValue("Title")
		require.NoError(t, err)
		assert.Equal(t, "Untitled", title)
	})

	t.Run("no hook arguments skips validation", func(t *testing.T) {
		inst, err := build(func(*builder.ClassInitContext) {})
		require.NoError(t, err)
		assert.True(t, inst.Has(beans.PropertySetName))
	})

	t.Run("interface keyword replaces handle", func(t *testing.T) {
		_, err := build(func(ctx *builder.ClassInitContext) {
			ctx.Kwargs["interface"] = uno.XPropertySet
		})
		var missing *adapter.MissingInterfaceError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, uno.XPropertySet, missing.Interface)
	})
}

func TestLangModuleBuilder(t *testing.T) {
	newFactory := func(interfaces ...string) *uno.Object {
		return uno.NewObject("test.Factory",
			uno.WithInterfaces(append([]string{uno.XTypeProvider}, interfaces...)...),
			uno.WithFactory(func() (uno.Component, error) { return uno.NewObject("test.Created"), nil }),
		)
	}

	t.Run("single service factory", func(t *testing.T) {
		b := builder.GetBuilder(newFactory(uno.XSingleServiceFactory), builder.WithCatalog(comp.Catalog()))
		require.NoError(t, b.MergeModule(lang.Module))

		inst, err := b.Build("")
		require.NoError(t, err)

		f, ok := builder.As[*lang.SingleServiceFactoryPartial](inst)
		require.True(t, ok)
		created, err := f.CreateInstance()
		require.NoError(t, err)
		assert.Equal(t, "test.Created", created.(*uno.Object).ImplementationName())
		assert.False(t, inst.Has(lang.MultiServiceFactoryName))
	})

	t.Run("multi service factory uses loader", func(t *testing.T) {
		loader := uno.NewStaticLoader()
		require.NoError(t, loader.Register("com.sun.star.text.Text", func() (uno.Component, error) {
			return uno.NewObject("test.Text"), nil
		}))

		b := builder.GetBuilder(newFactory(uno.XSingleServiceFactory, uno.XMultiServiceFactory),
			builder.WithCatalog(comp.Catalog()),
			builder.WithLoader(loader))
		require.NoError(t, b.MergeModule(lang.Module))

		inst, err := b.Build("")
		require.NoError(t, err)

		assert.False(t, inst.Has(lang.SingleServiceFactoryName))
		f, ok := builder.As[*lang.MultiServiceFactoryPartial](inst)
		require.True(t, ok)
		assert.Equal(t, []string{"com.sun.star.text.Text"}, f.GetAvailableServiceNames())

		_, err = f.CreateInstanceByName("com.sun.star.text.Text")
		assert.NoError(t, err)
		_, err = f.CreateInstanceByName("com.sun.star.text.Missing")
		assert.Error(t, err)
	})

	t.Run("multi service factory without loader", func(t *testing.T) {
		b := builder.GetBuilder(newFactory(uno.XMultiServiceFactory), builder.WithCatalog(comp.Catalog()))
		require.NoError(t, b.MergeModule(lang.Module))

		_, err := b.Build("")
		assert.ErrorIs(t, err, builder.ErrNoLoader)
	})
}

func TestContainerModuleBuilder(t *testing.T) {
	b := builder.GetBuilder(test.NewNameContainer(), builder.WithCatalog(comp.Catalog()))
	require.NoError(t, b.MergeModule(container.Module))

	inst, err := b.Build("")
	require.NoError(t, err)

	assert.True(t, inst.Has(container.NameAccessName))
	assert.False(t, inst.Has(container.IndexAccessName))
	assert.Equal(t, []string{builder.ComponentBaseName, container.NameAccessName}, inst.Class().Bases())
}
