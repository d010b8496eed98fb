package plugin_test

import (
	"bytes"
	"context"
	"encoding/gob"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockart/internal/host"
	"github.com/roach88/blockart/internal/plugin"
	"github.com/roach88/blockart/internal/settings"
	"github.com/roach88/blockart/internal/store"
)

// recorder collects lifecycle events in order.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// fakeModule records its initialization.
type fakeModule struct {
	name  string
	rec   *recorder
	err   error
	calls int
}

func (m *fakeModule) Name() string { return m.name }

func (m *fakeModule) Init(p *plugin.Plugin) error {
	m.calls++
	m.rec.add("init:" + m.name)
	return m.err
}

func newRuntime(t *testing.T, locale string) *host.Runtime {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "blockart.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return host.New(st, locale)
}

func quietConfig(dir string) plugin.Config {
	return plugin.Config{
		Dir:         dir,
		IDGenerator: plugin.NewFixedGenerator("instance-1"),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func modulesFor(rec *recorder, names ...string) ([]plugin.Module, []*fakeModule) {
	var mods []plugin.Module
	var fakes []*fakeModule
	for _, n := range names {
		f := &fakeModule{name: n, rec: rec}
		mods = append(mods, f)
		fakes = append(fakes, f)
	}
	return mods, fakes
}

var collaborators = []string{"activation", "deactivation", "admin", "review", "blocks", "script-style", "ajax"}

func TestLoader_ReturnsSameInstance(t *testing.T) {
	rt := newRuntime(t, "en_US")
	loader := plugin.NewLoader(rt, quietConfig(t.TempDir()), nil)

	p1, err := loader.Get()
	require.NoError(t, err)
	p2, err := loader.Get()
	require.NoError(t, err)

	assert.Same(t, p1, p2)
	assert.Equal(t, "instance-1", p1.ID())
	assert.True(t, p1.Ready())
}

func TestLoader_ConcurrentGetBuildsOnce(t *testing.T) {
	rt := newRuntime(t, "en_US")
	rec := &recorder{}
	mods, fakes := modulesFor(rec, collaborators...)
	loader := plugin.NewLoader(rt, quietConfig(t.TempDir()), mods)

	var wg sync.WaitGroup
	got := make([]*plugin.Plugin, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := loader.Get()
			assert.NoError(t, err)
			got[i] = p
		}(i)
	}
	wg.Wait()

	for _, p := range got {
		assert.Same(t, got[0], p)
	}
	for _, f := range fakes {
		assert.Equal(t, 1, f.calls, f.name)
	}
}

func TestNew_InitializesModulesInOrder(t *testing.T) {
	rt := newRuntime(t, "en_US")
	rec := &recorder{}
	mods, _ := modulesFor(rec, collaborators...)

	p, err := plugin.NewLoader(rt, quietConfig(t.TempDir()), mods).Get()
	require.NoError(t, err)

	want := make([]string, len(collaborators))
	for i, n := range collaborators {
		want[i] = "init:" + n
	}
	assert.Equal(t, want, rec.list())
	assert.Equal(t, collaborators, p.Modules())
}

func TestNew_ModuleErrorPropagates(t *testing.T) {
	rt := newRuntime(t, "en_US")
	rec := &recorder{}
	mods, fakes := modulesFor(rec, collaborators...)
	boom := errors.New("admin exploded")
	fakes[2].err = boom

	loader := plugin.NewLoader(rt, quietConfig(t.TempDir()), mods)
	p, err := loader.Get()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, p)

	// Later modules never ran, and the failure is sticky.
	assert.Equal(t, []string{"init:activation", "init:deactivation", "init:admin"}, rec.list())
	_, err2 := loader.Get()
	assert.Equal(t, err, err2)
	assert.False(t, rt.Registry().HasAction(plugin.HostInitAction))
}

func TestNew_NilHost(t *testing.T) {
	_, err := plugin.NewLoader(nil, quietConfig(""), nil).Get()
	assert.ErrorIs(t, err, plugin.ErrNilHost)
}

func TestNew_AttachesToHostInitAtPriorityZero(t *testing.T) {
	rt := newRuntime(t, "en_US")
	rec := &recorder{}

	// Registered first, same priority: must still run before the plugin.
	rt.Hooks().AddAction(plugin.HostInitAction, 0, func(ctx context.Context, _ ...any) error {
		rec.add("earlier-listener")
		return nil
	})
	rt.Hooks().AddAction(plugin.HostInitAction, 1, func(ctx context.Context, _ ...any) error {
		rec.add("later-listener")
		return nil
	})
	rt.Hooks().AddAction(plugin.BeforeInitAction, 0, func(ctx context.Context, _ ...any) error {
		rec.add("before")
		return nil
	})

	_, err := plugin.NewLoader(rt, quietConfig(t.TempDir()), nil).Get()
	require.NoError(t, err)
	require.NoError(t, rt.Boot(context.Background()))

	assert.Equal(t, []string{"earlier-listener", "before", "later-listener"}, rec.list())
}

func TestStartup_Sequence(t *testing.T) {
	rt := newRuntime(t, "en_US")
	ctx := context.Background()
	var seenInBefore, seenInAfter int

	rt.Hooks().AddAction(plugin.BeforeInitAction, 10, func(ctx context.Context, _ ...any) error {
		seenInBefore = len(rt.SettingsRegistry().All())
		_, ok, err := rt.Store().GetOption(ctx, plugin.VersionOption)
		require.NoError(t, err)
		assert.False(t, ok, "version must not be written before blockart_before_init")
		return nil
	})
	rt.Hooks().AddAction(plugin.InitAction, 10, func(ctx context.Context, args ...any) error {
		seenInAfter = len(rt.SettingsRegistry().All())
		require.Len(t, args, 1)
		_, ok := args[0].(*plugin.Plugin)
		assert.True(t, ok)
		return nil
	})

	p, err := plugin.NewLoader(rt, quietConfig(t.TempDir()), nil).Get()
	require.NoError(t, err)
	assert.False(t, p.Started())

	require.NoError(t, rt.Boot(ctx))

	assert.True(t, p.Started())
	assert.Equal(t, 0, seenInBefore)
	assert.Equal(t, 3, seenInAfter)

	fired := rt.Registry().Fired()
	assert.Equal(t, []string{
		host.ActionPluginsLoaded,
		host.ActionInit,
		plugin.BeforeInitAction,
		plugin.InitAction,
		host.ActionLoaded,
	}, fired)

	v, ok, err := rt.Store().GetOption(ctx, plugin.VersionOption)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, plugin.Version, v)
}

func TestStartup_RegistersSettingsWithDefaults(t *testing.T) {
	rt := newRuntime(t, "en_US")
	ctx := context.Background()

	_, err := plugin.NewLoader(rt, quietConfig(t.TempDir()), nil).Get()
	require.NoError(t, err)
	require.NoError(t, rt.Boot(ctx))

	reg := rt.SettingsRegistry()
	want := map[string]struct {
		typ settings.Type
		def any
	}{
		settings.CSSPrintMethod:  {settings.TypeString, "internal-css"},
		settings.WidgetCSS:       {settings.TypeString, ""},
		settings.FooterTextRated: {settings.TypeBoolean, false},
	}

	all := reg.All()
	require.Len(t, all, 3)
	for _, s := range all {
		w, ok := want[s.Name]
		require.True(t, ok, s.Name)
		assert.Equal(t, w.typ, s.Type, s.Name)
		assert.Equal(t, w.def, s.Default, s.Name)
		assert.True(t, s.ShowInREST, s.Name)
		assert.Equal(t, settings.GroupName, s.Group, s.Name)

		v, err := reg.Value(ctx, s.Name)
		require.NoError(t, err)
		assert.Equal(t, w.def, v, s.Name)
	}
}

func TestStartup_RunsOnce(t *testing.T) {
	rt := newRuntime(t, "en_US")
	ctx := context.Background()

	_, err := plugin.NewLoader(rt, quietConfig(t.TempDir()), nil).Get()
	require.NoError(t, err)

	require.NoError(t, rt.Do(ctx, host.ActionInit))
	require.NoError(t, rt.Do(ctx, host.ActionInit))

	assert.Equal(t, 1, rt.Registry().DidAction(plugin.BeforeInitAction))
	assert.Equal(t, 1, rt.Registry().DidAction(plugin.InitAction))
}

func TestStartup_BeforeInitErrorStopsSequence(t *testing.T) {
	rt := newRuntime(t, "en_US")
	ctx := context.Background()
	boom := errors.New("observer failed")

	rt.Hooks().AddAction(plugin.BeforeInitAction, 0, func(ctx context.Context, _ ...any) error {
		return boom
	})

	p, err := plugin.NewLoader(rt, quietConfig(t.TempDir()), nil).Get()
	require.NoError(t, err)

	err = rt.Boot(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.False(t, p.Started())

	_, ok, err := rt.Store().GetOption(ctx, plugin.VersionOption)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, rt.SettingsRegistry().All())
	assert.Equal(t, 0, rt.Registry().DidAction(plugin.InitAction))
}

func TestStartup_LoadsTextDomain(t *testing.T) {
	dir := t.TempDir()
	langDir := filepath.Join(dir, "languages")
	require.NoError(t, os.MkdirAll(langDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(langDir, "blockart-de_DE.yaml"), []byte("Settings: Einstellungen\n"), 0o644))

	rt := newRuntime(t, "de_DE")
	_, err := plugin.NewLoader(rt, quietConfig(dir), nil).Get()
	require.NoError(t, err)
	require.NoError(t, rt.Boot(context.Background()))

	assert.True(t, rt.Translations().IsLoaded(plugin.TextDomain))
	assert.Equal(t, "Einstellungen", rt.Translations().Translate(plugin.TextDomain, "Settings"))
}

func TestStartup_MalformedTranslationsFail(t *testing.T) {
	dir := t.TempDir()
	langDir := filepath.Join(dir, "languages")
	require.NoError(t, os.MkdirAll(langDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(langDir, "blockart-de.yaml"), []byte("[broken"), 0o644))

	rt := newRuntime(t, "de")
	p, err := plugin.NewLoader(rt, quietConfig(dir), nil).Get()
	require.NoError(t, err)

	require.Error(t, rt.Boot(context.Background()))
	assert.False(t, p.Started())
	assert.Empty(t, rt.SettingsRegistry().All())
}

func TestUtils_Paths(t *testing.T) {
	rt := newRuntime(t, "en_US")
	p, err := plugin.NewLoader(rt, quietConfig("/srv/plugins/blockart"), nil).Get()
	require.NoError(t, err)

	u := p.Utils()
	assert.Equal(t, "/srv/plugins/blockart", u.Dir())
	assert.Equal(t, "/srv/plugins/blockart/languages", u.LanguagesDir())
	assert.Equal(t, "/srv/plugins/blockart/dist/blocks.css", u.AssetPath("blocks.css"))
	assert.NotNil(t, u.Logger())
}

func TestPlugin_CannotBeRebuiltFromSerializedForm(t *testing.T) {
	rt := newRuntime(t, "en_US")
	loader := plugin.NewLoader(rt, quietConfig(t.TempDir()), nil)
	p, err := loader.Get()
	require.NoError(t, err)

	// No exported state: JSON sees an empty object.
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	// Decoding produces a zero Plugin that is not a usable instance.
	var decoded plugin.Plugin
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.False(t, decoded.Ready())

	// gob refuses types without exported fields.
	var buf bytes.Buffer
	assert.Error(t, gob.NewEncoder(&buf).Encode(p))

	again, err := loader.Get()
	require.NoError(t, err)
	assert.Same(t, p, again)
}

func TestUUIDv7Generator(t *testing.T) {
	gen := plugin.UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestFixedGenerator_Exhausted(t *testing.T) {
	gen := plugin.NewFixedGenerator("only")
	assert.Equal(t, "only", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}
