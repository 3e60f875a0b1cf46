package script

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/milk9111/animevents/animevent"
	"github.com/milk9111/animevents/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordLogger struct {
	mu    sync.Mutex
	infos []string
	errs  []string
}

func (l *recordLogger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordLogger) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}

func TestCallbackStatePersists(t *testing.T) {
	log := &recordLogger{}
	src := []byte(`
state.n = (is_undefined(state.n) ? 0 : state.n) + 1
log(event, state.n)
`)
	cb, err := Compile("Jump", "jump.tengo", src, WithLogger(log))
	require.NoError(t, err)

	reg := animevent.New()
	reg.Subscribe(cb.Event, cb.Action())
	for i := 0; i < 3; i++ {
		reg.Handle("jump")
	}

	assert.Equal(t, 3, cb.Runs())
	assert.Equal(t, int64(3), cb.State()["n"])
	assert.Equal(t, []string{"jump.tengo: Jump 1", "jump.tengo: Jump 2", "jump.tengo: Jump 3"}, log.infos)
}

func TestCallbackStateRebind(t *testing.T) {
	cb, err := Compile("reset", "reset.tengo", []byte(`state = {cleared: true}`))
	require.NoError(t, err)
	require.NoError(t, cb.Run())
	assert.Equal(t, true, cb.State()["cleared"])
}

func TestCompileError(t *testing.T) {
	_, err := Compile("bad", "bad.tengo", []byte(`x := `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script: compile bad.tengo")
}

func TestRunErrorIsLogged(t *testing.T) {
	log := &recordLogger{}
	cb, err := Compile("boom", "boom.tengo", []byte("x := 1\nx()"), WithLogger(log))
	require.NoError(t, err)

	assert.NotPanics(t, func() { cb.Action()() })
	require.Len(t, log.errs, 1)
	assert.Contains(t, log.errs[0], `event "boom"`)
	assert.Zero(t, cb.Runs())
}

func TestTimeout(t *testing.T) {
	log := &recordLogger{}
	cb, err := Compile("spin", "spin.tengo", []byte(`for { }`), WithLogger(log), WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	cb.Action()()
	require.Len(t, log.errs, 1)
	assert.Contains(t, log.errs[0], "spin.tengo")
}

func TestBindEmbeddedKnight(t *testing.T) {
	spec, err := prefabs.LoadBindingSpec("knight_bindings.yaml")
	require.NoError(t, err)

	reg := animevent.New()
	callbacks, err := Bind(reg, spec, nil)
	require.NoError(t, err)
	require.Len(t, callbacks, len(spec.Events))

	for _, b := range spec.Events {
		assert.True(t, reg.Has(b.Name), b.Name)
	}

	reg.Handle("FOOTSTEP")
	reg.Handle("footstep")
	for _, cb := range callbacks {
		if cb.Event == "footstep" {
			assert.Equal(t, int64(2), cb.State()["steps"])
		}
	}
}

func TestBindErrors(t *testing.T) {
	load := func(name string) ([]byte, error) {
		if name == "missing.tengo" {
			return nil, fmt.Errorf("not found")
		}
		return []byte(`log(event)`), nil
	}

	cases := []struct {
		name    string
		spec    prefabs.BindingSpec
		wantErr string
		bound   int
	}{
		{
			name: "blank_event",
			spec: prefabs.BindingSpec{Events: []prefabs.EventBindingSpec{
				{Name: "ok", Script: "ok.tengo"},
				{Name: " ", Script: "ok.tengo"},
			}},
			wantErr: "binding 1 has no event name",
			bound:   1,
		},
		{
			name: "missing_script",
			spec: prefabs.BindingSpec{Events: []prefabs.EventBindingSpec{
				{Name: "x", Script: "missing.tengo"},
			}},
			wantErr: "script: load missing.tengo",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reg := animevent.New()
			callbacks, err := Bind(reg, &c.spec, load)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.wantErr)
			assert.Len(t, callbacks, c.bound)
			assert.Equal(t, c.bound, reg.Len())
		})
	}

	callbacks, err := Bind(animevent.New(), nil, load)
	assert.NoError(t, err)
	assert.Nil(t, callbacks)
}
