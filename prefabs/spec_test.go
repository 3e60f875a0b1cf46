package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedAnimationSpec(t *testing.T) {
	spec, err := LoadAnimationSpec("knight.yaml")
	require.NoError(t, err)

	assert.Equal(t, "knight", spec.Name)
	assert.Equal(t, "idle", spec.Current)
	require.Contains(t, spec.Defs, "attack")

	attack := spec.Defs["attack"]
	assert.Equal(t, 6, attack.FrameCount)
	assert.False(t, attack.Loop)
	assert.Equal(t, []string{"Swing"}, attack.Events[2])
	assert.Equal(t, []string{"Land", "footstep"}, spec.Defs["jump"].Events[4])
}

func TestLoadBindingSpecAndScripts(t *testing.T) {
	spec, err := LoadBindingSpec("prefabs/knight_bindings.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, spec.Events)

	for _, b := range spec.Events {
		src, err := LoadScript(b.Script)
		require.NoError(t, err, b.Script)
		assert.NotEmpty(t, src, b.Script)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		spec    AnimationSpec
		wantErr string
	}{
		{
			name: "ok",
			spec: AnimationSpec{Defs: map[string]AnimationDefSpec{
				"idle": {FrameCount: 2, Events: map[int][]string{1: {"blink"}}},
			}, Current: "idle"},
		},
		{
			name:    "no_frames",
			spec:    AnimationSpec{Defs: map[string]AnimationDefSpec{"idle": {}}},
			wantErr: "frame_count must be positive",
		},
		{
			name: "event_out_of_range",
			spec: AnimationSpec{Defs: map[string]AnimationDefSpec{
				"idle": {FrameCount: 2, Events: map[int][]string{2: {"blink"}}},
			}},
			wantErr: "event frame 2 out of range",
		},
		{
			name:    "unknown_current",
			spec:    AnimationSpec{Current: "run"},
			wantErr: `current clip "run" not defined`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.spec.Validate()
			if c.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.wantErr)
		})
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	data := []byte("name: override\ndefs:\n  idle:\n    frame_count: 1\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "knight.yaml"), data, 0o644))

	spec, err := LoadAnimationSpec("knight.yaml")
	require.NoError(t, err)
	assert.Equal(t, "override", spec.Name)

	_, ok := ModTime("knight.yaml")
	assert.True(t, ok)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile[AnimationSpec](filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: read")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("defs: [unterminated"), 0o644))
	_, err = LoadFile[AnimationSpec](bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: unmarshal")
}

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "clip.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: clip\n"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, target, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
}

func TestFileKinds(t *testing.T) {
	assert.True(t, IsSpecFile("a/b.YML"))
	assert.True(t, IsScriptFile("x.Tengo"))
	assert.False(t, IsSpecFile("x.tengo"))
	assert.False(t, IsScriptFile("x.lua"))
}
