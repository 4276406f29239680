package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hookScene logs every hook call next to its entities' calls.
type hookScene struct {
	BasicScene
	log *[]string
}

func (h *hookScene) ModifyScene(*Scene)         { *h.log = append(*h.log, "scene.modify") }
func (h *hookScene) OnSceneAwake(*Scene)        { *h.log = append(*h.log, "scene.awake") }
func (h *hookScene) OnSceneStart(*Scene)        { *h.log = append(*h.log, "scene.start") }
func (h *hookScene) OnBeforeFrameRender(*Scene) { *h.log = append(*h.log, "scene.before") }
func (h *hookScene) OnRender(*Scene)            { *h.log = append(*h.log, "scene.render") }
func (h *hookScene) OnAfterRender(*Scene)       { *h.log = append(*h.log, "scene.after") }
func (h *hookScene) OnResize(_ *Scene, ev ResizeEvent) {
	*h.log = append(*h.log, "scene.resize")
}

func canvasIn(w, h float64) *Box {
	doc := NewDocument()
	section := doc.NewBox("section", nil, Rect{0, 0, w, h})
	return doc.NewBox("canvas", section, Rect{0, 0, w, h})
}

func TestSceneLifecycleOrder(t *testing.T) {
	var log []string
	def := &hookScene{log: &log}
	def.EntityDefs = []EntityDef{
		{Key: "one", Components: []ComponentDef{spyDef("one", &log)}},
		{Key: "two", Components: []ComponentDef{spyDef("two", &log)}},
	}
	def.CameraSet = map[string]Camera{DefaultCameraKey: NewPerspectiveCamera(75)}

	s := NewScene(def, SceneContext{Canvas: canvasIn(800, 400)})
	require.NoError(t, s.Awake())
	require.NoError(t, s.Start())
	s.Update(1)
	s.LateUpdate(1)
	s.AfterRender()
	s.Resize(ResizeEvent{Width: 10, Height: 10})

	assert.Equal(t, []string{
		"scene.modify",
		"one.awake", "two.awake", "scene.awake",
		"one.start", "two.start", "scene.start",
		"scene.before", "one.update(1)", "two.update(1)", "scene.render",
		"one.late(1)", "two.late(1)",
		"scene.after",
		"scene.resize", "one.resize(10x10)", "two.resize(10x10)",
	}, log)

	e, ok := s.Instance("two")
	require.True(t, ok)
	assert.Same(t, s, e.Scene())
	assert.Len(t, s.Entities(), 2)
	assert.Equal(t, []*Object{s.Entities()[0].Group(), s.Entities()[1].Group()}, s.Graph().Children())
}

func TestSceneAwakeAndStartOnce(t *testing.T) {
	var log []string
	def := &hookScene{log: &log}
	s := NewScene(def, SceneContext{})
	require.NoError(t, s.Awake())
	require.NoError(t, s.Awake())
	require.NoError(t, s.Start())
	require.NoError(t, s.Start())
	assert.Equal(t, []string{"scene.modify", "scene.awake", "scene.start"}, log)
}

func TestSceneDefaultCameraAdaptsAspect(t *testing.T) {
	cam := NewPerspectiveCamera(75)
	def := &BasicScene{CameraSet: map[string]Camera{DefaultCameraKey: cam}}
	s := NewScene(def, SceneContext{Canvas: canvasIn(800, 400)})
	require.NoError(t, s.Awake())

	assert.Same(t, cam, s.CurrentCamera())
	assert.Equal(t, float32(2), cam.Aspect)
}

func TestSceneCameraSelection(t *testing.T) {
	ortho := NewOrthographicCamera(-1, 1, 1, -1, 0.1, 10)
	persp := NewPerspectiveCamera(60)
	s := NewScene(&BasicScene{CameraSet: map[string]Camera{"top": ortho}}, SceneContext{Canvas: canvasIn(300, 100)})
	require.NoError(t, s.Awake())
	assert.Nil(t, s.CurrentCamera(), "no camera under the default key")

	s.SetCurrentCamera("top")
	assert.Same(t, ortho, s.CurrentCamera())

	s.AddCamera("side", persp)
	got, ok := s.Camera("side")
	require.True(t, ok)
	assert.Same(t, persp, got)
	s.SetCurrentCamera("side")
	assert.Equal(t, float32(3), persp.Aspect)

	s.SetCurrentCamera("missing")
	assert.Nil(t, s.CurrentCamera())
}

func TestSceneCamerasAreCopied(t *testing.T) {
	cams := map[string]Camera{}
	s := NewScene(&BasicScene{CameraSet: cams}, SceneContext{})
	s.AddCamera("extra", NewPerspectiveCamera(50))
	assert.Empty(t, cams)
}

func TestAdaptPerspectiveCameraGuards(t *testing.T) {
	t.Run("no parent", func(t *testing.T) {
		cam := NewPerspectiveCamera(75)
		orphan := NewDocument().NewBox("c", nil, Rect{0, 0, 800, 400})
		s := NewScene(&BasicScene{CameraSet: map[string]Camera{DefaultCameraKey: cam}}, SceneContext{Canvas: orphan})
		require.NoError(t, s.Awake())
		assert.Equal(t, float32(1), cam.Aspect)
	})
	t.Run("zero height", func(t *testing.T) {
		cam := NewPerspectiveCamera(75)
		s := NewScene(&BasicScene{CameraSet: map[string]Camera{DefaultCameraKey: cam}}, SceneContext{Canvas: canvasIn(800, 0)})
		require.NoError(t, s.Awake())
		assert.Equal(t, float32(1), cam.Aspect)
	})
}

func TestSceneLoggerNeverNil(t *testing.T) {
	s := NewScene(&BasicScene{}, SceneContext{})
	assert.NotNil(t, s.Logger())
}
