// Package stage is a small entity-component framework for the interactive
// canvases of a portfolio site, running on [Ebitengine].
//
// A page is a [Document] of laid-out boxes scrolled inside one window. Every
// box that hosts an animation is registered with a [Manager], which pairs it
// with a [Scene] and a [Renderer] and drives all of them from one shared
// frame loop. A [Gate] watches how much of each box is inside the viewport
// and pauses the renders that are scrolled out of view.
//
// # Quick start
//
//	m := stage.NewManager(stage.WithLogger(logger))
//	doc := m.Document()
//	section := doc.NewBox("hero-section", nil, stage.Rect{Width: 1280, Height: 720})
//	canvas := doc.NewBox("hero", section, section.Rect)
//
//	if err := m.Init(stage.InitArgs{
//		Name:       "hero",
//		Canvas:     canvas,
//		SceneClass: NewHeroScene,
//	}); err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(stage.Run(m, stage.RunConfig{Title: "Portfolio", Width: 1280, Height: 720}))
//
// # Lifecycle
//
// A [Scene] declares [EntityDef]s; an [Entity] declares [ComponentDef]s. On
// registration the scene is awoken and started:
//
//	Scene.Awake   -> default camera, Entity.Awake (instantiate + Component.Awake), OnSceneAwake
//	Scene.Start   -> Entity.Start (Component.Start + group export), OnSceneStart
//	every frame   -> OnBeforeFrameRender, Update, OnRender, draw, LateUpdate, OnAfterRender
//	window resize -> OnResize, Resize, camera aspect, renderer size
//	visibility    -> ViewEnter / ViewLeave
//
// Components embed [MonoBehaviour], which carries no-op defaults for every
// lifecycle method plus back-references to the owning entity and scene.
// Components that contribute something to draw implement [Exporter].
//
// [Ebitengine]: https://ebitengine.org
package stage
