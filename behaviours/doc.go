// Package behaviours holds reusable components for stage entities.
//
// Each constructor has the [stage.NewComponentFunc] shape (or returns one) so
// it can be listed directly in an [stage.EntityDef]:
//
//	stage.EntityDef{Key: "CameraPanner", Components: []stage.ComponentDef{
//		{Key: "Component", New: behaviours.NewCameraPanner},
//	}}
package behaviours
