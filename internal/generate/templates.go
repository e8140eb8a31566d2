package generate

import (
	"github.com/polyforge/polyforge/internal/spec"
	"github.com/polyforge/polyforge/internal/target"
)

// templateSet is the full set of emitters for one framework. Emitters are
// pure functions of the spec element, so regeneration of the same
// specification snapshot is byte-identical.
type templateSet struct {
	language  string
	mapType   func(specType string) string
	component func(e spec.Entity) (string, string)
	model     func(e spec.Entity) (string, string)
	page      func(f spec.Flow) (string, string)
	service   func(c spec.Component) (string, string)
}

// templatesFor selects the template set for a framework. The switch is
// total over the known framework set: an unmapped framework returns the
// generic web set and false, so generation degrades instead of failing.
func templatesFor(fw target.Framework) (templateSet, bool) {
	switch fw {
	case target.FrameworkReact:
		return reactTemplates(), true
	case target.FrameworkVue:
		return vueTemplates(), true
	case target.FrameworkAngular:
		return angularTemplates(), true
	case target.FrameworkSvelte:
		return svelteTemplates(), true
	case target.FrameworkSwiftUI:
		return swiftUITemplates(), true
	case target.FrameworkJetpack:
		return jetpackTemplates(), true
	case target.FrameworkFlutter:
		return flutterTemplates(), true
	case target.FrameworkReactNative:
		return reactNativeTemplates(), true
	case target.FrameworkExpress:
		return expressTemplates(), true
	case target.FrameworkGin:
		return ginTemplates(), true
	case target.FrameworkFastAPI:
		return fastAPITemplates(), true
	case target.FrameworkSpring:
		return springTemplates(), true
	default:
		return genericWebTemplates(), false
	}
}

func tsType(t string) string {
	switch t {
	case "uuid", "string", "text":
		return "string"
	case "int", "float":
		return "number"
	case "bool":
		return "boolean"
	case "datetime":
		return "Date"
	case "json":
		return "Record<string, unknown>"
	default:
		return "unknown"
	}
}
