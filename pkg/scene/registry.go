package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by New for names that are not registered
var ErrUnknownScene = errors.New("scene: unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type registryEntry struct {
	info  SceneInfo
	build func() *Scene
}

var registry = map[string]registryEntry{
	"default": {
		info:  SceneInfo{ID: "default", DisplayName: "Default", Description: "Red diffuse sphere on a large ground sphere"},
		build: NewDefaultScene,
	},
	"materials": {
		info:  SceneInfo{ID: "materials", DisplayName: "Materials", Description: "Diffuse, metal, glass and hollow glass spheres"},
		build: NewMaterialsScene,
	},
	"spheregrid": {
		info:  SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "Hundreds of small random spheres"},
		build: NewSphereGridScene,
	},
	"quads": {
		info:  SceneInfo{ID: "quads", DisplayName: "Quads", Description: "Open box of quads with a mirror block and a glass ball"},
		build: NewQuadsScene,
	},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns metadata for every built-in scene, sorted by ID
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(registry))
	for _, name := range Names() {
		infos = append(infos, registry[name].info)
	}
	return infos
}

// New builds a fresh copy of the named scene. The caller owns the result and may
// change its settings before calling Preprocess.
func New(name string) (*Scene, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}
	return entry.build(), nil
}
