package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Vec is a JSON-friendly [x, y, z] triple
type Vec [3]float64

func (v Vec) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func vecOf(v core.Vec3) Vec {
	return Vec{v.X, v.Y, v.Z}
}

// Description is the on-disk form of a scene
type Description struct {
	Camera     CameraDescription      `json:"camera"`
	Background BackgroundDescription  `json:"background"`
	Settings   SettingsDescription    `json:"settings"`
	Materials  []MaterialDescription  `json:"materials"`
	Primitives []PrimitiveDescription `json:"primitives"`
}

// CameraDescription mirrors geometry.CameraConfig; a zero aspect ratio follows the image
type CameraDescription struct {
	Center        Vec     `json:"center"`
	LookAt        Vec     `json:"look_at"`
	Up            Vec     `json:"up"`
	VFov          float64 `json:"vfov"`
	AspectRatio   float64 `json:"aspect_ratio,omitempty"`
	Aperture      float64 `json:"aperture,omitempty"`
	FocusDistance float64 `json:"focus_distance,omitempty"`
}

// BackgroundDescription is either {"type":"gradient","top":..,"bottom":..} or
// {"type":"uniform","color":..}
type BackgroundDescription struct {
	Type   string `json:"type"`
	Top    Vec    `json:"top"`
	Bottom Vec    `json:"bottom"`
	Color  Vec    `json:"color"`
}

// SettingsDescription mirrors SamplingConfig
type SettingsDescription struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	SamplesPerPixel int     `json:"samples_per_pixel"`
	MaxDepth        int     `json:"max_depth"`
	Seed            *uint64 `json:"seed,omitempty"`
	Workers         int     `json:"workers,omitempty"`
	TileSize        int     `json:"tile_size,omitempty"`
}

// MaterialDescription declares a material that primitives refer to by ID
type MaterialDescription struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"` // lambertian, metal or dielectric
	Albedo          Vec     `json:"albedo"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"refractive_index,omitempty"`
}

// PrimitiveDescription is a sphere (center, radius) or a quad (corner, u, v)
type PrimitiveDescription struct {
	Type     string  `json:"type"`
	Material string  `json:"material"`
	Center   Vec     `json:"center"`
	Radius   float64 `json:"radius,omitempty"`
	Corner   Vec     `json:"corner"`
	U        Vec     `json:"u"`
	V        Vec     `json:"v"`
}

// Load decodes a scene description; unknown fields are rejected
func Load(r io.Reader) (Description, error) {
	var desc Description
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return Description{}, fmt.Errorf("decode scene description: %w", err)
	}
	return desc, nil
}

// LoadFile reads a scene description from path
func LoadFile(path string) (Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return Description{}, err
	}
	defer f.Close()

	desc, err := Load(f)
	if err != nil {
		return Description{}, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

// Save writes desc as indented JSON
func Save(w io.Writer, desc Description) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(desc)
}

// Build resolves material references and returns an unprocessed scene
func (d Description) Build() (*Scene, error) {
	materials := make(map[string]*material.Material, len(d.Materials))
	for i, md := range d.Materials {
		if md.ID == "" {
			return nil, fmt.Errorf("%w: material %d has no id", ErrInvalidConfig, i)
		}
		if _, dup := materials[md.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate material id '%s'", ErrInvalidConfig, md.ID)
		}
		mat, err := md.build()
		if err != nil {
			return nil, err
		}
		materials[md.ID] = mat
	}

	primitives := make([]geometry.Primitive, 0, len(d.Primitives))
	for i, pd := range d.Primitives {
		mat, ok := materials[pd.Material]
		if !ok {
			return nil, fmt.Errorf("%w: %s %d references unknown material '%s'", ErrInvalidConfig, pd.Type, i, pd.Material)
		}
		switch pd.Type {
		case "sphere":
			primitives = append(primitives, geometry.NewSpherePrimitive(pd.Center.toVec3(), pd.Radius, mat))
		case "quad":
			primitives = append(primitives, geometry.NewQuadPrimitive(pd.Corner.toVec3(), pd.U.toVec3(), pd.V.toVec3(), mat))
		default:
			return nil, fmt.Errorf("%w: primitive %d has unknown type '%s'", ErrInvalidConfig, i, pd.Type)
		}
	}

	background, err := d.Background.build()
	if err != nil {
		return nil, err
	}

	return &Scene{
		CameraConfig: geometry.CameraConfig{
			Center:        d.Camera.Center.toVec3(),
			LookAt:        d.Camera.LookAt.toVec3(),
			Up:            d.Camera.Up.toVec3(),
			VFov:          d.Camera.VFov,
			AspectRatio:   d.Camera.AspectRatio,
			Aperture:      d.Camera.Aperture,
			FocusDistance: d.Camera.FocusDistance,
		},
		Primitives: primitives,
		Background: background,
		SamplingConfig: SamplingConfig{
			Width:           d.Settings.Width,
			Height:          d.Settings.Height,
			SamplesPerPixel: d.Settings.SamplesPerPixel,
			MaxDepth:        d.Settings.MaxDepth,
			Seed:            d.Settings.Seed,
			Workers:         d.Settings.Workers,
			TileSize:        d.Settings.TileSize,
		},
	}, nil
}

func (md MaterialDescription) build() (*material.Material, error) {
	switch md.Type {
	case "lambertian":
		return material.NewLambertian(md.Albedo.toVec3()), nil
	case "metal":
		return material.NewMetal(md.Albedo.toVec3(), md.Fuzz), nil
	case "dielectric":
		if !(md.RefractiveIndex > 0) {
			return nil, fmt.Errorf("%w: dielectric '%s' needs a positive refractive_index", ErrInvalidConfig, md.ID)
		}
		return material.NewDielectric(md.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("%w: material '%s' has unknown type '%s'", ErrInvalidConfig, md.ID, md.Type)
	}
}

func (bd BackgroundDescription) build() (Background, error) {
	switch bd.Type {
	case "", "gradient":
		if bd.Top == (Vec{}) && bd.Bottom == (Vec{}) {
			return NewSkyBackground(), nil
		}
		return NewGradientBackground(bd.Top.toVec3(), bd.Bottom.toVec3()), nil
	case "uniform":
		return NewUniformBackground(bd.Color.toVec3()), nil
	default:
		return Background{}, fmt.Errorf("%w: unknown background type '%s'", ErrInvalidConfig, bd.Type)
	}
}

// Describe converts a scene back to its on-disk form. Materials shared between
// primitives are written once.
func Describe(s *Scene) Description {
	desc := Description{
		Camera: CameraDescription{
			Center:        vecOf(s.CameraConfig.Center),
			LookAt:        vecOf(s.CameraConfig.LookAt),
			Up:            vecOf(s.CameraConfig.Up),
			VFov:          s.CameraConfig.VFov,
			AspectRatio:   s.CameraConfig.AspectRatio,
			Aperture:      s.CameraConfig.Aperture,
			FocusDistance: s.CameraConfig.FocusDistance,
		},
		Settings: SettingsDescription{
			Width:           s.SamplingConfig.Width,
			Height:          s.SamplingConfig.Height,
			SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
			MaxDepth:        s.SamplingConfig.MaxDepth,
			Seed:            s.SamplingConfig.Seed,
			Workers:         s.SamplingConfig.Workers,
			TileSize:        s.SamplingConfig.TileSize,
		},
	}

	switch s.Background.Kind {
	case BackgroundUniform:
		desc.Background = BackgroundDescription{Type: "uniform", Color: vecOf(s.Background.Top)}
	default:
		desc.Background = BackgroundDescription{Type: "gradient", Top: vecOf(s.Background.Top), Bottom: vecOf(s.Background.Bottom)}
	}

	ids := make(map[*material.Material]string)
	for _, p := range s.Primitives {
		id, ok := ids[p.Material]
		if !ok {
			id = fmt.Sprintf("m%d", len(ids))
			ids[p.Material] = id
			desc.Materials = append(desc.Materials, describeMaterial(id, p.Material))
		}

		switch p.Kind {
		case geometry.KindSphere:
			desc.Primitives = append(desc.Primitives, PrimitiveDescription{
				Type: "sphere", Material: id, Center: vecOf(p.Sphere.Center), Radius: p.Sphere.Radius,
			})
		case geometry.KindQuad:
			desc.Primitives = append(desc.Primitives, PrimitiveDescription{
				Type: "quad", Material: id, Corner: vecOf(p.Quad.Corner), U: vecOf(p.Quad.U), V: vecOf(p.Quad.V),
			})
		}
	}
	return desc
}

func describeMaterial(id string, m *material.Material) MaterialDescription {
	md := MaterialDescription{ID: id, Type: m.Kind.String()}
	switch m.Kind {
	case material.KindMetal:
		md.Albedo, md.Fuzz = vecOf(m.Albedo), m.Fuzz
	case material.KindDielectric:
		md.RefractiveIndex = m.RefractiveIndex
	default:
		md.Albedo = vecOf(m.Albedo)
	}
	return md
}
