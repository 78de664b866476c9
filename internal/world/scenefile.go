package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"laserpuzzle/internal/assets"
	"laserpuzzle/internal/components"
	"laserpuzzle/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnknownComponent = errors.New("unknown component type")
	ErrUnknownScript    = errors.New("unknown script")
)

// --- JSON types ---

type SceneFile struct {
	Name    string      `json:"name,omitempty"`
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	ID         string            `json:"id,omitempty"`
	Name       string            `json:"name"`
	Parent     string            `json:"parent,omitempty"`
	Tags       []string          `json:"tags,omitempty"`
	Layer      uint8             `json:"layer,omitempty"`
	Active     *bool             `json:"active,omitempty"`
	Position   [3]float32        `json:"position"`
	Rotation   [3]float32        `json:"rotation"`
	Scale      [3]float32        `json:"scale"`
	Components []json.RawMessage `json:"components"`
}

type componentHeader struct {
	Type string `json:"type"`
}

type meshRendererDef struct {
	Type  string     `json:"type"`
	Mesh  string     `json:"mesh,omitempty"`
	Size  [3]float32 `json:"size"`
	Color string     `json:"color"`
}

type boxColliderDef struct {
	Type   string     `json:"type"`
	Size   [3]float32 `json:"size"`
	Offset [3]float32 `json:"offset,omitempty"`
}

type sphereColliderDef struct {
	Type   string     `json:"type"`
	Radius float32    `json:"radius"`
	Offset [3]float32 `json:"offset,omitempty"`
}

type outlineDef struct {
	Type  string  `json:"type"`
	Color string  `json:"color,omitempty"`
	Width float32 `json:"width,omitempty"`
}

type materialHighlightDef struct {
	Type  string `json:"type"`
	Color string `json:"color,omitempty"`
}

type cameraDef struct {
	Type         string  `json:"type"`
	FOV          float32 `json:"fov,omitempty"`
	Near         float32 `json:"near,omitempty"`
	Far          float32 `json:"far,omitempty"`
	Orthographic bool    `json:"orthographic,omitempty"`
}

type activatorDef struct {
	Type    string   `json:"type"`
	Targets []string `json:"targets,omitempty"`
}

type scriptDef struct {
	Type  string         `json:"type"`
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
}

func vec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func arr(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Loading ---

// Load reads a scene file into a new world and assembles its puzzle.
func Load(path string) (*World, error) {
	w := New(path)
	if err := w.LoadScene(path); err != nil {
		return nil, err
	}
	w.Assemble()
	return w, nil
}

func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	if err := w.LoadSceneData(data); err != nil {
		return fmt.Errorf("load scene %s: %w", path, err)
	}
	return nil
}

// LoadSceneData builds objects from scene JSON. Objects without an id get a
// fresh one; parents are linked once every object exists.
func (w *World) LoadSceneData(data []byte) error {
	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}
	if sf.Name != "" {
		w.Scene.Name = sf.Name
	}

	objects := make([]*engine.GameObject, 0, len(sf.Objects))
	byID := make(map[uuid.UUID]*engine.GameObject, len(sf.Objects))
	for i, def := range sf.Objects {
		g, err := buildObject(def)
		if err != nil {
			return fmt.Errorf("object %d (%s): %w", i, def.Name, err)
		}
		if _, dup := byID[g.ID]; dup {
			return fmt.Errorf("object %d (%s): duplicate id %s", i, def.Name, g.ID)
		}
		byID[g.ID] = g
		objects = append(objects, g)
	}

	for i, def := range sf.Objects {
		if def.Parent == "" {
			continue
		}
		parentID, err := uuid.Parse(def.Parent)
		if err != nil {
			return fmt.Errorf("object %d (%s): parent: %w", i, def.Name, err)
		}
		parent, ok := byID[parentID]
		if !ok {
			return fmt.Errorf("object %d (%s): parent %s not found", i, def.Name, def.Parent)
		}
		parent.AddChild(objects[i])
	}

	for _, g := range objects {
		w.Scene.AddGameObject(g)
		w.Physics.AddObject(g)
	}
	w.log.Info("scene loaded", zap.String("scene", w.Scene.Name), zap.Int("objects", len(objects)))
	return nil
}

func buildObject(def ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	if def.ID != "" {
		id, err := uuid.Parse(def.ID)
		if err != nil {
			return nil, fmt.Errorf("id: %w", err)
		}
		g.ID = id
	}
	g.Tags = def.Tags
	g.Layer = min(engine.Layer(def.Layer), engine.MaxLayer)
	if def.Active != nil {
		g.Active = *def.Active
	}
	g.Transform.Position = vec(def.Position)
	g.Transform.Rotation = vec(def.Rotation)
	g.Transform.Scale = vec(def.Scale)
	if g.Transform.Scale == (rl.Vector3{}) {
		g.Transform.Scale = rl.Vector3{X: 1, Y: 1, Z: 1}
	}

	for _, raw := range def.Components {
		comp, err := loadComponent(raw)
		if err != nil {
			return nil, err
		}
		g.AddComponent(comp)
	}
	return g, nil
}

func loadComponent(raw json.RawMessage) (engine.Component, error) {
	var header componentHeader
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("component header: %w", err)
	}

	switch header.Type {
	case "MeshRenderer":
		var def meshRendererDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("%s: %w", header.Type, err)
		}
		size := vec(def.Size)
		if size == (rl.Vector3{}) {
			size = rl.Vector3{X: 1, Y: 1, Z: 1}
		}
		return components.NewMeshRenderer(components.ParseMeshType(def.Mesh), assets.LookupColor(def.Color), size), nil

	case "BoxCollider":
		var def boxColliderDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("%s: %w", header.Type, err)
		}
		col := components.NewBoxCollider(vec(def.Size))
		col.Offset = vec(def.Offset)
		return col, nil

	case "SphereCollider":
		var def sphereColliderDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("%s: %w", header.Type, err)
		}
		col := components.NewSphereCollider(def.Radius)
		col.Offset = vec(def.Offset)
		return col, nil

	case "Outline":
		var def outlineDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("%s: %w", header.Type, err)
		}
		o := components.NewOutline()
		if c, ok := assets.ParseColor(def.Color); ok {
			o.Color = c
		}
		if def.Width > 0 {
			o.Width = def.Width
		}
		return o, nil

	case "MaterialHighlight":
		var def materialHighlightDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("%s: %w", header.Type, err)
		}
		c, ok := assets.ParseColor(def.Color)
		if !ok {
			c = rl.Yellow
		}
		return components.NewMaterialHighlight(c), nil

	case "Animator":
		return components.NewAnimator(), nil

	case "Camera":
		var def cameraDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("%s: %w", header.Type, err)
		}
		cam := components.NewCamera()
		if def.FOV > 0 {
			cam.FOV = def.FOV
		}
		if def.Near > 0 {
			cam.Near = def.Near
		}
		if def.Far > 0 {
			cam.Far = def.Far
		}
		if def.Orthographic {
			cam.Projection = rl.CameraOrthographic
		}
		return cam, nil

	case "Activator":
		var def activatorDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("%s: %w", header.Type, err)
		}
		a := components.NewActivator()
		for _, id := range def.Targets {
			if ref := engine.ParseRef(id); ref.IsValid() {
				a.Targets = append(a.Targets, ref)
			}
		}
		return a, nil

	case "Script":
		var def scriptDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("%s: %w", header.Type, err)
		}
		comp := engine.CreateScript(def.Name, def.Props)
		if comp == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScript, def.Name)
		}
		return comp, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, header.Type)
	}
}

// --- Saving ---

func (w *World) SaveScene(path string) error {
	data, err := w.MarshalScene()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// MarshalScene encodes the scene in the format LoadSceneData reads.
func (w *World) MarshalScene() ([]byte, error) {
	sf := SceneFile{Name: w.Scene.Name}

	for _, g := range w.Scene.GameObjects {
		objDef := ObjectDef{
			ID:       g.ID.String(),
			Name:     g.Name,
			Tags:     g.Tags,
			Layer:    uint8(g.Layer),
			Position: arr(g.Transform.Position),
			Rotation: arr(g.Transform.Rotation),
			Scale:    arr(g.Transform.Scale),
		}
		if g.Parent != nil {
			objDef.Parent = g.Parent.ID.String()
		}
		if !g.Active {
			inactive := false
			objDef.Active = &inactive
		}

		for _, c := range g.Components() {
			raw, err := serializeComponent(c)
			if err != nil {
				return nil, fmt.Errorf("object %s: %w", g.Name, err)
			}
			if raw != nil {
				objDef.Components = append(objDef.Components, raw)
			}
		}

		sf.Objects = append(sf.Objects, objDef)
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}

func serializeComponent(c engine.Component) (json.RawMessage, error) {
	var def any

	switch comp := c.(type) {
	case *components.MeshRenderer:
		color := comp.Color
		if mh := engine.GetComponent[*components.MaterialHighlight](comp.GetGameObject()); mh != nil {
			if saved, ok := mh.SavedColor(); ok {
				color = saved
			}
		}
		def = meshRendererDef{
			Type:  "MeshRenderer",
			Mesh:  comp.MeshType.String(),
			Size:  arr(comp.Size),
			Color: assets.ColorName(color),
		}

	case *components.BoxCollider:
		def = boxColliderDef{
			Type:   "BoxCollider",
			Size:   arr(comp.Size),
			Offset: arr(comp.Offset),
		}

	case *components.SphereCollider:
		def = sphereColliderDef{
			Type:   "SphereCollider",
			Radius: comp.Radius,
			Offset: arr(comp.Offset),
		}

	case *components.Outline:
		def = outlineDef{
			Type:  "Outline",
			Color: assets.ColorName(comp.Color),
			Width: comp.Width,
		}

	case *components.MaterialHighlight:
		def = materialHighlightDef{
			Type:  "MaterialHighlight",
			Color: assets.ColorName(comp.Color),
		}

	case *components.Animator:
		def = componentHeader{Type: "Animator"}

	case *components.Camera:
		def = cameraDef{
			Type:         "Camera",
			FOV:          comp.FOV,
			Near:         comp.Near,
			Far:          comp.Far,
			Orthographic: comp.Projection == rl.CameraOrthographic,
		}

	case *components.Activator:
		d := activatorDef{Type: "Activator"}
		for _, ref := range comp.Targets {
			if ref.IsValid() {
				d.Targets = append(d.Targets, ref.String())
			}
		}
		def = d

	default:
		name, props, ok := engine.SerializeScript(c)
		if !ok {
			// Runtime-only components are not saved.
			return nil, nil
		}
		def = scriptDef{Type: "Script", Name: name, Props: props}
	}

	data, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal component: %w", err)
	}
	return data, nil
}
