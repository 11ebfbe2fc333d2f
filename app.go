package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chazu/slime/pkg/breath"
	"github.com/chazu/slime/pkg/config"
	"github.com/chazu/slime/pkg/engine"
	"github.com/chazu/slime/pkg/kernel"
	"github.com/chazu/slime/pkg/logging"
	"github.com/chazu/slime/pkg/tessellate"
)

// colorPalette assigns distinct colors to parts, wrapping around.
var colorPalette = []string{
	"#7BC96F", "#4A90D9", "#E67E22", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. Its exported methods are bound to the
// frontend.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	breath *breath.Controller
	logger *log.Logger
	start  time.Time
}

// MeshData is the mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32  `json:"vertices"`
	Normals  []float32  `json:"normals"`
	UVs      []float32  `json:"uvs"`
	Indices  []uint32   `json:"indices"`
	Min      [3]float32 `json:"min"`
	Max      [3]float32 `json:"max"`
	PartName string     `json:"partName"`
	Color    string     `json:"color"`
}

// EvalErrorData is an evaluation error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is returned by Evaluate and LoadScene.
type EvalResult struct {
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
}

// BridgeResult is returned by the breath bridge bindings.
type BridgeResult struct {
	Mode      string `json:"mode"`
	Character string `json:"character"`
	Changed   bool   `json:"changed"`
	Reply     string `json:"reply,omitempty"` // message to forward to the bridge
	Error     string `json:"error,omitempty"`
}

// NewApp creates the backend with a fresh engine. The breath controller
// starts in breath control mode.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		breath: breath.NewController(breath.ModeBreathControl),
		logger: logging.New("slime", "info"),
		start:  time.Now(),
	}
}

// startup is called by Wails when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

func newResult() EvalResult {
	return EvalResult{Meshes: []MeshData{}, Errors: []EvalErrorData{}}
}

// Evaluate runs a scene script and returns the generated meshes. This is
// the binding behind the editor.
func (a *App) Evaluate(source string) EvalResult {
	result := newResult()

	scene, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.logger.Error("evaluate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}
	return a.render(scene, result)
}

// LoadScene reads a TOML scene file and returns the generated meshes.
func (a *App) LoadScene(path string) EvalResult {
	result := newResult()
	scene, err := config.Load(path)
	if err != nil {
		a.logger.Warn("load scene failed", "path", path, "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	return a.render(scene, result)
}

func (a *App) render(scene *config.Scene, result EvalResult) EvalResult {
	meshes, err := tessellate.Tessellate(scene)
	if err != nil {
		a.logger.Warn("tessellate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, meshData(m, colorPalette[i%len(colorPalette)]))
	}
	a.logger.Debug("scene rendered", "meshes", len(meshes))
	return result
}

func meshData(m *kernel.Mesh, color string) MeshData {
	return MeshData{
		Vertices: m.Vertices,
		Normals:  m.Normals,
		UVs:      m.UVs,
		Indices:  m.Indices,
		Min:      m.Min,
		Max:      m.Max,
		PartName: m.PartName,
		Color:    color,
	}
}

// BridgeMessage feeds one JSON message from the breath bridge into the
// controller and reports the resulting character state. Pings are
// answered through Reply.
func (a *App) BridgeMessage(raw string) BridgeResult {
	p, err := breath.Decode([]byte(raw))
	if err != nil {
		a.logger.Warn("bad bridge message", "err", err)
		return a.bridgeResult(false, "", err)
	}
	var reply string
	if ping, ok := p.(breath.Ping); ok {
		reply, err = encode(breath.Pong{Timestamp: ping.Timestamp})
	}
	changed := a.breath.Apply(p)
	if changed {
		a.logger.Info("character state", "state", a.breath.State(), "breath", a.breath.Breath())
	}
	return a.bridgeResult(changed, reply, err)
}

// SetCharacterState applies a state chosen in the UI. It only takes
// effect in manual mode, and then returns the message for the bridge.
func (a *App) SetCharacterState(state string) BridgeResult {
	var s breath.CharacterState
	if err := s.UnmarshalText([]byte(state)); err != nil {
		return a.bridgeResult(false, "", err)
	}
	msg, changed := a.breath.SetCharacterState(s, time.Since(a.start).Seconds())
	if !changed {
		return a.bridgeResult(false, "", nil)
	}
	reply, err := encode(msg)
	return a.bridgeResult(true, reply, err)
}

func encode(p breath.Payload) (string, error) {
	data, err := breath.Encode(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *App) bridgeResult(changed bool, reply string, err error) BridgeResult {
	r := BridgeResult{
		Mode:      a.breath.Mode().String(),
		Character: a.breath.State().String(),
		Changed:   changed,
		Reply:     reply,
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// ExportScene evaluates a scene script and returns the equivalent TOML
// scene file, with every default written out.
func (a *App) ExportScene(source string) (string, error) {
	scene, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		return "", err
	}
	if len(evalErrs) > 0 {
		return "", evalErrs[0]
	}
	data, err := config.Marshal(scene)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
