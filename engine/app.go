package engine

import (
	"context"
	"fmt"

	"github.com/gogpu/own"
	"github.com/gogpu/own/config"
)

// labelSize is the caption font size in points.
const labelSize = 14

// Stats summarizes a run.
type Stats struct {
	Frames           int
	WaypointsReached int
	Laps             int
}

// App drives the scene: it owns the window, the shape factory, the label face
// and every root actor, and moves the follower along the waypoints.
type App struct {
	cfg  *config.Config
	sink FrameSink

	window   own.Unique[Window]
	shapes   own.Unique[ShapeFactory]
	labels   own.Unique[LabelFace]
	actors   []own.Shared[Actor]
	follower own.Shared[Actor]

	background RGBA
	waypoints  []Vec2
	current    int
	clock      *Clock
	stats      Stats
	ready      bool
}

// NewApp returns an uninitialized app. A nil cfg uses config.Default and a nil
// sink discards frames.
func NewApp(cfg *config.Config, sink FrameSink) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if sink == nil {
		sink = DiscardSink{}
	}
	return &App{cfg: cfg, sink: sink}
}

// Initialize opens the window and builds the scene. Calling it twice is a
// no-op.
func (a *App) Initialize() error {
	if a.ready {
		return nil
	}
	bg, err := ParseHex(a.cfg.Background)
	if err != nil {
		return err
	}
	a.background = bg

	win, err := NewWindow(a.cfg.Window.Title, a.cfg.Window.Width, a.cfg.Window.Height, a.sink)
	if err != nil {
		return err
	}
	a.window.Reset(win)
	a.shapes.Reset(NewShapeFactory(a.cfg.MaskCache))

	if a.cfg.Labels {
		face, err := NewLabelFace(labelSize)
		if err != nil {
			a.Cleanup()
			return err
		}
		a.labels.Reset(face)
	}

	for _, ac := range a.cfg.Actors {
		if err := a.addActor(ac); err != nil {
			a.Cleanup()
			return err
		}
	}

	a.waypoints = a.waypoints[:0]
	for _, p := range a.cfg.Waypoints {
		a.waypoints = append(a.waypoints, Vec2{p.X, p.Y})
	}
	a.current = 0
	a.clock = NewClock(a.cfg.FPS, a.cfg.Pace)
	a.ready = true

	own.Logger().Info("engine: initialized",
		"title", a.cfg.Window.Title,
		"actors", len(a.actors),
		"waypoints", len(a.waypoints))
	return nil
}

func (a *App) addActor(ac config.Actor) error {
	kind, err := ParseShapeKind(ac.Shape)
	if err != nil {
		return err
	}
	fill := RGB(1, 1, 1)
	if ac.Color != "" {
		if fill, err = ParseHex(ac.Color); err != nil {
			return fmt.Errorf("engine: actor %q: %w", ac.Name, err)
		}
	}

	shape := a.shapes.Value().Create(kind, ac.Size, fill)
	act := NewActor(ac.Name, &shape)
	act.Position = Vec2{ac.X, ac.Y}
	root := own.NewShared(act)

	if a.labels.Get() != nil {
		lbl := NewActor(ac.Name+"_label", nil)
		lbl.Text = a.labels.Value().Caption(ac.Name)
		lbl.Position = Vec2{0, -(ac.Size + 6)}
		child := own.NewShared(lbl)
		Attach(&root, &child)
		child.Drop()
	}

	if ac.Follow {
		a.follower.Assign(&root)
	}
	a.actors = append(a.actors, root.Move())
	return nil
}

// Follower returns the actor that walks the waypoints. The handle stays owned
// by the app.
func (a *App) Follower() *own.Shared[Actor] {
	return &a.follower
}

// Window returns the app window, or nil before Initialize.
func (a *App) Window() *Window {
	return a.window.Get()
}

// NumActors returns the number of root actors.
func (a *App) NumActors() int {
	return len(a.actors)
}

// Actor returns the i-th root actor handle.
func (a *App) Actor(i int) *own.Shared[Actor] {
	return &a.actors[i]
}

// CurrentWaypoint returns the index of the waypoint the follower walks to.
func (a *App) CurrentWaypoint() int {
	return a.current
}

// Stats returns counters gathered so far.
func (a *App) Stats() Stats {
	return a.stats
}

// Update advances the simulation by dt seconds.
func (a *App) Update(dt float64) {
	a.UpdateMovement(dt, &a.follower)
}

// UpdateMovement moves actor toward the current waypoint at the configured
// speed. Once it is within the arrive radius the next waypoint, wrapping
// around, becomes current. An empty handle is ignored.
func (a *App) UpdateMovement(dt float64, actor *own.Shared[Actor]) {
	if actor.IsNull() || len(a.waypoints) == 0 {
		return
	}
	act := actor.Value()
	target := a.waypoints[a.current]
	dir := target.Sub(act.Position)
	dist := dir.Length()

	if dist <= a.cfg.ArriveRadius {
		a.current = (a.current + 1) % len(a.waypoints)
		a.stats.WaypointsReached++
		if a.current == 0 {
			a.stats.Laps++
		}
		own.Logger().Debug("engine: waypoint reached",
			"actor", act.Name,
			"next", a.current,
			"laps", a.stats.Laps)
		return
	}

	step := a.cfg.Speed * dt
	if step > dist {
		step = dist
	}
	act.Position = act.Position.Add(dir.Mul(step / dist))
}

// Render draws every actor and displays the frame.
func (a *App) Render() error {
	if !a.ready {
		return ErrNotInitialized
	}
	win := a.window.Value()
	win.Clear(a.background)
	for i := range a.actors {
		a.drawActor(win, &a.actors[i])
	}
	if err := win.Display(); err != nil {
		return err
	}
	a.stats.Frames++
	return nil
}

func (a *App) drawActor(win *Window, h *own.Shared[Actor]) {
	act := h.Value()
	pos := act.WorldPosition()
	if s := act.Shape(); s != nil {
		m := a.shapes.Value().Mask(s)
		if !m.IsNull() {
			win.Draw(m.Value(), pos, s.Fill)
			m.Drop()
		}
	}
	if act.Text != "" {
		if face := a.labels.Get(); face != nil {
			face.Draw(win.Canvas(), act.Text, pos, RGB(1, 1, 1))
		}
	}
	for i := 0; i < act.NumChildren(); i++ {
		a.drawActor(win, act.Child(i))
	}
}

// Cleanup releases the scene and closes the window. It is safe to call more
// than once.
func (a *App) Cleanup() {
	a.follower.Drop()
	for i := range a.actors {
		a.actors[i].Drop()
	}
	a.actors = nil
	a.labels.Drop()
	a.shapes.Drop()
	a.window.Drop()
	if a.ready {
		own.Logger().Info("engine: cleaned up", "frames", a.stats.Frames, "laps", a.stats.Laps)
	}
	a.ready = false
}

// Run initializes the app, then updates and renders until the configured
// number of frames is displayed, the window closes or ctx is done. Cleanup
// always runs before Run returns.
func (a *App) Run(ctx context.Context) (Stats, error) {
	if err := a.Initialize(); err != nil {
		return a.stats, err
	}
	defer a.Cleanup()

	win := a.window.Value()
	for win.IsOpen() {
		if a.cfg.Frames > 0 && a.stats.Frames >= a.cfg.Frames {
			break
		}
		select {
		case <-ctx.Done():
			return a.stats, ctx.Err()
		default:
		}
		a.Update(a.clock.Tick())
		if err := a.Render(); err != nil {
			return a.stats, err
		}
	}
	return a.stats, nil
}
