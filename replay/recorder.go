package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"spacewars/engine"
	"spacewars/game"

	"github.com/rs/zerolog/log"
)

// Object is one sprite of a frame. Coordinates are written as strings, as the
// replay viewer expects.
type Object struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	X       float64 `json:"x,string"`
	Y       float64 `json:"y,string"`
	Bearing float64 `json:"r,string"`
}

type Info struct {
	Info string `json:"info"`
}

type DebugInfo struct {
	HumanAI        string `json:"humanai"`
	AlienAI        string `json:"alienai"`
	HumanShips     int    `json:"humanships,string"`
	AlienShips     int    `json:"alienships,string"`
	AdditionalInfo []Info `json:"additionalInfo"`
}

// Frame is the replay record of one tick.
type Frame struct {
	Tick        int           `json:"tick"`
	ObjectState []Object      `json:"object_state"`
	Actions     []game.Action `json:"actions,omitempty"`
	DebugInfo   DebugInfo     `json:"debug_info"`
}

// Recorder streams one frame per tick into a JSON array file.
type Recorder struct {
	f       *os.File
	w       *bufio.Writer
	humanAI string
	alienAI string
	frames  int
}

// NewRecorder truncates or creates the replay file. humanAI and alienAI label the
// agents in the debug info.
func NewRecorder(path, humanAI, alienAI string) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create replay directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create replay file: %w", err)
	}
	r := &Recorder{f: f, w: bufio.NewWriter(f), humanAI: humanAI, alienAI: alienAI}
	if _, err := r.w.WriteString("[\n"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write replay header: %w", err)
	}
	return r, nil
}

// Observe writes the frame of the tick just computed.
func (r *Recorder) Observe(report engine.Report) error {
	frame := r.frame(report)
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("failed to encode frame %d: %w", frame.Tick, err)
	}
	if r.frames > 0 {
		if _, err := r.w.WriteString(",\n"); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", frame.Tick, err)
		}
	}
	if _, err := r.w.Write(data); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", frame.Tick, err)
	}
	r.frames++
	return nil
}

// Close terminates the JSON array and closes the file.
func (r *Recorder) Close() error {
	if _, err := r.w.WriteString("\n]\n"); err != nil {
		r.f.Close()
		return fmt.Errorf("failed to write replay trailer: %w", err)
	}
	if err := r.w.Flush(); err != nil {
		r.f.Close()
		return fmt.Errorf("failed to flush replay: %w", err)
	}
	log.Debug().Int("frames", r.frames).Str("file", r.f.Name()).Msg("replay written")
	return r.f.Close()
}

func (r *Recorder) frame(report engine.Report) Frame {
	state := report.State
	w := state.World()
	frame := Frame{
		Tick:        state.Tick(),
		ObjectState: []Object{},
		Actions:     state.Actions(),
		DebugInfo: DebugInfo{
			HumanAI:        r.humanAI,
			AlienAI:        r.alienAI,
			HumanShips:     state.LiveCount(game.Human),
			AlienShips:     state.LiveCount(game.Alien),
			AdditionalInfo: []Info{},
		},
	}

	for _, p := range w.Lasers() {
		frame.ObjectState = append(frame.ObjectState, projectileObject(p))
	}
	for _, p := range w.Missiles() {
		frame.ObjectState = append(frame.ObjectState, projectileObject(p))
	}
	for _, s := range state.Ships() {
		if s.Dead {
			continue
		}
		if s.LeftMissile {
			pos := s.LeftMissilePosition()
			frame.ObjectState = append(frame.ObjectState, Object{ID: s.Name + "LeftMissile", Type: s.Team.String() + "Missile", X: pos.X, Y: pos.Y, Bearing: s.Bearing})
		}
		if s.RightMissile {
			pos := s.RightMissilePosition()
			frame.ObjectState = append(frame.ObjectState, Object{ID: s.Name + "RightMissile", Type: s.Team.String() + "Missile", X: pos.X, Y: pos.Y, Bearing: s.Bearing})
		}
		frame.ObjectState = append(frame.ObjectState, Object{ID: s.Name, Type: s.Team.String() + "Ship", X: s.Position.X, Y: s.Position.Y, Bearing: s.Bearing})
	}

	for _, d := range report.Decisions {
		text := fmt.Sprintf("%s passed", d.Ship)
		if !d.Passed {
			text = fmt.Sprintf("%s: %s (%d episodes, %d/%d visited)", d.Ship, d.Move, d.Episodes, d.Visited, d.Candidates)
		}
		frame.DebugInfo.AdditionalInfo = append(frame.DebugInfo.AdditionalInfo, Info{Info: text})
	}
	return frame
}

func projectileObject(p game.Projectile) Object {
	return Object{
		ID:      p.Name(),
		Type:    p.Team.String() + p.Kind.String(),
		X:       p.Position.X,
		Y:       p.Position.Y,
		Bearing: p.Bearing,
	}
}
