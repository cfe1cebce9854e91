package game

// ActionType is the kind of a per-tick event consumed by replay and telemetry.
type ActionType string

const (
	ExplosionAction        ActionType = "explosion"
	SmokeAction            ActionType = "smoke"
	FireHumanMissileAction ActionType = "firehumanmissile"
	FireAlienMissileAction ActionType = "firealienmissile"
	MessageAction          ActionType = "message"
)

// Action is an event that happened during the tick just computed. The log is
// cleared at the start of every tick.
type Action struct {
	Type ActionType `json:"type"`
	ID   string     `json:"id"`
	X    float64    `json:"x,string"`
	Y    float64    `json:"y,string"`
	Text string     `json:"text"`
}
