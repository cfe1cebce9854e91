package game

import "math"

// RewardKind is a combat event that moves a ship's score.
type RewardKind int

const (
	Kamikaze RewardKind = iota
	TeamLost
	FriendlyFire
	Died
	HitByLaser
	KilledEnemy
	LaseredEnemy
	Survived
	TeamWon
)

// DiscountFactor weights later events less for discounted ships.
const DiscountFactor = 0.9

var rewardPolicy = [...]float64{
	Kamikaze:     -6,
	TeamLost:     -4,
	FriendlyFire: -4,
	Died:         -1,
	HitByLaser:   -0.33,
	KilledEnemy:  1,
	LaseredEnemy: 2,
	Survived:     4,
	TeamWon:      4,
}

var rewardNames = [...]string{
	Kamikaze:     "Kamikaze",
	TeamLost:     "TeamLost",
	FriendlyFire: "FriendlyFire",
	Died:         "Died",
	HitByLaser:   "HitByLaser",
	KilledEnemy:  "KilledEnemy",
	LaseredEnemy: "LaseredEnemy",
	Survived:     "Survived",
	TeamWon:      "TeamWon",
}

// Magnitude returns the signed score of the event.
func (k RewardKind) Magnitude() float64 {
	return rewardPolicy[k]
}

func (k RewardKind) String() string {
	return rewardNames[k]
}

// RewardEvent is one immutable ledger entry.
type RewardEvent struct {
	Kind      RewardKind
	Magnitude float64
	Tick      int
}

// RegisterReward appends an event to the ship's ledger.
func (s *Ship) RegisterReward(kind RewardKind, tick int) {
	s.ledger = append(s.ledger, RewardEvent{Kind: kind, Magnitude: kind.Magnitude(), Tick: tick})
}

// Rewards returns a copy of the ledger in append order.
func (s *Ship) Rewards() []RewardEvent {
	out := make([]RewardEvent, len(s.ledger))
	copy(out, s.ledger)
	return out
}

// RewardsSince sums ledger entries with Tick >= tick0. Discounted ships weight each
// entry by DiscountFactor^(tick - tick0 - 1).
func (s *Ship) RewardsSince(tick0 int) float64 {
	total := 0.0
	for _, ev := range s.ledger {
		if ev.Tick < tick0 {
			continue
		}
		if s.Discounted {
			total += ev.Magnitude * math.Pow(DiscountFactor, float64(ev.Tick-tick0-1))
		} else {
			total += ev.Magnitude
		}
	}
	return total
}
