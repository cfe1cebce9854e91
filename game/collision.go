package game

import "strconv"

// checkCollisions resolves contacts for every live ship in roster order. A ship
// involved in one contact is not tested for further contacts this tick.
func (w *World) checkCollisions() {
	for i := range w.ships {
		s := &w.ships[i]
		if s.Dead {
			continue
		}
		if w.checkShipContact(s) {
			continue
		}
		if w.checkLaserHits(s) {
			continue
		}
		w.checkMissileHits(s)
	}
}

// checkShipContact destroys s and the first other ship whose center lies in its box.
func (w *World) checkShipContact(s *Ship) bool {
	if w.collisions == CollisionsOff {
		return false
	}
	for j := range w.ships {
		other := &w.ships[j]
		if other.ID == s.ID || other.Dead {
			continue
		}
		if w.collisions == EnemyOnly && other.Team == s.Team {
			continue
		}
		if !s.isTouched(other.Position, w.rules) {
			continue
		}
		w.logExplosion(s.Position)
		for _, victim := range []*Ship{s, other} {
			w.killShip(victim)
			victim.RegisterReward(Kamikaze, w.tick)
			victim.RegisterReward(Died, w.tick)
		}
		return true
	}
	return false
}

// checkLaserHits applies every enemy laser touching s until it dies.
func (w *World) checkLaserHits(s *Ship) bool {
	for k := range w.lasers {
		l := &w.lasers[k]
		if l.Dead || l.Team == s.Team || !s.isTouched(l.Position, w.rules) {
			continue
		}
		l.kill()
		owner := &w.ships[l.Owner]
		s.Health -= l.Damage
		s.RegisterReward(HitByLaser, w.tick)
		owner.RegisterReward(LaseredEnemy, w.tick)
		if s.Health <= 0 {
			s.RegisterReward(Died, w.tick)
			owner.RegisterReward(KilledEnemy, w.tick)
			w.logExplosion(s.Position)
			w.killShip(s)
			return true
		}
		w.logSmoke(s.Position)
	}
	return false
}

// checkMissileHits destroys s on the first missile touching it that it did not
// fire itself. Missiles hit friends too.
func (w *World) checkMissileHits(s *Ship) bool {
	for k := range w.missiles {
		m := &w.missiles[k]
		if m.Dead || m.Owner == s.ID || !s.isTouched(m.Position, w.rules) {
			continue
		}
		m.kill()
		s.Health -= m.Damage
		owner := &w.ships[m.Owner]
		if m.Team == s.Team {
			owner.RegisterReward(FriendlyFire, w.tick)
		} else {
			owner.RegisterReward(KilledEnemy, w.tick)
		}
		s.RegisterReward(Died, w.tick)
		w.logExplosion(s.Position)
		w.killShip(s)
		return true
	}
	return false
}

func (w *World) killShip(s *Ship) {
	if s.Dead {
		return
	}
	s.kill()
	w.live[s.Team]--
}

func (w *World) logExplosion(at Point) {
	w.effectSeq++
	w.logAction(ExplosionAction, "explosion"+strconv.Itoa(w.effectSeq), at, "")
}

func (w *World) logSmoke(at Point) {
	w.effectSeq++
	w.logAction(SmokeAction, "smoke"+strconv.Itoa(w.effectSeq), at, "")
}
