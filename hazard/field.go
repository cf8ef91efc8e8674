package hazard

import (
	"math"

	"github.com/lixenwraith/hover-hell/parameter"
	"github.com/lixenwraith/hover-hell/vmath"
)

// Obstacle is one drifting hazard in normalized area units
type Obstacle struct {
	ID     uint64
	Pos    vmath.Vec2
	Vel    vmath.Vec2 // units per second
	Size   float64    // diameter
	Golden bool       // collected for a bonus instead of ending the game
	Fake   bool       // never collides, may vanish at any tick
}

// Result summarizes one Step
type Result struct {
	Hit      bool // a lethal obstacle touched the player
	Golden   int  // golden obstacles collected this step
	Near     bool // an obstacle is within NearDistance of the player
	Spawned  int
	Vanished int
}

// Field owns the obstacle set of one avoid game
// Not safe for concurrent use; the session serializes access
type Field struct {
	tuning    *parameter.Tuning
	rng       vmath.Rand
	obstacles []Obstacle
	nextID    uint64
}

func NewField(t *parameter.Tuning, rng vmath.Rand) *Field {
	return &Field{tuning: t, rng: rng}
}

// Clear drops every obstacle
func (f *Field) Clear() {
	f.obstacles = f.obstacles[:0]
}

// Reset clears the field and seeds the opening wave around player
func (f *Field) Reset(player vmath.Vec2) {
	f.Clear()
	for i := 0; i < f.tuning.Avoid.InitialObstacles; i++ {
		f.Spawn(player, 1, 0)
	}
}

// Len returns the live obstacle count
func (f *Field) Len() int {
	return len(f.obstacles)
}

// Obstacles returns a copy of the live set
func (f *Field) Obstacles() []Obstacle {
	out := make([]Obstacle, len(f.obstacles))
	copy(out, f.obstacles)
	return out
}

// Add inserts an obstacle as-is and assigns its ID
func (f *Field) Add(o Obstacle) Obstacle {
	f.nextID++
	o.ID = f.nextID
	f.obstacles = append(f.obstacles, o)
	return o
}

// Spawn places a random obstacle near the player or on an edge heading inward
// Returns false when the hard cap for the level and score is reached
func (f *Field) Spawn(player vmath.Vec2, level, score int) (Obstacle, bool) {
	a := &f.tuning.Avoid
	if len(f.obstacles) > a.SpawnHardCap+2*level+score/5 {
		return Obstacle{}, false
	}

	var o Obstacle
	if vmath.Chance(f.rng, a.NearSpawnChance) {
		angle := vmath.Range(f.rng, 0, 2*math.Pi)
		dist := vmath.Range(f.rng, a.NearSpawnMin, a.NearSpawnMax)
		o.Pos = vmath.ClampVec(vmath.V2Add(player, vmath.FromPolar(angle, dist)), 0, parameter.AreaMax)
		speed := a.BaseSpeed + float64(level)*a.NearSpeedPerLevel
		o.Vel = vmath.Vec2{X: f.spread(speed), Y: f.spread(speed)}
	} else {
		speed := a.BaseSpeed + float64(level)*a.SpeedPerLevel
		lo, hi := -a.SpawnMargin, parameter.AreaMax+a.SpawnMargin
		switch vmath.Intn(f.rng, 4) {
		case 0: // top
			o.Pos = vmath.Vec2{X: vmath.Range(f.rng, 0, parameter.AreaMax), Y: lo}
			o.Vel = vmath.Vec2{X: f.spread(a.CrossSpeed), Y: speed}
		case 1: // right
			o.Pos = vmath.Vec2{X: hi, Y: vmath.Range(f.rng, 0, parameter.AreaMax)}
			o.Vel = vmath.Vec2{X: -speed, Y: f.spread(a.CrossSpeed)}
		case 2: // bottom
			o.Pos = vmath.Vec2{X: vmath.Range(f.rng, 0, parameter.AreaMax), Y: hi}
			o.Vel = vmath.Vec2{X: f.spread(a.CrossSpeed), Y: -speed}
		default: // left
			o.Pos = vmath.Vec2{X: lo, Y: vmath.Range(f.rng, 0, parameter.AreaMax)}
			o.Vel = vmath.Vec2{X: speed, Y: f.spread(a.CrossSpeed)}
		}
	}

	o.Golden = vmath.Chance(f.rng, a.GoldenChance)
	o.Fake = vmath.Chance(f.rng, a.FakeChance)
	o.Size = vmath.Range(f.rng, a.SizeMin, a.SizeMax)
	return f.Add(o), true
}

// spread returns a uniform value in [-width/2, width/2)
func (f *Field) spread(width float64) float64 {
	return (f.rng.Float64() - 0.5) * width
}

// Step advances every obstacle by dt seconds, then resolves contact with the player
// Order: motion and fake expiry, contact, timed spawn, near check, fake pop-up
// A lethal hit stops the step; a golden pickup skips spawning for that step
func (f *Field) Step(dt float64, player vmath.Vec2, level, score int) Result {
	var res Result
	a := &f.tuning.Avoid
	wobble := a.Wobble * (1 + a.WobblePerLevel*float64(level)) * dt

	live := f.obstacles[:0]
	for _, o := range f.obstacles {
		w := f.spread(wobble)
		o.Pos.X += o.Vel.X*dt + w
		o.Pos.Y += o.Vel.Y*dt + w
		o.Vel.X = bounce(o.Pos.X, o.Vel.X)
		o.Vel.Y = bounce(o.Pos.Y, o.Vel.Y)
		if o.Fake && vmath.Chance(f.rng, a.FakeVanishRate*dt) {
			res.Vanished++
			continue
		}
		live = append(live, o)
	}
	f.obstacles = live

	for i, o := range f.obstacles {
		if !Collides(player, o, a.PlayerRadius) {
			continue
		}
		if !o.Golden {
			res.Hit = true
			return res
		}
		res.Golden++
		f.obstacles = append(f.obstacles[:i], f.obstacles[i+1:]...)
		return res
	}

	rate := a.SpawnRate * float64(level) * (1 + float64(score)/20)
	if len(f.obstacles) < a.SpawnSoftCap+level+score/3 && vmath.Chance(f.rng, rate*dt) {
		if _, ok := f.Spawn(player, level, score); ok {
			res.Spawned++
		}
	}

	for _, o := range f.obstacles {
		if vmath.Distance(player, o.Pos) < a.NearDistance {
			res.Near = true
			break
		}
	}

	if vmath.Chance(f.rng, a.FakePopupRate*dt) {
		f.Add(Obstacle{
			Pos:  vmath.Vec2{X: vmath.Range(f.rng, 10, 90), Y: vmath.Range(f.rng, 10, 90)},
			Vel:  vmath.Vec2{X: f.spread(a.FakeDrift), Y: f.spread(a.FakeDrift)},
			Size: vmath.Range(f.rng, a.SizeMin, a.SizeMax),
			Fake: true,
		})
		res.Spawned++
	}
	return res
}

// bounce reverses a velocity component that is carrying the obstacle further out of the area
// Edge spawns start outside and keep their inward heading until they cross in
func bounce(pos, vel float64) float64 {
	if (pos <= 0 && vel < 0) || (pos >= parameter.AreaMax && vel > 0) {
		return -vel
	}
	return vel
}

// Collides reports contact between the player disc and a solid obstacle
func Collides(player vmath.Vec2, o Obstacle, radius float64) bool {
	return !o.Fake && vmath.Distance(player, o.Pos) < o.Size/2+radius
}
