package sim

import (
	"math/rand"
	"time"

	"github.com/ukydev/transport-sim/internal/models"
)

// RandomSource is the subset of *rand.Rand used for obstacle picks.
type RandomSource interface {
	Intn(n int) int
}

var obstacles = map[models.MissionKind][]string{
	models.MissionLand:  {"Heavy traffic", "Road in poor condition", "Accident on the route"},
	models.MissionAir:   {"Strong wind", "Low visibility", "Signal interference"},
	models.MissionWater: {"Strong currents", "Low underwater visibility", "Rock obstruction"},
}

var obstacleHeaders = map[models.MissionKind]string{
	models.MissionLand:  "Land obstacles:",
	models.MissionAir:   "Air obstacles:",
	models.MissionWater: "Water obstacles:",
}

// ObstacleGenerator picks one obstacle per simulated mission.
type ObstacleGenerator struct {
	rng RandomSource
}

// NewObstacleGenerator creates a generator drawing from src. A nil src is
// replaced by a time-seeded source.
func NewObstacleGenerator(src RandomSource) *ObstacleGenerator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ObstacleGenerator{rng: src}
}

// Pick returns a uniformly random obstacle for the given domain, or "" for an
// unknown domain.
func (g *ObstacleGenerator) Pick(kind models.MissionKind) string {
	list := obstacles[kind]
	if len(list) == 0 {
		return ""
	}
	return list[g.rng.Intn(len(list))]
}

// ForMission returns the obstacle header and pick for a mission. The domain
// follows the mission kind, which creation has already matched against the
// vehicle, so amphibious vehicles meet water obstacles on water missions.
func (g *ObstacleGenerator) ForMission(m *models.Mission) (header, obstacle string) {
	return obstacleHeaders[m.Kind], g.Pick(m.Kind)
}
