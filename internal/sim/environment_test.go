package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/transport-sim/internal/models"
)

// fixedSource always returns the same index.
type fixedSource int

func (f fixedSource) Intn(n int) int { return int(f) % n }

type recorder struct {
	events []models.Event
}

func (r *recorder) Observe(e models.Event) { r.events = append(r.events, e) }

func (r *recorder) messages() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Message)
	}
	return out
}

func newTestEnv() (*Environment, *recorder) {
	rec := &recorder{}
	return NewEnvironment(rec, NewObstacleGenerator(fixedSource(0))), rec
}

func TestRegisterVehicle(t *testing.T) {
	env, _ := newTestEnv()

	v, err := env.RegisterVehicle(models.KindCar, "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", v.ID)
	assert.Equal(t, models.KindCar, v.Kind)
	assert.Len(t, env.Vehicles(), 1)
}

func TestRegisterVehicle_DuplicateID(t *testing.T) {
	env, _ := newTestEnv()
	_, err := env.RegisterVehicle(models.KindCar, "A1")
	require.NoError(t, err)

	for _, kind := range models.VehicleKinds {
		t.Run(string(kind), func(t *testing.T) {
			v, err := env.RegisterVehicle(kind, "A1")
			assert.ErrorIs(t, err, ErrDuplicateID)
			assert.Nil(t, v)
			require.Len(t, env.Vehicles(), 1)
			assert.Equal(t, models.KindCar, env.Vehicles()[0].Kind)
		})
	}
}

func TestRegisterVehicle_UnknownKind(t *testing.T) {
	env, _ := newTestEnv()
	_, err := env.RegisterVehicle("Tank", "T1")
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Empty(t, env.Vehicles())
}

func TestRegisterVehicle_EmptyID(t *testing.T) {
	env, _ := newTestEnv()
	for _, id := range []string{"", "   "} {
		_, err := env.RegisterVehicle(models.KindCar, id)
		assert.ErrorIs(t, err, ErrInvalidSelection, "id %q", id)
	}
	assert.Empty(t, env.Vehicles())
}

func TestVehicles_ReturnsCopy(t *testing.T) {
	env, _ := newTestEnv()
	_, _ = env.RegisterVehicle(models.KindCar, "A1")
	list := env.Vehicles()
	list[0] = nil
	assert.NotNil(t, env.Vehicles()[0])
}

func TestFindVehicle(t *testing.T) {
	env, _ := newTestEnv()
	_, _ = env.RegisterVehicle(models.KindDrone, "D1")

	v, err := env.FindVehicle("D1")
	require.NoError(t, err)
	assert.Equal(t, models.KindDrone, v.Kind)

	_, err = env.FindVehicle("nope")
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestCreateMission_Compatibility(t *testing.T) {
	env, _ := newTestEnv()
	for i, kind := range models.VehicleKinds {
		_, err := env.RegisterVehicle(kind, string(rune('A'+i)))
		require.NoError(t, err)
	}
	// A=Car B=Drone C=Amphibious D=Submarine

	tests := []struct {
		vehicle string
		kind    models.MissionKind
		ok      bool
	}{
		{"A", models.MissionLand, true},
		{"A", models.MissionAir, false},
		{"A", models.MissionWater, false},
		{"B", models.MissionLand, false},
		{"B", models.MissionAir, true},
		{"B", models.MissionWater, false},
		{"C", models.MissionLand, true},
		{"C", models.MissionAir, false},
		{"C", models.MissionWater, true},
		{"D", models.MissionLand, false},
		{"D", models.MissionAir, false},
		{"D", models.MissionWater, true},
	}

	for _, tt := range tests {
		t.Run(tt.vehicle+"_"+string(tt.kind), func(t *testing.T) {
			before := len(env.Missions())
			m, err := env.CreateMission("X", "Y", tt.kind, tt.vehicle)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrIncompatibleVehicle)
				assert.Nil(t, m)
				assert.Len(t, env.Missions(), before)
				return
			}
			require.NoError(t, err)
			assert.False(t, m.Completed())
			assert.Equal(t, tt.vehicle, m.Vehicle.ID)
			assert.Len(t, env.Missions(), before+1)
		})
	}
}

func TestCreateMission_Errors(t *testing.T) {
	env, _ := newTestEnv()
	_, _ = env.RegisterVehicle(models.KindCar, "A1")

	_, err := env.CreateMission("X", "Y", models.MissionLand, "missing")
	assert.ErrorIs(t, err, ErrVehicleNotFound)

	_, err = env.CreateMission("X", "Y", "space", "A1")
	assert.ErrorIs(t, err, ErrInvalidSelection)

	assert.Empty(t, env.Missions())
}

func TestCreateMission_SharedVehicle(t *testing.T) {
	env, _ := newTestEnv()
	_, _ = env.RegisterVehicle(models.KindCar, "A1")

	m1, err := env.CreateMission("X", "Y", models.MissionLand, "A1")
	require.NoError(t, err)
	m2, err := env.CreateMission("Y", "Z", models.MissionLand, "A1")
	require.NoError(t, err)

	assert.Same(t, m1.Vehicle, m2.Vehicle)
	assert.NotEqual(t, m1.ID, m2.ID)
}

func TestSimulateCycle_SingleMission(t *testing.T) {
	env, rec := newTestEnv()
	_, _ = env.RegisterVehicle(models.KindCar, "A1")
	m, err := env.CreateMission("X", "Y", models.MissionLand, "A1")
	require.NoError(t, err)

	n := env.SimulateCycle(m)

	assert.Equal(t, 1, n)
	assert.True(t, m.Completed())
	assert.Equal(t, []string{
		"\n--- MISSION SIMULATION START ---",
		"Mission details:",
		"Origin: X, Destination: Y",
		"Assigned vehicle: Car",
		"Load capacity: 1000.0",
		"Land obstacles:",
		"- Heavy traffic",
		"Mission started from X to Y",
		"Car moving along the road.",
		"Mission completed at Y",
		"--- MISSION SIMULATION END ---\n",
	}, rec.messages())
	assert.Empty(t, env.ActiveMissions())
}

func TestSimulateCycle_AllActive(t *testing.T) {
	env, rec := newTestEnv()
	_, _ = env.RegisterVehicle(models.KindCar, "A1")
	_, _ = env.RegisterVehicle(models.KindDrone, "D1")
	done, _ := env.CreateMission("Depot", "Shop", models.MissionLand, "A1")
	m2, _ := env.CreateMission("Base", "Roof", models.MissionAir, "D1")
	m3, _ := env.CreateMission("Shop", "Depot", models.MissionLand, "A1")

	env.SimulateCycle(done)
	rec.events = nil

	n := env.SimulateCycle(nil)

	assert.Equal(t, 2, n)
	assert.True(t, m2.Completed())
	assert.True(t, m3.Completed())

	msgs := rec.messages()
	assert.Equal(t, "\n--- SIMULATION CYCLE START ---", msgs[0])
	assert.Equal(t, "--- CYCLE END ---\n", msgs[len(msgs)-1])
	assert.Equal(t, 1, count(msgs, "\n--- SIMULATION CYCLE START ---"))
	assert.Equal(t, 2, count(msgs, "Mission details:"))
	assert.Equal(t, 0, count(msgs, "Mission completed at Shop"))
	assert.Equal(t, 1, count(msgs, "Mission completed at Roof"))
	assert.Equal(t, 1, count(msgs, "Mission completed at Depot"))
	assert.Contains(t, msgs, "Air obstacles:")
	assert.Contains(t, msgs, "- Strong wind")

	// Registration order is preserved.
	roof := indexOf(msgs, "Mission completed at Roof")
	depot := indexOf(msgs, "Mission completed at Depot")
	assert.Less(t, roof, depot)
}

func TestSimulateCycle_NoActiveMissions(t *testing.T) {
	env, rec := newTestEnv()
	n := env.SimulateCycle(nil)
	assert.Zero(t, n)
	assert.Equal(t, []string{
		"\n--- SIMULATION CYCLE START ---",
		"--- CYCLE END ---\n",
	}, rec.messages())
}

func TestSimulateCycle_CompletedMissionsUntouched(t *testing.T) {
	env, rec := newTestEnv()
	_, _ = env.RegisterVehicle(models.KindSubmarine, "S1")
	m, _ := env.CreateMission("Port", "Trench", models.MissionWater, "S1")
	env.SimulateCycle(nil)
	completedAt := *m.CompletedAt
	rec.events = nil

	assert.Zero(t, env.SimulateCycle(nil))
	assert.Equal(t, completedAt, *m.CompletedAt)
	assert.Equal(t, 2, len(rec.messages()))
}

func TestSimulateCycle_AmphibiousObstacleFollowsMissionKind(t *testing.T) {
	env, rec := newTestEnv()
	_, _ = env.RegisterVehicle(models.KindAmphibious, "AM")
	land, _ := env.CreateMission("Beach", "Town", models.MissionLand, "AM")
	water, _ := env.CreateMission("Beach", "Island", models.MissionWater, "AM")

	env.SimulateCycle(land)
	assert.Contains(t, rec.messages(), "Land obstacles:")
	rec.events = nil

	env.SimulateCycle(water)
	assert.Contains(t, rec.messages(), "Water obstacles:")
	assert.Contains(t, rec.messages(), "- Strong currents")
	assert.NotContains(t, rec.messages(), "Land obstacles:")
}

func TestSimulateCycle_EventsCarryMissionID(t *testing.T) {
	env, rec := newTestEnv()
	_, _ = env.RegisterVehicle(models.KindDrone, "D1")
	m, _ := env.CreateMission("A", "B", models.MissionAir, "D1")

	env.SimulateCycle(m)

	require.NotEmpty(t, rec.events)
	for _, e := range rec.events {
		assert.Equal(t, m.ID.String(), e.MissionID, "event %q", e.Message)
		if e.Message == "Drone travelling through the air." {
			assert.Equal(t, "D1", e.VehicleID)
		}
	}
	assert.Contains(t, rec.messages(), "Drone travelling through the air.")
}

func TestSimulateCycle_BatchBannersAreUntagged(t *testing.T) {
	env, rec := newTestEnv()
	_, _ = env.RegisterVehicle(models.KindCar, "A1")
	m, _ := env.CreateMission("A", "B", models.MissionLand, "A1")

	env.SimulateCycle(nil)

	for _, e := range rec.events {
		switch e.Message {
		case "\n--- SIMULATION CYCLE START ---", "--- CYCLE END ---\n":
			assert.Empty(t, e.MissionID)
		default:
			assert.Equal(t, m.ID.String(), e.MissionID, "event %q", e.Message)
		}
	}
}

func TestNewEnvironment_Defaults(t *testing.T) {
	env := NewEnvironment(nil, nil)
	_, err := env.RegisterVehicle(models.KindCar, "A1")
	require.NoError(t, err)
	m, err := env.CreateMission("X", "Y", models.MissionLand, "A1")
	require.NoError(t, err)
	assert.NotPanics(t, func() { env.SimulateCycle(m) })
	assert.True(t, m.Completed())
}

func count(list []string, s string) int {
	n := 0
	for _, v := range list {
		if v == s {
			n++
		}
	}
	return n
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
