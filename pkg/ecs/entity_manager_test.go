package ecs

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/fruitslice/pkg/components"
	"github.com/decker502/fruitslice/pkg/config"
)

var testArea = components.PlayArea{Width: 640, Height: 480}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// newTestManager 创建使用默认配置和固定种子的实体管理器
func newTestManager(seed int64) *EntityManager {
	cfg := config.DefaultGameConfig()
	return NewEntityManager(rand.New(rand.NewSource(seed)), cfg.Spawn, cfg.Physics)
}

func TestSpawnAssignsMonotonicIDs(t *testing.T) {
	em := newTestManager(1)
	id1 := em.Spawn(testArea)
	id2 := em.Spawn(testArea)

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	// Clear 之后ID也不复用
	em.Clear()
	id3 := em.Spawn(testArea)
	if id3 != 3 {
		t.Errorf("IDs must never be reused, got %d after clear", id3)
	}
}

// TestSpawnOnBottomEdge 生成点位于底边，速度在配置范围内
func TestSpawnOnBottomEdge(t *testing.T) {
	cfg := config.DefaultGameConfig()
	em := newTestManager(7)

	for i := 0; i < 200; i++ {
		id := em.Spawn(testArea)
		f, ok := em.Get(id)
		if !ok {
			t.Fatalf("spawned fruit %d not found", id)
		}
		if f.Y != testArea.Height {
			t.Fatalf("fruit should spawn at y = %f, got %f", testArea.Height, f.Y)
		}
		if f.X < cfg.Spawn.MarginX || f.X > testArea.Width-cfg.Spawn.MarginX {
			t.Fatalf("fruit x %f outside [%f, %f]", f.X, cfg.Spawn.MarginX, testArea.Width-cfg.Spawn.MarginX)
		}
		if f.VX < cfg.Spawn.VelocityX.Min || f.VX > cfg.Spawn.VelocityX.Max {
			t.Fatalf("vx %f outside configured range", f.VX)
		}
		if f.VY < cfg.Spawn.VelocityY.Min || f.VY > cfg.Spawn.VelocityY.Max {
			t.Fatalf("vy %f outside configured range", f.VY)
		}
	}
}

func TestSpawnNarrowAreaUsesCenter(t *testing.T) {
	em := newTestManager(1)
	id := em.Spawn(components.PlayArea{Width: 60, Height: 100})
	f, _ := em.Get(id)
	if f.X != 30 {
		t.Errorf("expected centered spawn x = 30, got %f", f.X)
	}
}

func TestTrySpawnProbability(t *testing.T) {
	cfg := config.DefaultGameConfig()

	tests := []struct {
		name        string
		probability float64
		ticks       int
		wantCount   int
	}{
		{"always", 1.0, 50, 50},
		{"never", 0.0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spawn := cfg.Spawn
			spawn.Probability = tt.probability
			em := NewEntityManager(rand.New(rand.NewSource(3)), spawn, cfg.Physics)

			for i := 0; i < tt.ticks; i++ {
				em.TrySpawn(testArea)
			}
			if em.Count() != tt.wantCount {
				t.Errorf("expected %d fruits, got %d", tt.wantCount, em.Count())
			}
		})
	}
}

// TestTrySpawnDeterministic 相同种子产生相同的生成序列
func TestTrySpawnDeterministic(t *testing.T) {
	run := func() []Fruit {
		em := newTestManager(42)
		for i := 0; i < 500; i++ {
			em.TrySpawn(testArea)
		}
		return em.Fruits()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("replay produced %d vs %d fruits", len(a), len(b))
	}
	if len(a) == 0 {
		t.Fatal("expected some fruits after 500 trials at p=0.05")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("fruit %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestIntegrateExplicitEuler(t *testing.T) {
	em := newTestManager(1)
	id := em.SpawnAt(components.Position{X: 100, Y: 400}, components.Velocity{VX: 2, VY: -10})

	em.Integrate()
	f, _ := em.Get(id)
	if f.X != 102 || f.Y != 390 {
		t.Errorf("after 1 tick expected (102, 390), got (%f, %f)", f.X, f.Y)
	}
	if !approx(f.VY, -9.6) {
		t.Errorf("expected vy = -9.6 after gravity, got %f", f.VY)
	}

	em.Integrate()
	f, _ = em.Get(id)
	if !approx(f.X, 104) || !approx(f.Y, 380.4) {
		t.Errorf("after 2 ticks expected (104, 380.4), got (%f, %f)", f.X, f.Y)
	}
}

func TestPruneMissed(t *testing.T) {
	em := newTestManager(1)
	// 底边 480 + 缓冲 50 = 530
	inside := em.SpawnAt(components.Position{X: 10, Y: 529}, components.Velocity{})
	onBound := em.SpawnAt(components.Position{X: 10, Y: 530}, components.Velocity{})
	beyond := em.SpawnAt(components.Position{X: 10, Y: 531}, components.Velocity{})

	removals := em.Prune(testArea)
	if len(removals) != 2 {
		t.Fatalf("expected 2 removals, got %d: %+v", len(removals), removals)
	}
	if removals[0].ID != onBound || removals[1].ID != beyond {
		t.Errorf("unexpected removal order: %+v", removals)
	}
	for _, r := range removals {
		if r.Outcome != components.OutcomeMissed {
			t.Errorf("fruit %d should be missed, got %s", r.ID, r.Outcome)
		}
	}
	if _, ok := em.Get(inside); !ok {
		t.Error("fruit inside the bound should survive")
	}
}

// TestPruneSlicedTakesPrecedence 已切中的水果即使出界也只报告 sliced
func TestPruneSlicedTakesPrecedence(t *testing.T) {
	em := newTestManager(1)
	id := em.SpawnAt(components.Position{X: 10, Y: 1000}, components.Velocity{})

	if !em.MarkSliced(id) {
		t.Fatal("MarkSliced should succeed for an active fruit")
	}
	removals := em.Prune(testArea)
	if len(removals) != 1 {
		t.Fatalf("expected exactly one report, got %+v", removals)
	}
	if removals[0].Outcome != components.OutcomeSliced {
		t.Errorf("expected sliced, got %s", removals[0].Outcome)
	}

	// 第二次 Prune 不再报告
	if again := em.Prune(testArea); len(again) != 0 {
		t.Errorf("fruit reported twice: %+v", again)
	}
}

func TestMarkSlicedUnknownID(t *testing.T) {
	em := newTestManager(1)
	if em.MarkSliced(99) {
		t.Error("MarkSliced should fail for unknown id")
	}
}

// TestPruneKeepsOrderAndIDs 压缩后存活水果的顺序和ID保持不变
func TestPruneKeepsOrderAndIDs(t *testing.T) {
	em := newTestManager(1)
	var ids []EntityID
	for i := 0; i < 5; i++ {
		ids = append(ids, em.SpawnAt(components.Position{X: float64(i), Y: 100}, components.Velocity{}))
	}

	em.MarkSliced(ids[1])
	em.MarkSliced(ids[3])
	em.Prune(testArea)

	fruits := em.Fruits()
	want := []EntityID{ids[0], ids[2], ids[4]}
	if len(fruits) != len(want) {
		t.Fatalf("expected %d survivors, got %d", len(want), len(fruits))
	}
	for i, f := range fruits {
		if f.ID != want[i] {
			t.Errorf("survivor %d: expected id %d, got %d", i, want[i], f.ID)
		}
	}
}

func TestFruitsReturnsCopies(t *testing.T) {
	em := newTestManager(1)
	id := em.SpawnAt(components.Position{X: 1, Y: 1}, components.Velocity{})

	fruits := em.Fruits()
	fruits[0].X = 999

	f, _ := em.Get(id)
	if f.X != 1 {
		t.Error("mutating a snapshot copy must not affect the manager")
	}
}

func TestClear(t *testing.T) {
	em := newTestManager(1)
	id := em.Spawn(testArea)
	em.MarkSliced(id)
	em.Clear()

	if em.Count() != 0 {
		t.Errorf("expected empty population, got %d", em.Count())
	}
	if removals := em.Prune(testArea); len(removals) != 0 {
		t.Errorf("pending marks should be dropped by Clear, got %+v", removals)
	}
}
