package npc

import (
	"testing"

	"github.com/toseph-here/Kope-Quest/internal/config"
	"github.com/toseph-here/Kope-Quest/internal/element"
)

func testLocation() config.Location {
	return config.Location{
		Name:     "Frozen Tundra",
		Element:  element.Ice,
		MinLevel: 3,
		MaxLevel: 8,
		Enemies:  []string{"Frost Wolf", "Ice Shard", "Frozen Warrior"},
	}
}

func TestGenerateElementMatchesLocation(t *testing.T) {
	g := New(1)
	loc := testLocation()

	for i := 0; i < 50; i++ {
		c := g.Generate(loc, 5)
		if c.Element != element.Ice {
			t.Fatalf("enemy element = %v, want location element Ice", c.Element)
		}
	}
}

func TestGenerateLevelClampedToBand(t *testing.T) {
	g := New(2)
	loc := testLocation()

	for _, playerLevel := range []int{1, 5, 30} {
		for i := 0; i < 50; i++ {
			c := g.Generate(loc, playerLevel)
			if c.Level < loc.MinLevel || c.Level > loc.MaxLevel {
				t.Fatalf("level %d outside band %d..%d (player %d)",
					c.Level, loc.MinLevel, loc.MaxLevel, playerLevel)
			}
		}
	}
}

func TestGenerateStatsWithinVariance(t *testing.T) {
	g := New(3)
	loc := testLocation()

	for i := 0; i < 100; i++ {
		c := g.Generate(loc, 5)

		minHP := int(float64(baseHP+hpPerLevel*c.Level) * (1 - statVarianceSpan))
		maxHP := int(float64(baseHP+hpPerLevel*c.Level) * (1 + statVarianceSpan))
		if c.HP < minHP || c.HP > maxHP {
			t.Fatalf("HP %d outside [%d, %d] for level %d", c.HP, minHP, maxHP, c.Level)
		}
		if c.HP != c.MaxHP || c.Stamina != c.MaxStamina {
			t.Fatal("enemy should spawn at full HP and stamina")
		}
		if c.Attack <= 0 || c.Defense <= 0 || c.Agility <= 0 || c.ElementPower <= 0 {
			t.Fatalf("non-positive stat in %+v", c)
		}
	}
}

func TestGenerateNameFromPool(t *testing.T) {
	g := New(4)
	loc := testLocation()

	pool := make(map[string]bool, len(loc.Enemies))
	for _, n := range loc.Enemies {
		pool[n] = true
	}
	for i := 0; i < 50; i++ {
		c := g.Generate(loc, 5)
		if !pool[c.Name] {
			t.Fatalf("enemy name %q not in location pool", c.Name)
		}
	}

	empty := loc
	empty.Enemies = nil
	if c := g.Generate(empty, 5); c.Name != "Unknown Enemy" {
		t.Errorf("name = %q, want fallback for empty pool", c.Name)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	loc := testLocation()

	a := New(99).Generate(loc, 5)
	b := New(99).Generate(loc, 5)
	if a != b {
		t.Errorf("same seed produced %+v and %+v", a, b)
	}
}
