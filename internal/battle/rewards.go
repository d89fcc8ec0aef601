package battle

import "math"

// Reward scaling: awards grow with the defeated side's level and with the
// level gap when punching up, and shrink sharply when farming enemies more
// than five levels below. Awards round half away from zero, the same rule
// the resolver uses for damage.

// XPReward computes the experience award for defeating an enemy.
func XPReward(playerLevel, enemyLevel int) int {
	base := enemyLevel * 20
	diff := enemyLevel - playerLevel

	multiplier := 1.0
	switch {
	case diff > 0:
		multiplier = 1 + float64(diff)*0.15
	case diff < -5:
		multiplier = max(0.1, 1+float64(diff)*0.1)
	}

	return max(1, int(math.Round(float64(base)*multiplier)))
}

// CoinReward computes the coin award for defeating an enemy.
func CoinReward(playerLevel, enemyLevel int) int {
	base := enemyLevel * 10
	diff := enemyLevel - playerLevel

	multiplier := 1.0
	switch {
	case diff > 0:
		multiplier = 1 + float64(diff)*0.1
	case diff < -5:
		multiplier = max(0.2, 1+float64(diff)*0.05)
	}

	return max(1, int(math.Round(float64(base)*multiplier)))
}

// XPForLevel returns the total experience required to reach the next level
// from the given one.
func XPForLevel(level int) int {
	return level * level * 100
}
