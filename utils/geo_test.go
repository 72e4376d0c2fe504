package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineM(t *testing.T) {
	// 同一点距离为 0
	assert.Equal(t, 0.0, HaversineM(37.5665, 126.9780, 37.5665, 126.9780))

	// 赤道上纬度相差 1 度约 111.2km
	assert.InDelta(t, 111195, HaversineM(0, 0, 1, 0), 100)
	assert.InDelta(t, 111195, HaversineM(0, 0, 0, 1), 100)

	// 约 100m 的短距离，半径判定的典型量级
	d := HaversineM(37.5000, 127.0000, 37.5009, 127.0000)
	assert.InDelta(t, 100, d, 2)
}

func TestHaversineMSymmetry(t *testing.T) {
	a := HaversineM(37.5665, 126.9780, 35.1796, 129.0756)
	b := HaversineM(35.1796, 129.0756, 37.5665, 126.9780)
	assert.InDelta(t, a, b, 0.001)
	assert.Greater(t, a, 300000.0) // 首尔到釜山远超常见判定半径
}
