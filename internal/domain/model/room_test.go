package model

import "testing"

func TestOccupancyPercent(t *testing.T) {
	cases := []struct {
		name     string
		count    int
		capacity int
		want     int
	}{
		{"empty", 0, 30, 0},
		{"third full rounds", 10, 30, 33},
		{"two thirds rounds up", 20, 30, 67},
		{"exactly full", 30, 30, 100},
		{"over capacity", 33, 30, 110},
		{"zero capacity", 5, 0, 0},
		{"negative capacity", 5, -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OccupancyPercent(tc.count, tc.capacity); got != tc.want {
				t.Fatalf("OccupancyPercent(%d, %d) = %d, want %d", tc.count, tc.capacity, got, tc.want)
			}
		})
	}
}

func TestFillOccupancy(t *testing.T) {
	room := Room{Capacity: 30}

	room.FillOccupancy(29)
	if room.CapacityExceeded {
		t.Fatal("29/30 must not flag capacity exceeded")
	}

	room.FillOccupancy(30)
	if !room.CapacityExceeded {
		t.Fatal("30/30 must flag capacity exceeded")
	}
	if room.OccupancyPercent != 100 {
		t.Fatalf("occupancy = %d, want 100", room.OccupancyPercent)
	}

	room.FillOccupancy(33)
	if !room.CapacityExceeded || room.OccupancyPercent != 110 {
		t.Fatalf("33/30: exceeded = %v, occupancy = %d", room.CapacityExceeded, room.OccupancyPercent)
	}
}
