package balance

import (
	"fmt"
	"testing"
)

var testBackends = []Backend{
	{Origin: "http://node1:8001", Weight: 10, Version: "1.0"},
	{Origin: "http://node2:8002", Weight: 5, Version: "1.0"},
	{Origin: "http://node3:8003", Weight: 10, Version: "1.0"},
}

func TestRoundRobinCycles(t *testing.T) {
	b := &RoundRobin{}

	results := make([]string, 3)
	for i := 0; i < 3; i++ {
		backend, err := b.Pick(testBackends)
		if err != nil {
			t.Fatal(err)
		}
		results[i] = backend.Origin
	}

	backend, _ := b.Pick(testBackends)
	if backend.Origin != results[0] {
		t.Fatalf("expected wrap around to %s, got %s", results[0], backend.Origin)
	}
}

func TestRoundRobinEmpty(t *testing.T) {
	b := &RoundRobin{}
	if _, err := b.Pick(nil); err == nil {
		t.Fatal("expected error for empty backends")
	}
}

func TestWeightedRandomRatio(t *testing.T) {
	b := &WeightedRandom{}

	counts := map[string]int{}
	n := 10000
	for i := 0; i < n; i++ {
		backend, err := b.Pick(testBackends)
		if err != nil {
			t.Fatal(err)
		}
		counts[backend.Origin]++
	}

	ratio := float64(counts["http://node1:8001"]) / float64(counts["http://node2:8002"])
	if ratio < 1.5 || ratio > 2.5 {
		t.Fatalf("weight ratio node1/node2 = %.2f, expected ~2.0", ratio)
	}
}

func TestConsistentHashStableForSameKey(t *testing.T) {
	b := NewConsistentHash()
	for i := range testBackends {
		b.Add(&testBackends[i])
	}

	first, _ := b.PickKey("user-123")
	second, _ := b.PickKey("user-123")
	if first.Origin != second.Origin {
		t.Fatalf("same key mapped to different backends: %s vs %s", first.Origin, second.Origin)
	}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		backend, _ := b.PickKey(fmt.Sprintf("key-%d", i))
		seen[backend.Origin] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected at least 2 distinct backends, got %d", len(seen))
	}
}
