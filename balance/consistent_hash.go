package balance

import (
	"fmt"
	"hash/crc32"
	"sort"
)

// ConsistentHash maps a routing key to a backend using a hash ring, so the
// same key always lands on the same backend until the ring changes —
// useful when a sequence of calls should stick to one instance (e.g. for
// cache affinity downstream of the backend). 100 virtual nodes per backend
// keep the ring statistically uniform even with few real backends.
type ConsistentHash struct {
	replicas int
	ring     []uint32
	nodes    map[uint32]*Backend
}

func NewConsistentHash() *ConsistentHash {
	return &ConsistentHash{
		replicas: 100,
		nodes:    make(map[uint32]*Backend),
	}
}

// Add places a backend onto the hash ring with its virtual nodes.
func (b *ConsistentHash) Add(backend *Backend) {
	for i := 0; i < b.replicas; i++ {
		key := fmt.Sprintf("%s#%d", backend.Origin, i)
		hash := crc32.ChecksumIEEE([]byte(key))
		b.ring = append(b.ring, hash)
		b.nodes[hash] = backend
	}
	sort.Slice(b.ring, func(i, j int) bool { return b.ring[i] < b.ring[j] })
}

// PickKey finds the backend responsible for key: hash it, then find the
// first ring node clockwise, wrapping to the first node past the end.
func (b *ConsistentHash) PickKey(key string) (*Backend, error) {
	if len(b.ring) == 0 {
		return nil, fmt.Errorf("tango: no backends available")
	}
	hash := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(b.ring), func(i int) bool { return b.ring[i] >= hash })
	if idx == len(b.ring) {
		idx = 0
	}
	return b.nodes[b.ring[idx]], nil
}

// Pick implements Balancer by adding backends to the ring and hashing the
// first backend's origin as the key — callers that want key-based affinity
// should call PickKey directly.
func (b *ConsistentHash) Pick(backends []Backend) (*Backend, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("tango: no backends available")
	}
	for i := range backends {
		b.Add(&backends[i])
	}
	return b.PickKey(backends[0].Origin)
}

func (b *ConsistentHash) Name() string { return "ConsistentHash" }
