package engine

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

//16 bytes
type transEntry struct {
	key   uint64
	score int16
	depth int8
	bound uint8
	date  uint16
}

// transTable has a fixed number of slots. A slot always keeps the last written entry.
type transTable struct {
	megabytes int
	entries   []transEntry
	date      uint16
	mask      uint64
}

func newTransTable(megabytes int) TransTable {
	if megabytes <= 0 {
		return nullTransTable{}
	}
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / 16)
	return &transTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
		mask:      uint64(size - 1),
	}
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) IncDate() {
	tt.date++
}

func (tt *transTable) Clear() {
	tt.date = 0
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

// Probe narrows [alpha, beta] with an entry searched at least depth deep.
// cutoff is true when the entry decides the node: exact entry or empty window.
func (tt *transTable) Probe(key uint64, depth, alpha, beta int) (value, newAlpha, newBeta int, cutoff bool) {
	newAlpha, newBeta = alpha, beta
	var entry = &tt.entries[key&tt.mask]
	if entry.bound == 0 || entry.key != key || int(entry.depth) < depth {
		return
	}
	value = int(entry.score)
	switch entry.bound {
	case boundExact:
		return value, newAlpha, newBeta, true
	case boundLower:
		newAlpha = max(newAlpha, value)
	case boundUpper:
		newBeta = min(newBeta, value)
	}
	cutoff = newAlpha >= newBeta
	return
}

func (tt *transTable) Record(key uint64, depth, score, bound int) {
	var entry = &tt.entries[key&tt.mask]
	entry.key = key
	entry.score = int16(score)
	entry.depth = int8(depth)
	entry.bound = uint8(bound)
	entry.date = tt.date
}

// HashFull is the permille of sampled slots written during the current search.
func (tt *transTable) HashFull() int {
	var n = min(1000, len(tt.entries))
	var used = 0
	for i := 0; i < n; i++ {
		var entry = &tt.entries[i]
		if entry.bound != 0 && entry.date == tt.date {
			used++
		}
	}
	return used * 1000 / n
}

// nullTransTable is used when Hash is 0.
type nullTransTable struct{}

func (nullTransTable) Size() int { return 0 }

func (nullTransTable) IncDate() {}

func (nullTransTable) Clear() {}

func (nullTransTable) Probe(key uint64, depth, alpha, beta int) (value, newAlpha, newBeta int, cutoff bool) {
	return 0, alpha, beta, false
}

func (nullTransTable) Record(key uint64, depth, score, bound int) {}

func (nullTransTable) HashFull() int { return 0 }
