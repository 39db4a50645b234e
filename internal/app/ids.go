package app

import "time"

// idGen hands out millisecond timestamps, bumped past the last issued
// (or observed) id so that ids stay unique and increasing.
type idGen struct {
	last int64
	now  func() time.Time
}

func (g *idGen) next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

func (g *idGen) observe(id int64) {
	if id > g.last {
		g.last = id
	}
}
