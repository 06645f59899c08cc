package world

// searchKey identifies one cached breadth-first search.
type searchKey struct {
	from     int
	color    Color
	strength float64
}

// search holds the step distance and predecessor of every tile reached from
// one source. Unreached tiles hold -1.
type search struct {
	from int
	dist []int32
	prev []int32
}

// GridPathfinder computes hero routes with an eight-direction BFS. Every step
// costs the same number of move points. Tiles holding a hero, castle or
// object can only be the last tile of a route. Tiles next to a monster that
// outclasses the moving army are avoided.
type GridPathfinder struct {
	w       *World
	cache   map[searchKey]*search
	current *search
}

// NewGridPathfinder returns a pathfinder bound to the world.
func NewGridPathfinder(w *World) *GridPathfinder {
	return &GridPathfinder{w: w, cache: make(map[searchKey]*search)}
}

// Reset drops every cached search.
func (p *GridPathfinder) Reset() {
	clear(p.cache)
	p.current = nil
}

// Reevaluate makes the hero's position the source for Distance and Path.
func (p *GridPathfinder) Reevaluate(h *Hero) {
	p.current = p.lookup(h.Index, h.Color, h.Army.Strength())
}

// Distance returns the move-point cost from the current source to target,
// or 0 when the target is unreachable or is the source itself.
func (p *GridPathfinder) Distance(target int) uint32 {
	if p.current == nil {
		return 0
	}
	return p.current.cost(target)
}

// Path returns the tiles to walk from the current source to target,
// excluding the source. It is empty when the target is unreachable.
func (p *GridPathfinder) Path(target int) []int {
	if p.current == nil || !p.w.Map.IsValidIndex(target) || p.current.dist[target] <= 0 {
		return nil
	}
	steps := int(p.current.dist[target])
	path := make([]int, steps)
	for idx := target; steps > 0; steps-- {
		path[steps-1] = idx
		idx = int(p.current.prev[idx])
	}
	return path
}

// DistanceBetween returns the move-point cost for an army of the given color
// and strength to walk from one tile to another, 0 when unreachable.
func (p *GridPathfinder) DistanceBetween(from, to int, c Color, strength float64) uint32 {
	if !p.w.Map.IsValidIndex(from) {
		return 0
	}
	return p.lookup(from, c, strength).cost(to)
}

func (s *search) cost(target int) uint32 {
	if target < 0 || target >= len(s.dist) || s.dist[target] <= 0 {
		return 0
	}
	return uint32(s.dist[target]) * stepCost
}

func (p *GridPathfinder) lookup(from int, c Color, strength float64) *search {
	key := searchKey{from: from, color: c, strength: strength}
	if s, ok := p.cache[key]; ok {
		return s
	}
	s := p.bfs(from, c, strength)
	p.cache[key] = s
	return s
}

func (p *GridPathfinder) bfs(from int, c Color, strength float64) *search {
	m := p.w.Map
	n := m.Size()
	s := &search{from: from, dist: make([]int32, n), prev: make([]int32, n)}
	for i := range s.dist {
		s.dist[i] = -1
		s.prev[i] = -1
	}
	if !m.IsValidIndex(from) {
		return s
	}
	s.dist[from] = 0

	queue := []int{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur != from && !p.passable(cur, c, strength) {
			continue
		}
		for _, next := range m.Around(cur) {
			if s.dist[next] != -1 || m.Tiles[next].Blocked {
				continue
			}
			s.dist[next] = s.dist[cur] + 1
			s.prev[next] = int32(cur)
			queue = append(queue, next)
		}
	}
	return s
}

// passable reports whether a route may continue through idx.
func (p *GridPathfinder) passable(idx int, c Color, strength float64) bool {
	if p.w.ObjectAt(idx) != ObjectNone {
		return false
	}
	for _, n := range p.w.Map.Around(idx) {
		t := &p.w.Map.Tiles[n]
		if t.Object == ObjectMonster && t.Guard >= strength {
			return false
		}
	}
	return true
}
