package world

import "sort"

// Tile is a single map cell.
type Tile struct {
	Index    int        `yaml:"-" json:"index"`
	Region   int        `yaml:"region" json:"region"`
	Blocked  bool       `yaml:"blocked" json:"blocked"`
	Object   ObjectType `yaml:"object" json:"object,omitempty"`
	Owner    Color      `yaml:"owner" json:"owner,omitempty"`       // capture objects
	Resource string     `yaml:"resource" json:"resource,omitempty"` // gold, wood, ore, ...
	Quantity int        `yaml:"quantity" json:"quantity,omitempty"` // resource amount or creatures available
	Value    float64    `yaml:"value" json:"value,omitempty"`       // artifact value or strength per dwelling creature
	Guard    float64    `yaml:"guard" json:"guard,omitempty"`       // monster or guardian strength
	Explored Color      `yaml:"-" json:"explored"`
	Visitors []int      `yaml:"-" json:"visitors,omitempty"`
}

// IsFog reports whether the tile is still hidden from the given color.
func (t *Tile) IsFog(c Color) bool {
	return t.Explored&c == 0
}

// VisitedBy reports whether the hero has already visited this tile's object.
func (t *Tile) VisitedBy(heroID int) bool {
	for _, id := range t.Visitors {
		if id == heroID {
			return true
		}
	}
	return false
}

// ClearObject removes whatever object is on the tile.
func (t *Tile) ClearObject() {
	t.Object = ObjectNone
	t.Owner = ColorNone
	t.Resource = ""
	t.Quantity = 0
	t.Value = 0
	t.Guard = 0
	t.Visitors = nil
}

// Map is a rectangular grid of tiles partitioned into regions.
type Map struct {
	Width  int
	Height int
	Tiles  []Tile

	regionCount      int
	regionNeighbours [][]int
}

// NewMap allocates an open map where every tile belongs to region 0.
func NewMap(width, height int) *Map {
	m := &Map{Width: width, Height: height, Tiles: make([]Tile, width*height)}
	for i := range m.Tiles {
		m.Tiles[i].Index = i
	}
	m.RebuildRegions()
	return m
}

// Size returns the number of tiles.
func (m *Map) Size() int { return len(m.Tiles) }

// IsValidIndex reports whether idx addresses a tile.
func (m *Map) IsValidIndex(idx int) bool { return idx >= 0 && idx < len(m.Tiles) }

// Tile returns the tile at idx, or nil when out of range.
func (m *Map) Tile(idx int) *Tile {
	if !m.IsValidIndex(idx) {
		return nil
	}
	return &m.Tiles[idx]
}

// Index converts a coordinate into a tile index, or -1 when out of bounds.
func (m *Map) Index(x, y int) int {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return -1
	}
	return y*m.Width + x
}

// Point converts a tile index into a coordinate.
func (m *Map) Point(idx int) (int, int) {
	return idx % m.Width, idx / m.Width
}

// ApproxDistance returns the number of king moves between two tiles.
func (m *Map) ApproxDistance(a, b int) int {
	ax, ay := m.Point(a)
	bx, by := m.Point(b)
	return max(abs(ax-bx), abs(ay-by))
}

// Around returns the in-bounds neighbours of idx in a fixed order.
func (m *Map) Around(idx int) []int {
	x, y := m.Point(idx)
	out := make([]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if n := m.Index(x+dx, y+dy); n >= 0 {
				out = append(out, n)
			}
		}
	}
	return out
}

// Within returns every tile index within radius king moves of center.
func (m *Map) Within(center, radius int) []int {
	cx, cy := m.Point(center)
	var out []int
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if n := m.Index(x, y); n >= 0 {
				out = append(out, n)
			}
		}
	}
	return out
}

// Reveal uncovers all tiles within radius of center for the color and
// returns the indices that were hidden before.
func (m *Map) Reveal(center, radius int, c Color) []int {
	var revealed []int
	for _, idx := range m.Within(center, radius) {
		t := &m.Tiles[idx]
		if t.IsFog(c) {
			t.Explored |= c
			revealed = append(revealed, idx)
		}
	}
	return revealed
}

// RegionCount returns the number of regions (highest region id + 1).
func (m *Map) RegionCount() int { return m.regionCount }

// RegionNeighbours returns the regions bordering the given region, sorted.
func (m *Map) RegionNeighbours(region int) []int {
	if region < 0 || region >= len(m.regionNeighbours) {
		return nil
	}
	return m.regionNeighbours[region]
}

// RebuildRegions recomputes the region count and region adjacency. Call it
// after editing tile regions.
func (m *Map) RebuildRegions() {
	count := 0
	for i := range m.Tiles {
		if m.Tiles[i].Region+1 > count {
			count = m.Tiles[i].Region + 1
		}
	}
	sets := make([]map[int]bool, count)
	for i := range sets {
		sets[i] = make(map[int]bool)
	}
	for i := range m.Tiles {
		r := m.Tiles[i].Region
		for _, n := range m.Around(i) {
			if other := m.Tiles[n].Region; other != r {
				sets[r][other] = true
			}
		}
	}
	m.regionCount = count
	m.regionNeighbours = make([][]int, count)
	for r, set := range sets {
		for other := range set {
			m.regionNeighbours[r] = append(m.regionNeighbours[r], other)
		}
		sort.Ints(m.regionNeighbours[r])
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
