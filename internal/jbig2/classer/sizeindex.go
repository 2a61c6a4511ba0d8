package classer

// MaxDiffWidth and MaxDiffHeight are the maximal differences of the compared
// bitmaps dimensions.
const (
	MaxDiffWidth  = 2
	MaxDiffHeight = 2
)

// MaxSizeCells is the number of the size cells visited by the template search.
const MaxSizeCells = 25

// sizeOffsets are the width and height offsets of the searched size cells,
// ordered from the queried size outwards.
var sizeOffsets = [MaxSizeCells][2]int{
	{0, 0},
	// distance 1
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
	// distance 2
	{-2, 0}, {2, 0}, {0, -2}, {0, 2},
	{-2, -1}, {2, -1}, {-2, 1}, {2, 1},
	{-1, -2}, {1, -2}, {-1, 2}, {1, 2},
	{-2, -2}, {2, -2}, {-2, 2}, {2, 2},
}

// sizeIndex maps the area of the un-bordered template to the template ids.
// Templates of different shapes may share the area.
type sizeIndex map[int][]int

func (s sizeIndex) add(width, height, id int) {
	area := width * height
	s[area] = append(s[area], id)
}

// removeLast removes the most recently added 'id' for the given size.
func (s sizeIndex) removeLast(width, height, id int) {
	area := width * height
	ids := s[area]
	if n := len(ids); n > 0 && ids[n-1] == id {
		ids = ids[:n-1]
	}
	if len(ids) == 0 {
		delete(s, area)
		return
	}
	s[area] = ids
}

// similarTemplatesFinder yields the ids of the templates with a size similar to
// the queried width and height. The size cells are visited in the sizeOffsets
// order; the sequence is finite and can't be restarted.
type similarTemplatesFinder struct {
	templates []*Template
	index     sizeIndex

	width, height int
	maxCells      int

	cell             int
	cellW, cellH     int
	candidates       []int
	candidatesOffset int
}

func newSimilarTemplatesFinder(templates []*Template, index sizeIndex, width, height, maxCells int) *similarTemplatesFinder {
	if maxCells > MaxSizeCells || maxCells <= 0 {
		maxCells = MaxSizeCells
	}
	return &similarTemplatesFinder{
		templates: templates,
		index:     index,
		width:     width,
		height:    height,
		maxCells:  maxCells,
	}
}

// Next returns the next template id, or -1 when there are no more candidates.
func (f *similarTemplatesFinder) Next() int {
	for {
		for f.candidatesOffset < len(f.candidates) {
			id := f.candidates[f.candidatesOffset]
			f.candidatesOffset++
			t := f.templates[id]
			// the area match doesn't imply the size match
			if t.Width == f.cellW && t.Height == f.cellH {
				return id
			}
		}
		if f.cell >= f.maxCells {
			return -1
		}
		offset := sizeOffsets[f.cell]
		f.cell++

		f.cellW, f.cellH = f.width+offset[0], f.height+offset[1]
		f.candidates, f.candidatesOffset = nil, 0
		if f.cellW <= 0 || f.cellH <= 0 {
			continue
		}
		f.candidates = f.index[f.cellW*f.cellH]
	}
}
