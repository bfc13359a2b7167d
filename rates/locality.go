package rates

// areaSet is a plain membership set of rate areas. Only its cardinality and
// sole member are ever read.
type areaSet map[int]struct{}

// ZipLocalityBuilder accumulates the rate areas each ZIP code belongs to.
type ZipLocalityBuilder struct {
	zips  map[string]areaSet
	rows  int
	index *ZipLocalityIndex
}

func NewZipLocalityBuilder() *ZipLocalityBuilder {
	return &ZipLocalityBuilder{zips: make(map[string]areaSet)}
}

// Add records that z.Zipcode lies in z.RateArea. Repeated pairs are
// deduplicated.
func (b *ZipLocalityBuilder) Add(z ZipRecord) error {
	if b.index != nil {
		return ErrFrozen
	}
	b.rows++
	set, ok := b.zips[z.Zipcode]
	if !ok {
		set = make(areaSet, 1)
		b.zips[z.Zipcode] = set
	}
	set[z.RateArea] = struct{}{}
	return nil
}

// Rows returns how many zip records were added.
func (b *ZipLocalityBuilder) Rows() int {
	return b.rows
}

// Build freezes the builder and returns the index.
func (b *ZipLocalityBuilder) Build() *ZipLocalityIndex {
	if b.index == nil {
		b.index = &ZipLocalityIndex{zips: b.zips}
		b.zips = nil
	}
	return b.index
}

// BuildZipLocalityIndex builds an index from a complete ZIP mapping.
func BuildZipLocalityIndex(zips []ZipRecord) (*ZipLocalityIndex, error) {
	b := NewZipLocalityBuilder()
	for _, z := range zips {
		if err := b.Add(z); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// ZipLocalityIndex maps a ZIP code to the distinct rate areas it spans.
type ZipLocalityIndex struct {
	zips map[string]areaSet
}

// AreaCount returns how many distinct rate areas zip spans. Unknown ZIP
// codes span zero.
func (x *ZipLocalityIndex) AreaCount(zip string) int {
	return len(x.zips[zip])
}

// SingleRateArea returns the rate area of zip when it spans exactly one.
func (x *ZipLocalityIndex) SingleRateArea(zip string) (int, bool) {
	set := x.zips[zip]
	if len(set) != 1 {
		return 0, false
	}
	for area := range set {
		return area, true
	}
	return 0, false
}

// Len returns the number of distinct ZIP codes in the index.
func (x *ZipLocalityIndex) Len() int {
	return len(x.zips)
}
