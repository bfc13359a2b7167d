package rates

import (
	"errors"
	"testing"
)

func TestZipLocalityIndex(t *testing.T) {
	idx, err := BuildZipLocalityIndex([]ZipRecord{
		{Zipcode: "00601", RateArea: 1},
		{Zipcode: "00601", RateArea: 4},
		{Zipcode: "10001", RateArea: 2},
		{Zipcode: "10001", RateArea: 2},
		{Zipcode: "64148", RateArea: 3},
	})
	if err != nil {
		t.Fatalf("BuildZipLocalityIndex: %v", err)
	}

	tests := []struct {
		zip       string
		count     int
		area      int
		singleton bool
	}{
		{"00601", 2, 0, false},
		{"10001", 1, 2, true},
		{"64148", 1, 3, true},
		{"99999", 0, 0, false},
		{"601", 0, 0, false},
	}
	for _, tt := range tests {
		if got := idx.AreaCount(tt.zip); got != tt.count {
			t.Errorf("AreaCount(%q) = %d, want %d", tt.zip, got, tt.count)
		}
		area, ok := idx.SingleRateArea(tt.zip)
		if ok != tt.singleton || area != tt.area {
			t.Errorf("SingleRateArea(%q) = (%d, %v), want (%d, %v)", tt.zip, area, ok, tt.area, tt.singleton)
		}
	}

	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}
}

func TestZipLocalityBuilderFrozenAfterBuild(t *testing.T) {
	b := NewZipLocalityBuilder()
	b.Add(ZipRecord{Zipcode: "36749", RateArea: 11})
	idx := b.Build()

	if err := b.Add(ZipRecord{Zipcode: "36749", RateArea: 12}); !errors.Is(err, ErrFrozen) {
		t.Errorf("Add after Build = %v, want ErrFrozen", err)
	}
	if got := idx.AreaCount("36749"); got != 1 {
		t.Errorf("AreaCount after rejected Add = %d, want 1", got)
	}
}
