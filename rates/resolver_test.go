package rates

import (
	"bytes"
	"log"
	"testing"
)

func testIndexes(t *testing.T) (*RateAreaIndex, *ZipLocalityIndex) {
	t.Helper()

	areas, err := BuildRateAreaIndex([]PlanRecord{
		silver("200.00", 7),
		silver("150.00", 7),
		silver("150.00", 7),
		silver("300.00", 7),
		silver("250.00", 2),
		{MetalLevel: "Gold", Rate: dec("100.00"), RateArea: 2},
		silver("10.00", 1),
		silver("20.00", 1),
		silver("30.00", 4),
		silver("40.00", 4),
		silver("245.205", 9),
		silver("245.2", 9),
		silver("245.20", 9),
		silver("246.125", 9),
	})
	if err != nil {
		t.Fatalf("BuildRateAreaIndex: %v", err)
	}

	zips, err := BuildZipLocalityIndex([]ZipRecord{
		{Zipcode: "07001", RateArea: 7},
		{Zipcode: "00601", RateArea: 1},
		{Zipcode: "00601", RateArea: 4},
		{Zipcode: "10001", RateArea: 2},
		{Zipcode: "55555", RateArea: 5},
		{Zipcode: "09009", RateArea: 9},
		{Zipcode: "07002", RateArea: 7},
		{Zipcode: "07002", RateArea: 7},
	})
	if err != nil {
		t.Fatalf("BuildZipLocalityIndex: %v", err)
	}
	return areas, zips
}

func TestResolveZip(t *testing.T) {
	areas, zips := testIndexes(t)

	tests := []struct {
		name string
		zip  string
		want string
	}{
		{"single area, three distinct rates", "07001", "200.00"},
		{"repeated zip/area pair counts once", "07002", "200.00"},
		{"spans two rate areas", "00601", ""},
		{"one distinct Silver rate", "10001", ""},
		{"area without Silver plans", "55555", ""},
		{"unknown zip", "99999", ""},
		{"rounds to cents", "09009", "245.21"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ResolveZip(tt.zip, areas, zips)
			if r.Zipcode != tt.zip {
				t.Errorf("Zipcode = %q, want %q", r.Zipcode, tt.zip)
			}
			if got := r.RateString(); got != tt.want {
				t.Errorf("RateString() = %q, want %q", got, tt.want)
			}
			if r.Resolved != (tt.want != "") {
				t.Errorf("Resolved = %v, want %v", r.Resolved, tt.want != "")
			}
		})
	}
}

func TestResolvePreservesOrderAndDuplicates(t *testing.T) {
	areas, zips := testIndexes(t)

	request := []string{"10001", "07001", "00601", "07001", "99999", "07001"}
	got := Resolve(request, areas, zips, nil)

	if len(got) != len(request) {
		t.Fatalf("got %d results, want %d", len(got), len(request))
	}
	want := []string{"", "200.00", "", "200.00", "", "200.00"}
	for i, r := range got {
		if r.Zipcode != request[i] {
			t.Errorf("result[%d].Zipcode = %q, want %q", i, r.Zipcode, request[i])
		}
		if r.RateString() != want[i] {
			t.Errorf("result[%d] rate = %q, want %q", i, r.RateString(), want[i])
		}
	}
}

func TestResolveEmptyRequest(t *testing.T) {
	areas, zips := testIndexes(t)

	got := Resolve(nil, areas, zips, nil)
	if len(got) != 0 {
		t.Errorf("got %d results for empty request, want 0", len(got))
	}
}

func TestResolveReportsEveryZip(t *testing.T) {
	areas, zips := testIndexes(t)

	var seen []ResolvedRate
	rep := ReporterFunc(func(r ResolvedRate) { seen = append(seen, r) })

	results := Resolve([]string{"07001", "00601", "07001"}, areas, zips, rep)
	if len(seen) != len(results) {
		t.Fatalf("reporter saw %d results, want %d", len(seen), len(results))
	}
	for i := range results {
		if seen[i] != results[i] {
			t.Errorf("reported[%d] = %+v, want %+v", i, seen[i], results[i])
		}
	}
}

func TestLogReporterFormat(t *testing.T) {
	areas, zips := testIndexes(t)

	var buf bytes.Buffer
	rep := LogReporter{Logger: log.New(&buf, "", 0)}
	Resolve([]string{"07001", "00601"}, areas, zips, rep)

	want := "07001, 200.00\n00601, \n"
	if buf.String() != want {
		t.Errorf("log output = %q, want %q", buf.String(), want)
	}
}

func TestSummarize(t *testing.T) {
	areas, zips := testIndexes(t)

	s := Summarize(Resolve([]string{"07001", "00601", "10001", "07002"}, areas, zips, nil))
	if s.Requested != 4 || s.Resolved != 2 || s.Unresolved != 2 {
		t.Errorf("Summarize = %+v, want {Requested:4 Resolved:2 Unresolved:2}", s)
	}
}
