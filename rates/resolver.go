package rates

import "log"

// Reporter receives every resolved ZIP code as the resolver produces it.
type Reporter interface {
	Report(r ResolvedRate)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(ResolvedRate)

func (f ReporterFunc) Report(r ResolvedRate) { f(r) }

// LogReporter writes one "zipcode, rate" line per ZIP code, leaving the rate
// empty when unresolved.
type LogReporter struct {
	Logger *log.Logger
}

func (l LogReporter) Report(r ResolvedRate) {
	l.Logger.Printf("%s, %s", r.Zipcode, r.RateString())
}

// Resolve answers every ZIP code in request, in order. Duplicate ZIP codes
// are answered again rather than collapsed. rep may be nil.
func Resolve(request []string, areas *RateAreaIndex, zips *ZipLocalityIndex, rep Reporter) []ResolvedRate {
	out := make([]ResolvedRate, 0, len(request))
	for _, zip := range request {
		r := ResolveZip(zip, areas, zips)
		if rep != nil {
			rep.Report(r)
		}
		out = append(out, r)
	}
	return out
}

// ResolveZip computes the SLCSP for a single ZIP code.
//
// The ZIP code must span exactly one rate area, and that area must offer at
// least two distinct Silver rates; the result is the second lowest of them,
// rounded to cents.
func ResolveZip(zip string, areas *RateAreaIndex, zips *ZipLocalityIndex) ResolvedRate {
	area, ok := zips.SingleRateArea(zip)
	if !ok {
		return unresolved(zip)
	}
	rate, ok := areas.SecondLowest(area)
	if !ok {
		return unresolved(zip)
	}
	return ResolvedRate{Zipcode: zip, Rate: rate.Round(2), Resolved: true}
}

// Summary counts the outcomes of a resolution run.
type Summary struct {
	Requested  int
	Resolved   int
	Unresolved int
}

func Summarize(results []ResolvedRate) Summary {
	s := Summary{Requested: len(results)}
	for _, r := range results {
		if r.Resolved {
			s.Resolved++
		} else {
			s.Unresolved++
		}
	}
	return s
}
