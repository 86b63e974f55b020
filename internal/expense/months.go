package expense

import (
	"time"

	"golang.org/x/text/cases"
)

// monthsByName maps case-folded English month names to months. Both full
// names and three-letter abbreviations are accepted, plus "sept".
var monthsByName = func() map[string]time.Month {
	fold := cases.Fold()
	m := make(map[string]time.Month, 25)
	for month := time.January; month <= time.December; month++ {
		name := fold.String(month.String())
		m[name] = month
		m[name[:3]] = month
	}
	m["sept"] = time.September
	return m
}()

func lookupMonth(name string) (time.Month, bool) {
	month, ok := monthsByName[cases.Fold().String(name)]
	return month, ok
}
