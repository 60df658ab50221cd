package dateutil

import "math"

// MonthsPerYear is the number of compounding periods in a year.
const MonthsPerYear = 12

// MonthsFromYears converts a possibly fractional term in years to whole months,
// rounding down. Negative and non-finite terms yield 0.
func MonthsFromYears(years float64) int {
	if math.IsNaN(years) || years <= 0 {
		return 0
	}
	m := math.Floor(years * MonthsPerYear)
	if m > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(m)
}

// CompletedYears returns the number of whole years covered by months.
func CompletedYears(months int) int {
	if months <= 0 {
		return 0
	}
	return months / MonthsPerYear
}

// MonthsBetweenAges is the contribution span from fromAge up to toAge.
// It is 0 when toAge does not lie after fromAge.
func MonthsBetweenAges(fromAge, toAge int) int {
	if toAge <= fromAge {
		return 0
	}
	return (toAge - fromAge) * MonthsPerYear
}

// YearAtAge returns the calendar year in which someone born in birthYear turns age.
func YearAtAge(birthYear, age int) int {
	return birthYear + age
}
