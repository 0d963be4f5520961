package domain

import "fmt"

// AllTime is the year parameter meaning "no year restriction"
const AllTime = 0

type scopeKind int

const (
	scopeAllTime scopeKind = iota
	scopeInYear
	scopeThroughYear
)

// Scope selects which plays contribute to a statistic
type Scope struct {
	kind scopeKind
	year int
}

func AllTimeScope() Scope {
	return Scope{kind: scopeAllTime}
}

// InYear selects plays dated within the year. AllTime selects every play.
func InYear(year int) Scope {
	if year == AllTime {
		return AllTimeScope()
	}
	return Scope{kind: scopeInYear, year: year}
}

// ThroughYear selects plays dated within the year or any earlier year.
// AllTime selects every play.
func ThroughYear(year int) Scope {
	if year == AllTime {
		return AllTimeScope()
	}
	return Scope{kind: scopeThroughYear, year: year}
}

func (s Scope) Includes(date Date) bool {
	switch s.kind {
	case scopeAllTime:
		return true
	case scopeInYear:
		return date.Year == s.year
	case scopeThroughYear:
		return date.Year <= s.year
	}
	panic(fmt.Sprintf("logic error: unknown scope kind %d", s.kind))
}

// Year returns the year of the scope, or AllTime
func (s Scope) Year() int {
	return s.year
}

func (s Scope) IsAllTime() bool {
	return s.kind == scopeAllTime
}

func (s Scope) String() string {
	switch s.kind {
	case scopeAllTime:
		return "all-time"
	case scopeInYear:
		return fmt.Sprintf("in-%d", s.year)
	case scopeThroughYear:
		return fmt.Sprintf("through-%d", s.year)
	}
	panic(fmt.Sprintf("logic error: unknown scope kind %d", s.kind))
}
