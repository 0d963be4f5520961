package app

import (
	"cmp"
	"slices"

	"github.com/meeplestats/meeplestats/internal/domain"
)

type GamePlayCount struct {
	GameID int
	Plays  int
}

// DayStats is the reduction of every play logged on a single date
type DayStats struct {
	Date    domain.Date
	Minutes int
	Plays   int
	// Ordered by game id
	Games []GamePlayCount
}

func (d DayStats) DistinctGames() int {
	return len(d.Games)
}

type DayRecords struct {
	Longest *DayStats
	// Days without any logged duration are not considered
	Shortest  *DayStats
	MostGames *DayStats
}

// Streak is a run of consecutive play days
type Streak struct {
	Length int
	Start  domain.Date
	End    domain.Date
}

// DrySpell is a run of days without plays between two play days.
// Start and End are the first and last day without a play.
type DrySpell struct {
	Length int
	Start  domain.Date
	End    domain.Date
}

type Activity struct {
	PlayDays        int
	Records         DayRecords
	LongestStreak   Streak
	LongestDrySpell DrySpell
}

// ComputeDays reduces the plays in scope to one entry per date, oldest first.
//
// Plays of games missing from the catalog are counted.
func ComputeDays(c domain.Collection, scope domain.Scope) []DayStats {
	byDate := make(map[domain.Date]*DayStats)
	gamePlays := make(map[domain.Date]map[int]int)

	for _, play := range c.Plays {
		if !scope.Includes(play.Date) {
			continue
		}

		day, ok := byDate[play.Date]
		if !ok {
			day = &DayStats{Date: play.Date}
			byDate[play.Date] = day
			gamePlays[play.Date] = make(map[int]int)
		}

		day.Plays++
		if play.DurationMinutes > 0 {
			day.Minutes += play.DurationMinutes
		}
		gamePlays[play.Date][play.GameID]++
	}

	days := make([]DayStats, 0, len(byDate))
	for date, day := range byDate {
		games := make([]GamePlayCount, 0, len(gamePlays[date]))
		for gameID, plays := range gamePlays[date] {
			games = append(games, GamePlayCount{GameID: gameID, Plays: plays})
		}
		slices.SortFunc(games, func(a, b GamePlayCount) int {
			return cmp.Compare(a.GameID, b.GameID)
		})
		day.Games = games
		days = append(days, *day)
	}

	slices.SortFunc(days, func(a, b DayStats) int {
		return a.Date.Compare(b.Date)
	})

	return days
}

// ComputeDayRecords finds the longest, shortest and most varied day.
// Ties go to the earliest day.
//
// NOTE: days must be sorted by date, as returned by ComputeDays
func ComputeDayRecords(days []DayStats) DayRecords {
	records := DayRecords{}

	for i := range days {
		day := &days[i]

		if records.Longest == nil || day.Minutes > records.Longest.Minutes {
			records.Longest = day
		}

		if day.Minutes > 0 && (records.Shortest == nil || day.Minutes < records.Shortest.Minutes) {
			records.Shortest = day
		}

		if records.MostGames == nil || day.DistinctGames() > records.MostGames.DistinctGames() {
			records.MostGames = day
		}
	}

	// Return copies so the records don't alias the input
	return DayRecords{
		Longest:   cloneDay(records.Longest),
		Shortest:  cloneDay(records.Shortest),
		MostGames: cloneDay(records.MostGames),
	}
}

func cloneDay(day *DayStats) *DayStats {
	if day == nil {
		return nil
	}
	clone := *day
	clone.Games = slices.Clone(day.Games)
	return &clone
}

// ComputeLongestStreak finds the longest run of consecutive play days.
// Ties go to the earliest run.
//
// NOTE: days must be sorted by date, as returned by ComputeDays
func ComputeLongestStreak(days []DayStats) Streak {
	if len(days) == 0 {
		return Streak{}
	}

	best := Streak{Length: 1, Start: days[0].Date, End: days[0].Date}
	current := best

	for i := 1; i < len(days); i++ {
		if days[i-1].Date.AddDays(1) == days[i].Date {
			current.Length++
			current.End = days[i].Date
		} else {
			current = Streak{Length: 1, Start: days[i].Date, End: days[i].Date}
		}

		if current.Length > best.Length {
			best = current
		}
	}

	return best
}

// ComputeLongestDrySpell finds the longest run of days without plays strictly
// between two play days. Ties go to the earliest run.
//
// NOTE: days must be sorted by date, as returned by ComputeDays
func ComputeLongestDrySpell(days []DayStats) DrySpell {
	best := DrySpell{}

	for i := 1; i < len(days); i++ {
		missing := days[i-1].Date.DaysUntil(days[i].Date) - 1
		if missing > best.Length {
			best = DrySpell{
				Length: missing,
				Start:  days[i-1].Date.AddDays(1),
				End:    days[i].Date.AddDays(-1),
			}
		}
	}

	return best
}

// ComputeActivity computes every day based statistic for the plays in scope
func ComputeActivity(c domain.Collection, scope domain.Scope) Activity {
	days := ComputeDays(c, scope)
	return Activity{
		PlayDays:        len(days),
		Records:         ComputeDayRecords(days),
		LongestStreak:   ComputeLongestStreak(days),
		LongestDrySpell: ComputeLongestDrySpell(days),
	}
}
