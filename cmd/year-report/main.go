package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/meeplestats/meeplestats/internal/adapters/snapshotrepository"
	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/domain"
)

type report struct {
	Summary      app.YearSummary   `json:"summary"`
	HIndex       app.HIndexReport  `json:"hIndex"`
	Activity     app.Activity      `json:"activity"`
	Achievements []app.Achievement `json:"achievements"`
	TopGames     []app.RankedEntry `json:"topGames"`
}

// Prints the statistics of a year computed from a collection export
func main() {
	year := flag.Int("year", domain.AllTime, "year to report on, 0 for all time")
	top := flag.Int("top", 10, "number of games to rank")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: year-report [-year 2024] [-top 10] <export.json>")
	}
	if *year < domain.AllTime || *year > 9999 {
		log.Fatalf("Invalid year: %d", *year)
	}

	snapshot, err := snapshotrepository.LoadFile(flag.Arg(0), time.Now)
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}
	c := snapshot.Collection

	out := report{
		Summary:      app.ComputeYearSummary(c, *year),
		HIndex:       app.ComputeHIndexReport(c, *year),
		Activity:     app.ComputeActivity(c, domain.InYear(*year)),
		Achievements: app.FilterAchievementsByYear(app.ComputeLoggingAchievements(c), *year),
		TopGames:     app.RankGames(c, domain.MetricHours, domain.InYear(*year), *top),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}
