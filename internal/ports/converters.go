package ports

import (
	"math"

	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/domain"
)

// finiteOrNil drops values JSON can't represent, like the cost of a game that was never played
func finiteOrNil(value float64) *float64 {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return nil
	}
	return &value
}

func dateOrNil(date domain.Date) *string {
	if date.IsZero() {
		return nil
	}
	formatted := date.String()
	return &formatted
}

type totalsResponse struct {
	Minutes       int     `json:"minutes"`
	Hours         float64 `json:"hours"`
	Sessions      int     `json:"sessions"`
	Plays         int     `json:"plays"`
	UniquePlayers int     `json:"uniquePlayers"`
	Locations     int     `json:"locations"`
	FirstPlayed   *string `json:"firstPlayed"`
	LastPlayed    *string `json:"lastPlayed"`
}

func totalsToResponse(totals domain.Totals) totalsResponse {
	return totalsResponse{
		Minutes:       totals.Minutes,
		Hours:         totals.Hours(),
		Sessions:      totals.Sessions,
		Plays:         totals.Plays,
		UniquePlayers: totals.UniquePlayers,
		Locations:     totals.Locations,
		FirstPlayed:   dateOrNil(totals.FirstPlayed),
		LastPlayed:    dateOrNil(totals.LastPlayed),
	}
}

type yearsResponse struct {
	Years []int `json:"years"`
}

type gameRefResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func gameRefToResponse(ref app.GameRef) gameRefResponse {
	return gameRefResponse{ID: ref.ID, Name: ref.Name, Type: string(ref.Type)}
}

type acquisitionResponse struct {
	Game      gameRefResponse `json:"game"`
	CopyID    int             `json:"copyId"`
	Date      *string         `json:"date"`
	PricePaid *float64        `json:"pricePaid"`
}

type yearSummaryResponse struct {
	Year               int                   `json:"year"`
	Totals             totalsResponse        `json:"totals"`
	GamesPlayed        int                   `json:"gamesPlayed"`
	NewToMe            []gameRefResponse     `json:"newToMe"`
	Acquisitions       []acquisitionResponse `json:"acquisitions"`
	AcquisitionsByType map[string]int        `json:"acquisitionsByType"`
	AmountSpent        float64               `json:"amountSpent"`
}

func yearSummaryToResponse(summary app.YearSummary) yearSummaryResponse {
	newToMe := make([]gameRefResponse, len(summary.NewToMe))
	for i, ref := range summary.NewToMe {
		newToMe[i] = gameRefToResponse(ref)
	}

	acquisitions := make([]acquisitionResponse, len(summary.Acquisitions))
	for i, acquisition := range summary.Acquisitions {
		acquisitions[i] = acquisitionResponse{
			Game:      gameRefToResponse(acquisition.Game),
			CopyID:    acquisition.CopyID,
			PricePaid: acquisition.PricePaid,
		}
		if acquisition.Date != nil {
			acquisitions[i].Date = dateOrNil(*acquisition.Date)
		}
	}

	byType := make(map[string]int, len(summary.AcquisitionsByType))
	for gameType, count := range summary.AcquisitionsByType {
		byType[string(gameType)] = count
	}

	return yearSummaryResponse{
		Year:               summary.Year,
		Totals:             totalsToResponse(summary.Totals),
		GamesPlayed:        summary.GamesPlayed,
		NewToMe:            newToMe,
		Acquisitions:       acquisitions,
		AcquisitionsByType: byType,
		AmountSpent:        summary.AmountSpent,
	}
}

type indexEntryResponse struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type hIndexResponse struct {
	Value        int                  `json:"value"`
	Contributors []indexEntryResponse `json:"contributors"`
}

func indexEntriesToResponse(entries []app.IndexEntry) []indexEntryResponse {
	result := make([]indexEntryResponse, len(entries))
	for i, entry := range entries {
		result[i] = indexEntryResponse{ID: entry.ID, Name: entry.Name, Value: entry.Value}
	}
	return result
}

func hIndexToResponse(index app.HIndex) hIndexResponse {
	return hIndexResponse{
		Value:        index.Value,
		Contributors: indexEntriesToResponse(index.Contributors),
	}
}

type kindHIndexResponse struct {
	Kind   string         `json:"kind"`
	HIndex hIndexResponse `json:"hIndex"`
}

type metricHIndexResponse struct {
	Metric string         `json:"metric"`
	HIndex hIndexResponse `json:"hIndex"`
}

type hIndexChangeResponse struct {
	Kind            string               `json:"kind"`
	Current         hIndexResponse       `json:"current"`
	Previous        hIndexResponse       `json:"previous"`
	Increase        int                  `json:"increase"`
	NewContributors []indexEntryResponse `json:"newContributors"`
}

type hIndexReportResponse struct {
	Year    int                    `json:"year"`
	InYear  []kindHIndexResponse   `json:"inYear"`
	Changes []hIndexChangeResponse `json:"changes"`
	Players []metricHIndexResponse `json:"players"`
}

func hIndexReportToResponse(report app.HIndexReport) hIndexReportResponse {
	inYear := make([]kindHIndexResponse, len(report.InYear))
	for i, entry := range report.InYear {
		inYear[i] = kindHIndexResponse{Kind: string(entry.Kind), HIndex: hIndexToResponse(entry.HIndex)}
	}

	changes := make([]hIndexChangeResponse, len(report.Changes))
	for i, change := range report.Changes {
		changes[i] = hIndexChangeResponse{
			Kind:            string(change.Kind),
			Current:         hIndexToResponse(change.Current),
			Previous:        hIndexToResponse(change.Previous),
			Increase:        change.Increase,
			NewContributors: indexEntriesToResponse(change.NewContributors),
		}
	}

	players := make([]metricHIndexResponse, len(report.Players))
	for i, entry := range report.Players {
		players[i] = metricHIndexResponse{Metric: string(entry.Metric), HIndex: hIndexToResponse(entry.HIndex)}
	}

	return hIndexReportResponse{
		Year:    report.Year,
		InYear:  inYear,
		Changes: changes,
		Players: players,
	}
}

// bandResponse is the value range of a band. A nil max is unbounded.
// For value clubs the range is a cost per metric, (min, max].
type bandResponse struct {
	Name string   `json:"name"`
	Min  float64  `json:"min"`
	Max  *float64 `json:"max"`
}

func bandToResponse(band domain.Band, inverted bool) bandResponse {
	if inverted {
		// Stored negated, see domain.ValueClubLadder
		minCost := 0.0
		if band.Max != 0 {
			minCost = -band.Max
		}
		maxCost := -band.Min
		return bandResponse{Name: band.Name, Min: minCost, Max: &maxCost}
	}
	response := bandResponse{Name: band.Name, Min: band.Min}
	if band.Max != 0 {
		maxValue := band.Max
		response.Max = &maxValue
	}
	return response
}

type tierGameResponse struct {
	GameID        int      `json:"gameId"`
	Name          string   `json:"name"`
	Value         *float64 `json:"value"`
	Band          int      `json:"band"`
	PreviousValue *float64 `json:"previousValue"`
	PreviousBand  int      `json:"previousBand"`
}

func tierGamesToResponse(games []app.TierGame) []tierGameResponse {
	result := make([]tierGameResponse, len(games))
	for i, game := range games {
		result[i] = tierGameResponse{
			GameID:        game.GameID,
			Name:          game.Name,
			Value:         finiteOrNil(game.Value),
			Band:          game.Band,
			PreviousValue: finiteOrNil(game.PreviousValue),
			PreviousBand:  game.PreviousBand,
		}
	}
	return result
}

type tierSummaryResponse struct {
	Index              int                `json:"index"`
	Band               bandResponse       `json:"band"`
	Count              int                `json:"count"`
	PreviousCount      int                `json:"previousCount"`
	Cumulative         int                `json:"cumulative"`
	PreviousCumulative int                `json:"previousCumulative"`
	Increase           int                `json:"increase"`
	Entered            []tierGameResponse `json:"entered"`
	Graduated          []tierGameResponse `json:"graduated"`
	Skipped            []tierGameResponse `json:"skipped"`
}

type tiersResponse struct {
	Year   int                   `json:"year"`
	Metric string                `json:"metric"`
	Tiers  []tierSummaryResponse `json:"tiers"`
}

func tiersToResponse(year int, metric domain.Metric, tiers []app.TierSummary, inverted bool) tiersResponse {
	result := make([]tierSummaryResponse, len(tiers))
	for i, tier := range tiers {
		result[i] = tierSummaryResponse{
			Index:              tier.Index,
			Band:               bandToResponse(tier.Band, inverted),
			Count:              tier.Count,
			PreviousCount:      tier.PreviousCount,
			Cumulative:         tier.Cumulative,
			PreviousCumulative: tier.PreviousCumulative,
			Increase:           tier.Increase,
			Entered:            tierGamesToResponse(tier.Entered),
			Graduated:          tierGamesToResponse(tier.Graduated),
			Skipped:            tierGamesToResponse(tier.Skipped),
		}
	}
	return tiersResponse{Year: year, Metric: string(metric), Tiers: result}
}

type tierGamesResponse struct {
	Year   int                `json:"year"`
	Metric string             `json:"metric"`
	Band   bandResponse       `json:"band"`
	Games  []tierGameResponse `json:"games"`
}

type gamePlayCountResponse struct {
	GameID int `json:"gameId"`
	Plays  int `json:"plays"`
}

type dayResponse struct {
	Date    string                  `json:"date"`
	Minutes int                     `json:"minutes"`
	Plays   int                     `json:"plays"`
	Games   []gamePlayCountResponse `json:"games"`
}

func dayToResponse(day *app.DayStats) *dayResponse {
	if day == nil {
		return nil
	}
	games := make([]gamePlayCountResponse, len(day.Games))
	for i, game := range day.Games {
		games[i] = gamePlayCountResponse{GameID: game.GameID, Plays: game.Plays}
	}
	return &dayResponse{
		Date:    day.Date.String(),
		Minutes: day.Minutes,
		Plays:   day.Plays,
		Games:   games,
	}
}

type runResponse struct {
	Length int     `json:"length"`
	Start  *string `json:"start"`
	End    *string `json:"end"`
}

type activityResponse struct {
	Year            int          `json:"year"`
	PlayDays        int          `json:"playDays"`
	LongestDay      *dayResponse `json:"longestDay"`
	ShortestDay     *dayResponse `json:"shortestDay"`
	MostGamesDay    *dayResponse `json:"mostGamesDay"`
	LongestStreak   runResponse  `json:"longestStreak"`
	LongestDrySpell runResponse  `json:"longestDrySpell"`
}

func activityToResponse(year int, activity app.Activity) activityResponse {
	return activityResponse{
		Year:         year,
		PlayDays:     activity.PlayDays,
		LongestDay:   dayToResponse(activity.Records.Longest),
		ShortestDay:  dayToResponse(activity.Records.Shortest),
		MostGamesDay: dayToResponse(activity.Records.MostGames),
		LongestStreak: runResponse{
			Length: activity.LongestStreak.Length,
			Start:  dateOrNil(activity.LongestStreak.Start),
			End:    dateOrNil(activity.LongestStreak.End),
		},
		LongestDrySpell: runResponse{
			Length: activity.LongestDrySpell.Length,
			Start:  dateOrNil(activity.LongestDrySpell.Start),
			End:    dateOrNil(activity.LongestDrySpell.End),
		},
	}
}

type achievementResponse struct {
	Metric    string `json:"metric"`
	Threshold int    `json:"threshold"`
	Date      string `json:"date"`
}

type achievementsResponse struct {
	Year         int                   `json:"year"`
	Achievements []achievementResponse `json:"achievements"`
}

func achievementsToResponse(year int, achievements []app.Achievement) achievementsResponse {
	result := make([]achievementResponse, len(achievements))
	for i, achievement := range achievements {
		result[i] = achievementResponse{
			Metric:    string(achievement.Metric),
			Threshold: achievement.Threshold,
			Date:      achievement.Date.String(),
		}
	}
	return achievementsResponse{Year: year, Achievements: result}
}

type rankedEntryResponse struct {
	Rank   int            `json:"rank"`
	ID     int            `json:"id"`
	Name   string         `json:"name"`
	Totals totalsResponse `json:"totals"`
}

type rankingResponse struct {
	Year    int                   `json:"year"`
	Kind    string                `json:"kind"`
	Metric  string                `json:"metric"`
	Entries []rankedEntryResponse `json:"entries"`
}

func rankingToResponse(year int, kind domain.RankingKind, metric domain.Metric, entries []app.RankedEntry) rankingResponse {
	result := make([]rankedEntryResponse, len(entries))
	for i, entry := range entries {
		result[i] = rankedEntryResponse{
			Rank:   entry.Rank,
			ID:     entry.ID,
			Name:   entry.Name,
			Totals: totalsToResponse(entry.Totals),
		}
	}
	return rankingResponse{Year: year, Kind: string(kind), Metric: string(metric), Entries: result}
}
