// Package statistics summarises study sessions.
package statistics

import (
	"slices"
	"time"

	"github.com/dearbones/dearbones/internal/learning"
)

const dayLayout = "2006-01-02"

// StudyStatistics is the summary shown for a deck or for every deck.
type StudyStatistics struct {
	TotalCards int
	// CardsStudiedToday counts sessions since local midnight.
	CardsStudiedToday int
	// Accuracy is the mean confidence scaled to 0..100.
	Accuracy         float64
	TimeSpentMinutes float64
	// Streak is the number of consecutive days with at least one session, ending today.
	Streak int
}

// DailyStatistics holds the sessions of one calendar day.
type DailyStatistics struct {
	Day         string // "2025-01-02"
	Sessions    int
	UniqueCards int
	Accuracy    float64
}

// Calculate summarises sessions as of now. Days are taken in now's location.
func Calculate(totalCards int, sessions []learning.StudySession, now time.Time) StudyStatistics {
	stats := StudyStatistics{TotalCards: totalCards}
	if len(sessions) == 0 {
		return stats
	}

	midnight := startOfDay(now)
	days := make(map[string]struct{})
	confidence := 0
	responseMs := 0
	for _, s := range sessions {
		if !s.StudiedAt.Before(midnight) {
			stats.CardsStudiedToday++
		}
		confidence += s.Confidence
		responseMs += s.ResponseTimeMs
		days[s.StudiedAt.In(now.Location()).Format(dayLayout)] = struct{}{}
	}
	stats.Accuracy = float64(confidence) / float64(len(sessions)) * 20
	stats.TimeSpentMinutes = float64(responseMs) / 60000
	stats.Streak = streak(days, midnight)
	return stats
}

// ByDay groups sessions per calendar day in loc, oldest day first.
func ByDay(sessions []learning.StudySession, loc *time.Location) []DailyStatistics {
	type dayData struct {
		sessions   int
		confidence int
		cards      map[string]struct{}
	}
	data := make(map[string]*dayData)
	for _, s := range sessions {
		day := s.StudiedAt.In(loc).Format(dayLayout)
		d, ok := data[day]
		if !ok {
			d = &dayData{cards: make(map[string]struct{})}
			data[day] = d
		}
		d.sessions++
		d.confidence += s.Confidence
		d.cards[s.CardID] = struct{}{}
	}

	result := make([]DailyStatistics, 0, len(data))
	for day, d := range data {
		result = append(result, DailyStatistics{
			Day:         day,
			Sessions:    d.sessions,
			UniqueCards: len(d.cards),
			Accuracy:    float64(d.confidence) / float64(d.sessions) * 20,
		})
	}
	slices.SortFunc(result, func(a, b DailyStatistics) int {
		if a.Day < b.Day {
			return -1
		}
		if a.Day > b.Day {
			return 1
		}
		return 0
	})
	return result
}

func streak(days map[string]struct{}, midnight time.Time) int {
	n := 0
	for day := midnight; ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day.Format(dayLayout)]; !ok {
			return n
		}
		n++
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
