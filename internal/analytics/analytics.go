package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"cook-companion/internal/journal"
)

// DailyStats summarises one UTC day of AI gateway traffic.
type DailyStats struct {
	Date        string
	Total       int
	Failed      int
	UniqueUsers int
	ByKind      map[journal.Kind]int
	PerUser     map[int64]UserStats
}

type UserStats struct {
	UserID   int64
	Requests int
	Failed   int
	ByKind   map[journal.Kind]int
}

// AnalyzeDay counts the events that fall on day's calendar date in day's location.
func AnalyzeDay(events []journal.Event, day time.Time) *DailyStats {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	stats := &DailyStats{
		Date:    start.Format("2006-01-02"),
		ByKind:  make(map[journal.Kind]int),
		PerUser: make(map[int64]UserStats),
	}
	for _, ev := range events {
		if ev.Timestamp.Before(start) || !ev.Timestamp.Before(end) {
			continue
		}
		stats.Total++
		stats.ByKind[ev.Kind]++
		us, ok := stats.PerUser[ev.UserID]
		if !ok {
			us = UserStats{UserID: ev.UserID, ByKind: make(map[journal.Kind]int)}
		}
		us.Requests++
		us.ByKind[ev.Kind]++
		if ev.Failed {
			stats.Failed++
			us.Failed++
		}
		stats.PerUser[ev.UserID] = us
	}
	stats.UniqueUsers = len(stats.PerUser)
	return stats
}

// Summary renders a plain-text report for admins.
func (ds *DailyStats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Cook companion report for %s\n\n", ds.Date)
	fmt.Fprintf(&b, "AI requests: %d (failed: %d)\n", ds.Total, ds.Failed)
	fmt.Fprintf(&b, "Unique users: %d\n", ds.UniqueUsers)
	if ds.Total == 0 {
		b.WriteString("\nNo activity today.")
		return b.String()
	}

	b.WriteString("\nBy type:\n")
	for _, k := range []journal.Kind{journal.KindImage, journal.KindText, journal.KindFollowup} {
		if n := ds.ByKind[k]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", k, n)
		}
	}

	ids := make([]int64, 0, len(ds.PerUser))
	for id := range ds.PerUser {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, c := ds.PerUser[ids[i]], ds.PerUser[ids[j]]
		if a.Requests != c.Requests {
			return a.Requests > c.Requests
		}
		return ids[i] < ids[j]
	})
	b.WriteString("\nMost active users:\n")
	for i, id := range ids {
		if i == 10 {
			break
		}
		fmt.Fprintf(&b, "- %d: %d requests\n", id, ds.PerUser[id].Requests)
	}
	return strings.TrimRight(b.String(), "\n")
}
