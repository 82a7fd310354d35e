package analytics

import (
	"time"

	"pulsevo/internal/model"
)

// Bucket is one point of the trends time series.
type Bucket struct {
	Date       string `json:"date"`
	Created    int    `json:"created"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"in_progress"`
}

// Ranges longer than this many days switch from daily to weekly buckets.
const weeklyThresholdDays = 30

// Bucketize partitions [start, end] into daily or weekly buckets and counts
// task activity per bucket. With no explicit range the span of observed
// created dates is used; with no usable dates at all it emits seven trailing
// zero days so charts always have an axis.
//
// The in-progress count is cumulative: every In Progress task started by the
// bucket's end boundary is counted, whether or not it later completed.
func Bucketize(tasks []model.Task, start, end *time.Time, now time.Time) []Bucket {
	var from, to time.Time

	switch {
	case start != nil && end != nil:
		from, to = day(*start), day(*end)
	default:
		var have bool
		for _, t := range tasks {
			d := day(t.CreatedDate)
			if t.CreatedDate.IsZero() {
				continue
			}
			if !have || d.Before(from) {
				from = d
				have = true
			}
			if to.Before(d) {
				to = d
			}
		}
		if !have {
			return emptyWeek(now)
		}
	}

	if to.Sub(from).Hours()/24 > weeklyThresholdDays {
		return weeklyBuckets(tasks, from, to)
	}
	return dailyBuckets(tasks, from, to)
}

func dailyBuckets(tasks []model.Task, from, to time.Time) []Bucket {
	buckets := []Bucket{}
	for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		b := Bucket{Date: cur.Format("Jan 02")}
		for i := range tasks {
			t := &tasks[i]
			if !t.CreatedDate.IsZero() && day(t.CreatedDate).Equal(cur) {
				b.Created++
			}
			if t.Status == model.StatusCompleted && t.CompletedDate != nil &&
				day(*t.CompletedDate).Equal(cur) {
				b.Completed++
			}
			if t.Status == model.StatusInProgress && t.StartDate != nil &&
				!day(*t.StartDate).After(cur) {
				b.InProgress++
			}
		}
		buckets = append(buckets, b)
	}
	return buckets
}

func weeklyBuckets(tasks []model.Task, from, to time.Time) []Bucket {
	buckets := []Bucket{}
	for cur := from; !cur.After(to); {
		weekEnd := cur.AddDate(0, 0, 6)
		if weekEnd.After(to) {
			weekEnd = to // final bucket clipped to the range end
		}
		b := Bucket{Date: cur.Format("Jan 02") + " - " + weekEnd.Format("Jan 02")}
		for i := range tasks {
			t := &tasks[i]
			if !t.CreatedDate.IsZero() && within(day(t.CreatedDate), cur, weekEnd) {
				b.Created++
			}
			if t.Status == model.StatusCompleted && t.CompletedDate != nil &&
				within(day(*t.CompletedDate), cur, weekEnd) {
				b.Completed++
			}
			if t.Status == model.StatusInProgress && t.StartDate != nil &&
				!day(*t.StartDate).After(weekEnd) {
				b.InProgress++
			}
		}
		buckets = append(buckets, b)
		cur = weekEnd.AddDate(0, 0, 1)
	}
	return buckets
}

func emptyWeek(now time.Time) []Bucket {
	buckets := make([]Bucket, 0, 7)
	for i := 6; i >= 0; i-- {
		d := day(now).AddDate(0, 0, -i)
		buckets = append(buckets, Bucket{Date: d.Format("Jan 02")})
	}
	return buckets
}

// day truncates to a UTC calendar day.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func within(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}
