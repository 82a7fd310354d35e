package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsevo/internal/model"
)

func ptr[T any](v T) *T { return &v }

func task(status string, created time.Time) model.Task {
	return model.Task{Status: status, CreatedDate: created}
}

func TestBucketizeSevenDayRangeIsDaily(t *testing.T) {
	start := date(2024, 3, 1)
	end := date(2024, 3, 7)

	tasks := []model.Task{
		task(model.StatusOpen, date(2024, 3, 2)),
		task(model.StatusOpen, date(2024, 3, 2)),
		task(model.StatusOpen, date(2024, 3, 7)),
	}

	buckets := Bucketize(tasks, &start, &end, date(2024, 3, 10))

	require.Len(t, buckets, 7)
	assert.Equal(t, "Mar 01", buckets[0].Date)
	assert.Equal(t, "Mar 07", buckets[6].Date)
	assert.Equal(t, 2, buckets[1].Created)
	assert.Equal(t, 1, buckets[6].Created)
}

func TestBucketizeLongRangeIsWeekly(t *testing.T) {
	start := date(2024, 1, 1)
	end := date(2024, 2, 15) // 45-day span

	buckets := Bucketize(nil, &start, &end, date(2024, 3, 1))

	// 46 inclusive days: six full weeks plus a clipped tail.
	require.Len(t, buckets, 7)
	assert.Equal(t, "Jan 01 - Jan 07", buckets[0].Date)
	assert.Equal(t, "Jan 08 - Jan 14", buckets[1].Date)
	assert.Equal(t, "Feb 12 - Feb 15", buckets[6].Date)
}

func TestBucketizeWeeklyPartitionHasNoGaps(t *testing.T) {
	start := date(2024, 1, 1)
	end := date(2024, 2, 15)

	// One task per calendar day; every task must land in exactly one bucket.
	tasks := []model.Task{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		tasks = append(tasks, task(model.StatusOpen, d))
	}

	buckets := Bucketize(tasks, &start, &end, date(2024, 3, 1))

	total := 0
	for _, b := range buckets {
		total += b.Created
	}
	assert.Equal(t, len(tasks), total)
}

func TestBucketizeDerivesRangeFromTasks(t *testing.T) {
	tasks := []model.Task{
		task(model.StatusOpen, date(2024, 5, 3)),
		task(model.StatusOpen, date(2024, 5, 6)),
	}

	buckets := Bucketize(tasks, nil, nil, date(2024, 6, 1))

	require.Len(t, buckets, 4) // May 3 through May 6
	assert.Equal(t, "May 03", buckets[0].Date)
	assert.Equal(t, "May 06", buckets[3].Date)
}

func TestBucketizeNoTasksEmitsTrailingWeek(t *testing.T) {
	now := date(2024, 4, 10)

	buckets := Bucketize(nil, nil, nil, now)

	require.Len(t, buckets, 7)
	assert.Equal(t, "Apr 04", buckets[0].Date)
	assert.Equal(t, "Apr 10", buckets[6].Date)
	for _, b := range buckets {
		assert.Zero(t, b.Created)
		assert.Zero(t, b.Completed)
		assert.Zero(t, b.InProgress)
	}
}

func TestBucketizeCompletedCountsByCompletionDate(t *testing.T) {
	start := date(2024, 3, 1)
	end := date(2024, 3, 3)

	done := task(model.StatusCompleted, date(2024, 3, 1))
	done.CompletedDate = ptr(date(2024, 3, 3))

	buckets := Bucketize([]model.Task{done}, &start, &end, date(2024, 3, 5))

	require.Len(t, buckets, 3)
	assert.Equal(t, 0, buckets[0].Completed)
	assert.Equal(t, 1, buckets[2].Completed)
}

func TestBucketizeInProgressIsCumulative(t *testing.T) {
	start := date(2024, 3, 1)
	end := date(2024, 3, 4)

	inProg := task(model.StatusInProgress, date(2024, 3, 1))
	inProg.StartDate = ptr(date(2024, 3, 2))

	buckets := Bucketize([]model.Task{inProg}, &start, &end, date(2024, 3, 5))

	require.Len(t, buckets, 4)
	assert.Equal(t, 0, buckets[0].InProgress)
	// Started on day two, still counted on every later day.
	assert.Equal(t, 1, buckets[1].InProgress)
	assert.Equal(t, 1, buckets[2].InProgress)
	assert.Equal(t, 1, buckets[3].InProgress)
}
