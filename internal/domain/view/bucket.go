package view

import "time"

// bucketOf maps a timestamp to its calendar-position bucket so the same
// point in different years lands in the same bucket.
func bucketOf(t time.Time, b Bucket) int {
	switch b {
	case BucketWeek:
		return (t.YearDay()-1)/7 + 1
	case BucketMonth:
		return int(t.Month())
	default:
		return t.YearDay()
	}
}

// BucketCount reports the number of buckets a full year spans at the given
// granularity, used by renderers to scale the x axis.
func BucketCount(b Bucket) int {
	switch b {
	case BucketWeek:
		return 53
	case BucketMonth:
		return 12
	default:
		return 366
	}
}
