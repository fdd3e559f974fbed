package fallback

// dayBucket partitions the local clock into the four greeting windows.
type dayBucket int

const (
	bucketMorning dayBucket = iota // 05:00-11:59
	bucketAfternoon                // 12:00-16:59
	bucketEvening                  // 17:00-21:59
	bucketNight                    // 22:00-04:59
)

func bucketFor(hour int) dayBucket {
	switch {
	case hour >= 5 && hour < 12:
		return bucketMorning
	case hour >= 12 && hour < 17:
		return bucketAfternoon
	case hour >= 17 && hour < 22:
		return bucketEvening
	default:
		return bucketNight
	}
}

func (in introduction) matches(b dayBucket) bool {
	if len(in.Buckets) == 0 {
		// Untagged templates suit any time of day.
		return true
	}
	for _, have := range in.Buckets {
		if have == b {
			return true
		}
	}
	return false
}
