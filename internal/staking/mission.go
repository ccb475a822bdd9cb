package staking

// Mission is a reward-active window opened by the engine owner.
type Mission struct {
	ID              uint64
	StartTime       int64
	DurationSeconds int64
}

func (m Mission) EndTime() int64 {
	return m.StartTime + m.DurationSeconds
}

// IsActive reports whether now falls inside the mission's own window,
// ignoring any successor.
func (m Mission) IsActive(now int64) bool {
	return now >= m.StartTime && now < m.EndTime()
}

// effectiveEnd clips mission i at the start of its successor: a new mission
// supersedes the previous one, so reward-active windows never overlap.
func effectiveEnd(missions []Mission, i int) int64 {
	end := missions[i].EndTime()
	if i+1 < len(missions) && missions[i+1].StartTime < end {
		end = missions[i+1].StartTime
	}
	return end
}

// OverlapSeconds is the length of the intersection of [from, to] with the
// union of the missions' effective windows. missions must be ordered by
// StartTime, which is how the engine appends them.
func OverlapSeconds(missions []Mission, from, to int64) int64 {
	if to <= from {
		return 0
	}

	var total int64
	for i, m := range missions {
		if m.StartTime >= to {
			break
		}
		lo := max(m.StartTime, from)
		hi := min(effectiveEnd(missions, i), to)
		if hi > lo {
			total += hi - lo
		}
	}
	return total
}
