package slime

import "time"

// statsWindow is the number of rebuilds averaged by Stats.
const statsWindow = 30

// Stats summarizes skin rebuild timings.
type Stats struct {
	Rebuilds int           `json:"rebuilds"`
	Last     time.Duration `json:"last"`
	Average  time.Duration `json:"average"` // over the last statsWindow rebuilds
}

type stats struct {
	samples [statsWindow]time.Duration
	next    int
	count   int
	last    time.Duration
}

func (s *stats) record(d time.Duration) {
	s.samples[s.next] = d
	s.next = (s.next + 1) % statsWindow
	s.count++
	s.last = d
}

func (s *stats) snapshot() Stats {
	out := Stats{Rebuilds: s.count, Last: s.last}
	n := min(s.count, statsWindow)
	if n == 0 {
		return out
	}
	var sum time.Duration
	for i := 0; i < n; i++ {
		sum += s.samples[i]
	}
	out.Average = sum / time.Duration(n)
	return out
}
