package crossing

import "github.com/auroralab/auroral-backend-go/internal/models"

// CleanEvents filters a time-sorted episode before storage. Consecutive
// events of the same kind collapse to one, and runs of events flapping within
// gapSeconds of each other debounce down to their settling point: the scan
// keeps extending the window while at least two more events fall inside it,
// then keeps the last event of the run. A lone follower within the window
// takes over the current event's kind at the follower's time.
func CleanEvents(episode models.CrossingEpisode, gapSeconds float64) models.CrossingEpisode {
	if len(episode) == 0 {
		return nil
	}

	// First pass: drop repeats of the previous kind, keeping the first.
	dedup := make(models.CrossingEpisode, 0, len(episode))
	for i, e := range episode {
		if i == 0 || e.Kind != episode[i-1].Kind {
			dedup = append(dedup, e)
		}
	}

	var cleaned models.CrossingEpisode
	i := 0
	for i < len(dedup) {
		cur := dedup[i]

		j := i + 1
		for j < len(dedup) && dedup[j].Time <= cur.Time+gapSeconds {
			j++
		}

		switch future := j - (i + 1); {
		case future == 1:
			cleaned = append(cleaned, models.CrossingEvent{Time: dedup[j-1].Time, Kind: cur.Kind})
			i = j
		case future >= 2:
			k := j - 1
			lookTime := dedup[k].Time
			for k < len(dedup) {
				m := k + 1
				count := 0
				for m < len(dedup) && dedup[m].Time <= lookTime+gapSeconds {
					count++
					m++
				}

				if count >= 2 {
					lookTime = dedup[m-1].Time
					k = m
					i = m
					if m >= len(dedup) {
						cleaned = append(cleaned, dedup[m-1])
					}
				} else {
					cleaned = append(cleaned, dedup[m-1])
					i = m
					break
				}
			}
		default:
			cleaned = append(cleaned, cur)
			i++
		}
	}

	// Second pass: drop repeats of the next kind, keeping the last.
	var out models.CrossingEpisode
	for idx, e := range cleaned {
		if idx == len(cleaned)-1 || e.Kind != cleaned[idx+1].Kind {
			out = append(out, e)
		}
	}
	return out
}
