package domain

// GroupBy partitions items by key. Items sharing a key keep their input order.
func GroupBy[T any, K comparable](items []T, key func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}

// GroupByStation buckets observations by station identifier.
func GroupByStation(observations []Observation) map[string][]Observation {
	return GroupBy(observations, func(o Observation) string { return o.StationID })
}

// SelectMostRecent returns the observation with the greatest observation time.
// Timestamps compare as strings; on a tie the later element wins.
func SelectMostRecent(group []Observation) (Observation, bool) {
	if len(group) == 0 {
		return Observation{}, false
	}
	latest := group[0]
	for _, o := range group[1:] {
		if o.ObservationTime >= latest.ObservationTime {
			latest = o
		}
	}
	return latest, true
}
