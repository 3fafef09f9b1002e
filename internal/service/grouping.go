package service

import "github.com/sakif/fyyur/internal/model"

// GroupByCity folds venues, already ordered by (city, state), into index
// blocks.
//
// A block ends only when the city changes. Two adjacent rows with the same
// city and different states share one block, which takes the state of its
// first row. Non-adjacent rows with the same city are not merged.
func GroupByCity(venues []model.LocatedVenue) []model.CityGroup {
	groups := []model.CityGroup{}
	for _, v := range venues {
		if n := len(groups); n == 0 || groups[n-1].City != v.City {
			groups = append(groups, model.CityGroup{
				City:   v.City,
				State:  v.State,
				Venues: []model.EntitySummary{},
			})
		}
		last := &groups[len(groups)-1]
		last.Venues = append(last.Venues, v.EntitySummary)
	}
	return groups
}
