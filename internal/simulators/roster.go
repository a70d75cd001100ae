package simulators

import (
	"fmt"
	"math/rand/v2"

	"rx-analytics/internal/aggregators"
)

// Employee is one simulated decoder on the floor.
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Channel  string `json:"channel"`
	State    string `json:"state"`
	City     string `json:"city"`
	StoreID  string `json:"storeId"`
	Client   string `json:"client"`
}

var (
	firstNames = []string{"Priya", "Arjun", "Meera", "Kiran", "Divya", "Rahul", "Sneha", "Vikram", "Anjali", "Suresh", "Lakshmi", "Rohan"}
	lastNames  = []string{"Raman", "Rao", "Nair", "Kumar", "Reddy", "Iyer", "Sharma", "Menon", "Pillai", "Das"}
	clients    = []string{"Chrome", "Firefox", "Edge", "Safari"}

	// geography lists states with their cities in a fixed order so rosters are reproducible.
	geography = []struct {
		state  string
		cities []string
	}{
		{state: "Telangana", cities: []string{"Hyderabad", "Warangal", "Karimnagar"}},
		{state: "Karnataka", cities: []string{"Bengaluru", "Mysuru"}},
		{state: "Tamil Nadu", cities: []string{"Chennai", "Coimbatore"}},
		{state: "Maharashtra", cities: []string{"Mumbai", "Pune"}},
		{state: "Kerala", cities: []string{"Kochi"}},
	}
)

// NewRoster draws n employees from rng.
func NewRoster(rng *rand.Rand, n int) []Employee {
	roster := make([]Employee, 0, n)
	for i := 0; i < n; i++ {
		geo := geography[rng.IntN(len(geography))]
		city := geo.cities[rng.IntN(len(geo.cities))]

		location := aggregators.LocationInHouse
		if rng.IntN(3) == 0 {
			location = aggregators.LocationWFH
		}
		channel := aggregators.ChannelNormal
		if rng.IntN(4) == 0 {
			channel = aggregators.ChannelGreen
		}

		roster = append(roster, Employee{
			ID:       fmt.Sprintf("EMP-%03d", i+1),
			Name:     firstNames[rng.IntN(len(firstNames))] + " " + lastNames[rng.IntN(len(lastNames))],
			Location: location,
			Channel:  channel,
			State:    geo.state,
			City:     city,
			StoreID:  fmt.Sprintf("ST-%s-%02d", city[:3], rng.IntN(20)+1),
			Client:   clients[rng.IntN(len(clients))],
		})
	}
	return roster
}
