// Package feed keeps a cached snapshot of job listings scraped from external
// boards and tells subscribers when it changes. It never touches the
// relational store.
package feed

import "time"

type Listing struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	Source   string `json:"source"`
}

type Snapshot struct {
	Listings    []Listing `json:"listings"`
	RefreshedAt time.Time `json:"refreshed_at"`
}
