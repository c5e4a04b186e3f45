package models

import "time"

// EndpointHit is one recorded view of a public endpoint, ingested from the
// stats exchange by the hit consumer.
type EndpointHit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	App       string    `gorm:"not null" json:"app"`
	URI       string    `gorm:"not null;index" json:"uri"`
	IP        string    `gorm:"not null" json:"ip"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

// ViewStats is an aggregated hit count per (app, uri).
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}
