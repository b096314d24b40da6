package handler

import "archipelago/internal/island"

type SummaryResponse struct {
	Islands  int           `json:"islands"`
	Status   island.Status `json:"status"`
	Topology string        `json:"topology"`
	Migrants []int         `json:"migrants"`
	Dump     string        `json:"dump"`
}

type StatusResponse struct {
	Status island.Status `json:"status"`
}

type WaitResponse struct {
	Status     island.Status `json:"status"`
	Fault      string        `json:"fault,omitempty"`
	DurationMS int64         `json:"duration_ms"`
}

type ChampionsResponse struct {
	F [][]float64 `json:"f"`
	X [][]float64 `json:"x"`
}

type MigrantSlot struct {
	Ordinal int      `json:"ordinal"`
	Count   int      `json:"count"`
	IDs     []uint64 `json:"ids"`
}

type IslandResponse struct {
	Ordinal        int           `json:"ordinal"`
	ID             string        `json:"id"`
	Status         island.Status `json:"status"`
	Fault          string        `json:"fault,omitempty"`
	Algorithm      string        `json:"algorithm"`
	Problem        string        `json:"problem"`
	PopulationSize int           `json:"population_size"`
	MigrationRate  int           `json:"migration_rate"`
	ChampionX      []float64     `json:"champion_x,omitempty"`
	ChampionF      []float64     `json:"champion_f,omitempty"`
}

type ConnectionsResponse struct {
	Ordinal int       `json:"ordinal"`
	Sources []int     `json:"sources"`
	Weights []float64 `json:"weights"`
}

type SnapshotListResponse struct {
	Keys []string `json:"keys"`
}
