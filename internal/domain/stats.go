package domain

// Stats aggregates row counts by validation status.
type Stats struct {
	Total   int
	Valid   int
	Invalid int
	Warning int
}
