package model

// Place is an enriched local-business record built from one provider result.
// Scoring fields (BusinessScore, DensityScore, MeanNeighborDistance,
// UptimePercent) are filled in a single annotation pass at construction time;
// a Place is never mutated afterwards.
type Place struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Latitude      float64 `json:"lat"`
	Longitude     float64 `json:"lng"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"review_count"`
	Phone         string  `json:"phone,omitempty"`
	WebsiteURL    string  `json:"website_url,omitempty"`
	Types         string  `json:"types,omitempty"` // comma-separated provider types
	OpenHoursText string  `json:"open_hours_text,omitempty"`

	BusinessScore        float64 `json:"business_score"`
	DensityScore         float64 `json:"density_score"`
	MeanNeighborDistance float64 `json:"mean_neighbor_distance"`
	HasNeighbors         bool    `json:"has_neighbors"`
	UptimePercent        float64 `json:"uptime_percent"`

	// IsUserMatch marks the place whose name closely matches the business
	// name the user searched for.
	IsUserMatch bool `json:"is_user_match,omitempty"`
}
