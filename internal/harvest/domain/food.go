package domain

// FoodItem is one entry on the public party menu.
type FoodItem struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// NowPlayingInfo is the guest-facing view of the current song.
type NowPlayingInfo struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Message string `json:"message"`
}
