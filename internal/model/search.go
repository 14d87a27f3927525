package model

// UserSearchResult is one user hit of the dashboard search.
type UserSearchResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// CommunitySearchResult is one community hit of the dashboard search.
type CommunitySearchResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount,omitempty"`
}

// SearchResults groups the two result sections of the dashboard search.
type SearchResults struct {
	Users       []UserSearchResult      `json:"users"`
	Communities []CommunitySearchResult `json:"communities"`
}
