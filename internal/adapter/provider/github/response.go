package github

// searchResponse mirrors the GitHub commit search payload.
// Only the fields we consume are declared.
type searchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []searchItem `json:"items"`
}

type searchItem struct {
	SHA        string         `json:"sha"`
	Commit     itemCommit     `json:"commit"`
	Repository itemRepository `json:"repository"`
}

type itemCommit struct {
	Author itemAuthor `json:"author"`
}

type itemAuthor struct {
	Date string `json:"date"`
}

type itemRepository struct {
	FullName string `json:"full_name"`
}
