package scopeapp

type uiState int

const (
	scopePage uiState = iota     // first page on startup, the radar face and detail panel
	listPage  uiState = iota + 1 // tabular list of all tracked contacts
)
