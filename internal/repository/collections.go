package repository

// Collection names as stored in the document store.
const (
	ChildCollection    = "child"
	ActivityCollection = "activity"
	ProgressCollection = "progress"
	BadgeCollection    = "badge"
)
