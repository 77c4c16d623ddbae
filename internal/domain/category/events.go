package category

import "time"

const (
	EventCategoryCreated = "CategoryCreated"
	EventCategoryUpdated = "CategoryUpdated"
	EventCategoryDeleted = "CategoryDeleted"
)

// CategoryChanged is published after a category is created or updated.
type CategoryChanged struct {
	CategoryID string    `json:"categoryId"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	ChangedAt  time.Time `json:"changedAt"`
}

// CategoryDeleted is published after a category is removed
type CategoryDeleted struct {
	CategoryID string    `json:"categoryId"`
	DeletedAt  time.Time `json:"deletedAt"`
}
