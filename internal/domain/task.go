package domain

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Completed   bool   `json:"completed" db:"completed"`
	UserID      int64  `json:"user_id" db:"user_id"`
}

// NewTask carries the caller-supplied fields for create and update.
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
