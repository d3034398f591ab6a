package persistence

import "github.com/sandeepkv93/zentask/internal/model"

// DefaultTasks is the sample collection seeded on first start.
func DefaultTasks() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Setup Project", Description: "Initialize the Go module and pick the storage backend.", DueDate: "2024-08-15", Priority: model.PriorityHigh, Status: model.StatusCompleted},
		{ID: "2", Title: "Create Components", Description: "Build the task list, dashboard and edit form.", DueDate: "2024-08-18", Priority: model.PriorityHigh, Status: model.StatusInProgress},
		{ID: "3", Title: "Implement State Management", Description: "Own the collection in one store and persist every change.", DueDate: "2024-08-20", Priority: model.PriorityMedium, Status: model.StatusToDo},
		{ID: "4", Title: "Add Dark Mode", Description: "Implement a toggle for light and dark themes.", DueDate: "2024-08-22", Priority: model.PriorityLow, Status: model.StatusToDo},
	}
}
