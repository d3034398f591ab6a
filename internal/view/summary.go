package view

import "github.com/sandeepkv93/zentask/internal/model"

type Summary struct {
	Total              int
	Completed          int
	ProgressPercentage float64
}

// Summarize reduces the full, unfiltered collection.
func Summarize(tasks []model.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, task := range tasks {
		if task.Status == model.StatusCompleted {
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.ProgressPercentage = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}

func CountByStatus(tasks []model.Task) map[model.Status]int {
	out := make(map[model.Status]int, len(model.Statuses))
	for _, status := range model.Statuses {
		out[status] = 0
	}
	for _, task := range tasks {
		out[task.Status]++
	}
	return out
}
