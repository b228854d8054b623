package memory

import (
	"context"
	"sort"

	"pet-care-tracker/internal/domain/analytics"
	"pet-care-tracker/internal/domain/tasklogs"
	"pet-care-tracker/internal/domain/tasks"
)

type TasksRepo struct {
	s *Store
}

func (r *TasksRepo) withPet(t tasks.Task) tasks.TaskWithPet {
	out := tasks.TaskWithPet{Task: t}
	if p, ok := r.s.pets[t.PetID]; ok {
		out.PetName = p.Name
		out.PetType = string(p.Type)
	}
	return out
}

func (r *TasksRepo) Create(_ context.Context, t tasks.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tasks[t.ID] = t
	return nil
}

func (r *TasksRepo) GetAccessible(_ context.Context, taskID, userID string) (tasks.TaskWithPet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tasks[taskID]
	if !ok || !r.s.readable(t.PetID, userID) {
		return tasks.TaskWithPet{}, tasks.ErrNotFound
	}
	return r.withPet(t), nil
}

func (r *TasksRepo) List(_ context.Context, userID string, f tasks.Filter) ([]tasks.TaskWithPet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []tasks.TaskWithPet
	for _, t := range r.s.tasks {
		if !r.s.readable(t.PetID, userID) {
			continue
		}
		if f.PetID != "" && t.PetID != f.PetID {
			continue
		}
		if f.Date != "" && t.ScheduledTime.UTC().Format("2006-01-02") != f.Date {
			continue
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		if f.Type != "" && string(t.Type) != f.Type {
			continue
		}
		out = append(out, r.withPet(t))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledTime.Before(out[j].ScheduledTime)
	})
	return out, nil
}

func (r *TasksRepo) Update(_ context.Context, t tasks.Task, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.tasks[t.ID]
	if !ok || !r.s.editable(current.PetID, userID) {
		return tasks.ErrNotFound
	}
	t.PetID = current.PetID
	t.CompletedAt = current.CompletedAt
	t.CreatedAt = current.CreatedAt
	r.s.tasks[t.ID] = t
	return nil
}

func (r *TasksRepo) Complete(_ context.Context, taskID, userID string, entry tasklogs.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[taskID]
	if !ok || !r.s.editable(t.PetID, userID) {
		return tasks.ErrNotFound
	}
	if t.CompletedAt != nil {
		return tasks.ErrAlreadyCompleted
	}

	done := entry.CompletedAt
	t.CompletedAt = &done
	t.UpdatedAt = done
	r.s.tasks[taskID] = t

	entry.TaskID = taskID
	entry.PetID = t.PetID
	r.s.logs[entry.ID] = entry
	return nil
}

func (r *TasksRepo) Delete(_ context.Context, taskID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[taskID]
	if !ok || !r.s.editable(t.PetID, userID) {
		return tasks.ErrNotFound
	}

	for id, e := range r.s.logs {
		if e.TaskID == taskID {
			delete(r.s.logs, id)
		}
	}
	delete(r.s.tasks, taskID)
	return nil
}

type TaskLogsRepo struct {
	s *Store
}

func (r *TaskLogsRepo) List(_ context.Context, userID string, f tasklogs.Filter) ([]tasklogs.EntryWithContext, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []tasklogs.EntryWithContext
	for _, e := range r.s.logs {
		if !r.s.readable(e.PetID, userID) {
			continue
		}
		if f.PetID != "" && e.PetID != f.PetID {
			continue
		}
		if f.TaskID != "" && e.TaskID != f.TaskID {
			continue
		}

		item := tasklogs.EntryWithContext{Entry: e}
		if t, ok := r.s.tasks[e.TaskID]; ok {
			item.TaskTitle = t.Title
			item.TaskType = string(t.Type)
		}
		if p, ok := r.s.pets[e.PetID]; ok {
			item.PetName = p.Name
			item.PetType = string(p.Type)
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out, nil
}

type AnalyticsRepo struct {
	s *Store
}

func (r *AnalyticsRepo) TaskStatsByType(_ context.Context, userID string, f analytics.TaskFilter) ([]analytics.TypeStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byType := make(map[string]*analytics.TypeStats)
	for _, t := range r.s.tasks {
		if !r.s.readable(t.PetID, userID) {
			continue
		}
		if f.PetID != "" && t.PetID != f.PetID {
			continue
		}
		day := t.ScheduledTime.UTC().Format("2006-01-02")
		if f.StartDate != "" && day < f.StartDate {
			continue
		}
		if f.EndDate != "" && day > f.EndDate {
			continue
		}

		s, ok := byType[string(t.Type)]
		if !ok {
			s = &analytics.TypeStats{Type: string(t.Type)}
			byType[string(t.Type)] = s
		}
		s.Total++
		if t.CompletedAt != nil {
			s.Completed++
		}
	}

	out := make([]analytics.TypeStats, 0, len(byType))
	for _, s := range byType {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (r *AnalyticsRepo) TaskStatsByPet(_ context.Context, userID, petID string) ([]analytics.PetStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []analytics.PetStats
	for id, p := range r.s.pets {
		if !r.s.readable(id, userID) {
			continue
		}
		if petID != "" && id != petID {
			continue
		}

		s := analytics.PetStats{PetID: id, PetName: p.Name, PetType: string(p.Type)}
		for _, t := range r.s.tasks {
			if t.PetID != id {
				continue
			}
			s.Total++
			if t.CompletedAt != nil {
				s.Completed++
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PetName < out[j].PetName })
	return out, nil
}
