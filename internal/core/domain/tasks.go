package domain

import (
	"strings"
	"time"
)

// TaskDraft is the input for adding a task to a dossier.
type TaskDraft struct {
	Name         string `json:"name"`
	IsApplicable bool   `json:"isApplicable"`
	Progress     *int   `json:"progress"`
	Comment      string `json:"comment"`
	AssignedTo   string `json:"assignedTo"`
}

// TaskPatch is a partial update of a task. Absent fields are left
// untouched; an explicit null clears progress or the assignment.
type TaskPatch struct {
	Name         Optional[string] `json:"name"`
	IsApplicable Optional[bool]   `json:"isApplicable"`
	Progress     Optional[int]    `json:"progress"`
	Comment      Optional[string] `json:"comment"`
	AssignedTo   Optional[string] `json:"assignedTo"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p TaskPatch) IsEmpty() bool {
	return !p.Name.Present && !p.IsApplicable.Present && !p.Progress.Present &&
		!p.Comment.Present && !p.AssignedTo.Present
}

// AddTask appends a new task to the dossier with id max(existing)+1.
// The returned dossier is a copy; the input is never mutated.
func AddTask(dao *Dao, draft TaskDraft, actorID string, now time.Time) (*Dao, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, Invalid("name", "task name is required")
	}
	if draft.AssignedTo != "" && !dao.HasMember(draft.AssignedTo) {
		return nil, ErrMemberNotInTeam
	}

	var progress *int
	if draft.IsApplicable && draft.Progress != nil {
		if *draft.Progress < 0 || *draft.Progress > 100 {
			return nil, Invalid("progress", "must be between 0 and 100")
		}
		p := *draft.Progress
		progress = &p
	}

	out := dao.Clone()
	task := Task{
		ID:            nextTaskID(out),
		Name:          strings.TrimSpace(draft.Name),
		IsApplicable:  draft.IsApplicable,
		Progress:      progress,
		Comment:       draft.Comment,
		AssignedTo:    draft.AssignedTo,
		LastUpdatedBy: actorID,
		LastUpdatedAt: &now,
	}
	out.Tasks = append(out.Tasks, task)
	out.TaskSeq = task.ID
	out.UpdatedAt = now
	return out, nil
}

// UpdateTask applies a partial update to a task. Audit stamps are
// refreshed even when the patch is a content no-op.
func UpdateTask(dao *Dao, taskID int, patch TaskPatch, actorID string, now time.Time) (*Dao, error) {
	if dao.FindTask(taskID) == nil {
		return nil, ErrTaskNotFound
	}
	if patch.AssignedTo.Present && patch.AssignedTo.Valid && patch.AssignedTo.Value != "" {
		if !dao.HasMember(patch.AssignedTo.Value) {
			return nil, ErrMemberNotInTeam
		}
	}
	if patch.Name.Present {
		if !patch.Name.Valid || strings.TrimSpace(patch.Name.Value) == "" {
			return nil, Invalid("name", "task name cannot be empty")
		}
	}

	out := dao.Clone()
	task := out.FindTask(taskID)

	if patch.Name.Present {
		task.Name = strings.TrimSpace(patch.Name.Value)
	}
	if patch.IsApplicable.Present {
		task.IsApplicable = patch.IsApplicable.Valid && patch.IsApplicable.Value
	}
	if patch.Progress.Present {
		if patch.Progress.Valid {
			task.Progress = intPtr(clampProgress(patch.Progress.Value))
		} else {
			task.Progress = nil
		}
	}
	// Turning a task not-applicable discards its progress.
	if !task.IsApplicable {
		task.Progress = nil
	}
	if patch.Comment.Present {
		if patch.Comment.Valid {
			task.Comment = patch.Comment.Value
		} else {
			task.Comment = ""
		}
	}
	if patch.AssignedTo.Present {
		if patch.AssignedTo.Valid {
			task.AssignedTo = patch.AssignedTo.Value
		} else {
			task.AssignedTo = ""
		}
	}

	task.LastUpdatedBy = actorID
	task.LastUpdatedAt = &now
	out.UpdatedAt = now
	return out, nil
}

// DeleteTask removes a task. Remaining task IDs are not renumbered,
// so IDs stay non-contiguous after deletions.
func DeleteTask(dao *Dao, taskID int, now time.Time) (*Dao, error) {
	if dao.FindTask(taskID) == nil {
		return nil, ErrTaskNotFound
	}
	out := dao.Clone()
	tasks := out.Tasks[:0]
	for _, t := range out.Tasks {
		if t.ID != taskID {
			tasks = append(tasks, t)
		}
	}
	out.Tasks = tasks
	out.UpdatedAt = now
	return out, nil
}

// AssignTask assigns a task to a team member.
func AssignTask(dao *Dao, taskID int, memberID, actorID string, now time.Time) (*Dao, error) {
	if memberID == "" {
		return nil, Invalid("assignedTo", "team member id is required")
	}
	return UpdateTask(dao, taskID, TaskPatch{AssignedTo: Some(memberID)}, actorID, now)
}

// UnassignTask clears a task's assignment.
func UnassignTask(dao *Dao, taskID int, actorID string, now time.Time) (*Dao, error) {
	return UpdateTask(dao, taskID, TaskPatch{AssignedTo: Null[string]()}, actorID, now)
}

// nextTaskID returns max(existing ids)+1, starting at 1. The high-water
// mark keeps deleted ids out of circulation: after deleting id 3 from
// {1,2,3} the next id is 4, not 3.
func nextTaskID(dao *Dao) int {
	max := dao.TaskSeq
	for _, t := range dao.Tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

func intPtr(v int) *int {
	return &v
}
