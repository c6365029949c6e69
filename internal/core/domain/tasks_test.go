package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDao() *Dao {
	created := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)
	return &Dao{
		ID:                   "dao-1",
		NumeroListe:          "DAO-2026-001",
		ObjetDossier:         "Fourniture de matériel informatique",
		AutoriteContractante: "Ministère des Finances",
		DateDepot:            NewDate(2026, time.February, 1),
		Equipe: []TeamMember{
			{ID: "m1", Name: "Awa Diallo", Role: TeamRoleLead},
			{ID: "m2", Name: "Moussa Traoré", Role: TeamRoleMember},
		},
		Tasks: []Task{
			{ID: 1, Name: "Préparation du dossier", IsApplicable: true, Progress: pct(50)},
			{ID: 2, Name: "Analyse des offres", IsApplicable: true},
			{ID: 3, Name: "Visite de site", IsApplicable: false},
		},
		TaskSeq:   3,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestAddTask(t *testing.T) {
	now := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

	t.Run("id is max plus one", func(t *testing.T) {
		dao := testDao()
		out, err := AddTask(dao, TaskDraft{Name: "Tâche spéciale", IsApplicable: true}, "user-1", now)
		require.NoError(t, err)

		added := out.Tasks[len(out.Tasks)-1]
		assert.Equal(t, 4, added.ID)
		assert.Equal(t, "Tâche spéciale", added.Name)
		assert.Equal(t, "user-1", added.LastUpdatedBy)
		assert.Equal(t, now, out.UpdatedAt)
		// input untouched
		assert.Len(t, dao.Tasks, 3)
	})

	t.Run("deleted ids are not reused", func(t *testing.T) {
		dao := testDao()
		afterDelete, err := DeleteTask(dao, 3, now)
		require.NoError(t, err)

		out, err := AddTask(afterDelete, TaskDraft{Name: "Nouvelle tâche", IsApplicable: true}, "user-1", now)
		require.NoError(t, err)
		assert.Equal(t, 4, out.Tasks[len(out.Tasks)-1].ID)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := AddTask(testDao(), TaskDraft{Name: "   "}, "user-1", now)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown assignee rejected", func(t *testing.T) {
		_, err := AddTask(testDao(), TaskDraft{Name: "Tâche", AssignedTo: "ghost"}, "user-1", now)
		assert.ErrorIs(t, err, ErrMemberNotInTeam)
	})

	t.Run("progress out of range rejected", func(t *testing.T) {
		_, err := AddTask(testDao(), TaskDraft{Name: "Tâche", IsApplicable: true, Progress: pct(120)}, "user-1", now)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUpdateTask(t *testing.T) {
	now := time.Date(2026, time.January, 12, 14, 0, 0, 0, time.UTC)

	t.Run("absent fields untouched", func(t *testing.T) {
		dao := testDao()
		out, err := UpdateTask(dao, 1, TaskPatch{Progress: Some(80)}, "user-1", now)
		require.NoError(t, err)

		task := out.FindTask(1)
		assert.Equal(t, 80, *task.Progress)
		assert.Equal(t, "Préparation du dossier", task.Name)
		assert.True(t, task.IsApplicable)
	})

	t.Run("explicit null clears progress", func(t *testing.T) {
		out, err := UpdateTask(testDao(), 1, TaskPatch{Progress: Null[int]()}, "user-1", now)
		require.NoError(t, err)
		assert.Nil(t, out.FindTask(1).Progress)
	})

	t.Run("turning not applicable drops progress", func(t *testing.T) {
		out, err := UpdateTask(testDao(), 1, TaskPatch{IsApplicable: Some(false)}, "user-1", now)
		require.NoError(t, err)

		task := out.FindTask(1)
		assert.False(t, task.IsApplicable)
		assert.Nil(t, task.Progress)
	})

	t.Run("progress is clamped", func(t *testing.T) {
		out, err := UpdateTask(testDao(), 2, TaskPatch{Progress: Some(150)}, "user-1", now)
		require.NoError(t, err)
		assert.Equal(t, 100, *out.FindTask(2).Progress)
	})

	t.Run("no-op patch still stamps audit fields", func(t *testing.T) {
		dao := testDao()
		out, err := UpdateTask(dao, 1, TaskPatch{}, "user-2", now)
		require.NoError(t, err)

		task := out.FindTask(1)
		assert.Equal(t, "user-2", task.LastUpdatedBy)
		require.NotNil(t, task.LastUpdatedAt)
		assert.Equal(t, now, *task.LastUpdatedAt)
		assert.Equal(t, now, out.UpdatedAt)
	})

	t.Run("unknown task leaves input unchanged", func(t *testing.T) {
		dao := testDao()
		before := dao.UpdatedAt

		_, err := UpdateTask(dao, 99, TaskPatch{Progress: Some(10)}, "user-1", now)
		assert.ErrorIs(t, err, ErrTaskNotFound)
		assert.Equal(t, before, dao.UpdatedAt)
	})

	t.Run("unknown assignee rejected before any change", func(t *testing.T) {
		dao := testDao()
		_, err := UpdateTask(dao, 1, TaskPatch{AssignedTo: Some("ghost")}, "user-1", now)
		assert.ErrorIs(t, err, ErrMemberNotInTeam)
		assert.Equal(t, 50, *dao.FindTask(1).Progress)
	})

	t.Run("name cannot be cleared", func(t *testing.T) {
		_, err := UpdateTask(testDao(), 1, TaskPatch{Name: Null[string]()}, "user-1", now)
		assert.ErrorIs(t, err, ErrValidation)

		_, err = UpdateTask(testDao(), 1, TaskPatch{Name: Some("  ")}, "user-1", now)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDeleteTask(t *testing.T) {
	now := time.Date(2026, time.January, 12, 14, 0, 0, 0, time.UTC)

	t.Run("removes without renumbering", func(t *testing.T) {
		out, err := DeleteTask(testDao(), 2, now)
		require.NoError(t, err)

		require.Len(t, out.Tasks, 2)
		assert.Equal(t, 1, out.Tasks[0].ID)
		assert.Equal(t, 3, out.Tasks[1].ID)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := DeleteTask(testDao(), 42, now)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestAssignTask(t *testing.T) {
	now := time.Date(2026, time.January, 15, 11, 0, 0, 0, time.UTC)

	t.Run("assign and unassign", func(t *testing.T) {
		out, err := AssignTask(testDao(), 1, "m2", "user-1", now)
		require.NoError(t, err)
		assert.Equal(t, "m2", out.FindTask(1).AssignedTo)

		out, err = UnassignTask(out, 1, "user-1", now)
		require.NoError(t, err)
		assert.Empty(t, out.FindTask(1).AssignedTo)
	})

	t.Run("member must belong to the team", func(t *testing.T) {
		_, err := AssignTask(testDao(), 1, "ghost", "user-1", now)
		assert.ErrorIs(t, err, ErrMemberNotInTeam)
	})

	t.Run("empty member id rejected", func(t *testing.T) {
		_, err := AssignTask(testDao(), 1, "", "user-1", now)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestTaskPatchJSON(t *testing.T) {
	t.Run("absent vs null vs value", func(t *testing.T) {
		var patch TaskPatch
		require.NoError(t, json.Unmarshal([]byte(`{"progress": null, "comment": "ok"}`), &patch))

		assert.False(t, patch.Name.Present)
		assert.True(t, patch.Progress.Present)
		assert.False(t, patch.Progress.Valid)
		assert.True(t, patch.Comment.Present)
		assert.True(t, patch.Comment.Valid)
		assert.Equal(t, "ok", patch.Comment.Value)
	})

	t.Run("empty document is an empty patch", func(t *testing.T) {
		var patch TaskPatch
		require.NoError(t, json.Unmarshal([]byte(`{}`), &patch))
		assert.True(t, patch.IsEmpty())
	})

	t.Run("value fields", func(t *testing.T) {
		var patch TaskPatch
		require.NoError(t, json.Unmarshal([]byte(`{"progress": 75, "isApplicable": true}`), &patch))

		assert.True(t, patch.Progress.Valid)
		assert.Equal(t, 75, patch.Progress.Value)
		assert.True(t, patch.IsApplicable.Valid)
		assert.True(t, patch.IsApplicable.Value)
	})
}
