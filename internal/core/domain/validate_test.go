package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDao(t *testing.T) {
	t.Run("valid dossier passes", func(t *testing.T) {
		require.NoError(t, ValidateDao(testDao()))
	})

	t.Run("objetDossier required", func(t *testing.T) {
		dao := testDao()
		dao.ObjetDossier = "  "
		assert.ErrorIs(t, ValidateDao(dao), ErrValidation)
	})

	t.Run("malformed serial", func(t *testing.T) {
		dao := testDao()
		dao.NumeroListe = "DAO-26-1"
		assert.ErrorIs(t, ValidateDao(dao), ErrValidation)
	})

	t.Run("dateDepot required", func(t *testing.T) {
		dao := testDao()
		dao.DateDepot = Date{}
		assert.ErrorIs(t, ValidateDao(dao), ErrValidation)
	})

	t.Run("duplicate task ids", func(t *testing.T) {
		dao := testDao()
		dao.Tasks = append(dao.Tasks, Task{ID: 1, Name: "Doublon", IsApplicable: true})
		assert.ErrorIs(t, ValidateDao(dao), ErrValidation)
	})

	t.Run("non-positive task id", func(t *testing.T) {
		dao := testDao()
		dao.Tasks[0].ID = 0
		assert.ErrorIs(t, ValidateDao(dao), ErrValidation)
	})

	t.Run("assignment must reference the team", func(t *testing.T) {
		dao := testDao()
		dao.Tasks[0].AssignedTo = "ghost"
		assert.ErrorIs(t, ValidateDao(dao), ErrMemberNotInTeam)
	})
}

func TestValidateTeam(t *testing.T) {
	t.Run("empty team", func(t *testing.T) {
		assert.ErrorIs(t, ValidateTeam(nil), ErrValidation)
	})

	t.Run("needs a chef_equipe", func(t *testing.T) {
		err := ValidateTeam([]TeamMember{
			{ID: "m1", Name: "Awa", Role: TeamRoleMember},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate member ids", func(t *testing.T) {
		err := ValidateTeam([]TeamMember{
			{ID: "m1", Name: "Awa", Role: TeamRoleLead},
			{ID: "m1", Name: "Moussa", Role: TeamRoleMember},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown role", func(t *testing.T) {
		err := ValidateTeam([]TeamMember{
			{ID: "m1", Name: "Awa", Role: TeamRole("stagiaire")},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("valid team", func(t *testing.T) {
		err := ValidateTeam([]TeamMember{
			{ID: "m1", Name: "Awa", Role: TeamRoleLead},
			{ID: "m2", Name: "Moussa", Role: TeamRoleMember},
		})
		assert.NoError(t, err)
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.February, 1), d)

	_, err = ParseDate("01/02/2026")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, ErrNotFound, CategoryOf(ErrDaoNotFound))
	assert.Equal(t, ErrNotFound, CategoryOf(ErrTaskNotFound))
	assert.Equal(t, ErrConflict, CategoryOf(ErrDuplicateSerial))
	assert.Equal(t, ErrInvalidReference, CategoryOf(ErrMemberNotInTeam))
	assert.Equal(t, ErrValidation, CategoryOf(Invalid("x", "bad")))
	assert.Equal(t, ErrForbidden, CategoryOf(ErrNotCommentOwner))
}
