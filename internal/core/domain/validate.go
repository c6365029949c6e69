package domain

import "strings"

// ValidateDao checks the structural invariants of a dossier before it
// is persisted: required metadata, a well-formed serial, at least one
// chef_equipe, unique member IDs and unique task IDs.
func ValidateDao(dao *Dao) error {
	if strings.TrimSpace(dao.ObjetDossier) == "" {
		return Invalid("objetDossier", "is required")
	}
	if !ValidNumeroListe(dao.NumeroListe) {
		return Invalid("numeroListe", "must match DAO-<year>-<3-digit-seq>")
	}
	if dao.DateDepot.IsZero() {
		return Invalid("dateDepot", "is required")
	}
	if err := ValidateTeam(dao.Equipe); err != nil {
		return err
	}

	seen := make(map[int]bool, len(dao.Tasks))
	for _, t := range dao.Tasks {
		if t.ID <= 0 {
			return Invalid("tasks", "task ids must be positive")
		}
		if seen[t.ID] {
			return Invalid("tasks", "task ids must be unique within the dossier")
		}
		seen[t.ID] = true
		if t.AssignedTo != "" && !hasMemberID(dao.Equipe, t.AssignedTo) {
			return ErrMemberNotInTeam
		}
	}
	return nil
}

// ValidateTeam checks the team invariants: non-empty, unique member
// IDs, valid roles, and at least one chef_equipe.
func ValidateTeam(equipe []TeamMember) error {
	if len(equipe) == 0 {
		return Invalid("equipe", "a dossier needs at least one team member")
	}

	hasLead := false
	ids := make(map[string]bool, len(equipe))
	for _, m := range equipe {
		if strings.TrimSpace(m.ID) == "" {
			return Invalid("equipe", "team member id is required")
		}
		if ids[m.ID] {
			return Invalid("equipe", "team member ids must be unique")
		}
		ids[m.ID] = true
		if strings.TrimSpace(m.Name) == "" {
			return Invalid("equipe", "team member name is required")
		}
		if !m.Role.Valid() {
			return Invalid("equipe", "team member role must be chef_equipe or membre_equipe")
		}
		if m.Role == TeamRoleLead {
			hasLead = true
		}
	}
	if !hasLead {
		return Invalid("equipe", "a dossier needs at least one chef_equipe")
	}
	return nil
}

func hasMemberID(equipe []TeamMember, id string) bool {
	for _, m := range equipe {
		if m.ID == id {
			return true
		}
	}
	return false
}
