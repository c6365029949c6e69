package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// maxSerialPerYear is the hard capacity of the 3-digit sequence.
const maxSerialPerYear = 999

// NumeroListePattern matches a well-formed dossier serial for any year.
var NumeroListePattern = regexp.MustCompile(`^DAO-(\d{4})-(\d{3})$`)

// NextDaoNumber returns the next serial for the given year:
// DAO-<year>-001 when no serial of that year exists, otherwise
// DAO-<year>-<max+1> zero-padded to 3 digits. Serials from other
// years are ignored. Returns ErrSerialExhausted past 999.
func NextDaoNumber(existing []string, year int) (string, error) {
	re := regexp.MustCompile(fmt.Sprintf(`^DAO-%04d-(\d{3})$`, year))

	max := 0
	for _, numero := range existing {
		m := re.FindStringSubmatch(numero)
		if m == nil {
			continue
		}
		seq, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}

	if max >= maxSerialPerYear {
		return "", ErrSerialExhausted
	}
	return fmt.Sprintf("DAO-%04d-%03d", year, max+1), nil
}

// ValidNumeroListe reports whether a caller-supplied serial is
// well-formed.
func ValidNumeroListe(numero string) bool {
	return NumeroListePattern.MatchString(numero)
}
