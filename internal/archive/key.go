package archive

import (
	"sort"
	"strings"
)

const (
	disambiguatorSep = ";"
	participantSep   = "/"
	markerPrefixes   = "#$"

	// KeySep joins participants of a canonical key. Skype ids never contain it.
	KeySep = "|"
)

// CanonicalKey maps a raw conversation id such as "#alice/$bob;a1b2" to a key
// that is the same for every ordering of participants and every disambiguator.
func CanonicalKey(rawID string) string {
	id, _, _ := strings.Cut(rawID, disambiguatorSep)

	var participants []string
	for _, p := range strings.Split(id, participantSep) {
		p = strings.TrimLeft(strings.TrimSpace(p), markerPrefixes)
		if p != "" {
			participants = append(participants, p)
		}
	}
	if len(participants) == 0 {
		return strings.TrimSpace(id)
	}

	sort.Strings(participants)
	return strings.Join(participants, KeySep)
}

// Participants splits a canonical key back into participant ids.
func Participants(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, KeySep)
}
