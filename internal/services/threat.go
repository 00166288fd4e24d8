package services

import (
	"strings"

	"github.com/BradenHooton/folio/internal/models"
)

// sqlProbeMarkers are matched case-insensitively as plain substrings, so
// "or" and "and" also hit ordinary words.
var sqlProbeMarkers = []string{"'", "or", "and", "union", "select", "drop", "insert", "delete", "--", ";"}

// lowEffortCredentials are exact username/password pairs tried by scripts
var lowEffortCredentials = [][2]string{
	{"admin", "1"},
	{"admin", "admin"},
	{"root", "root"},
	{"1", "1"},
}

// ClassifyThreat inspects untrusted login input for probe signals.
// It is pure and total; the result only weighs the failure penalty and never
// changes whether the credentials match.
func ClassifyThreat(username, password string) models.ThreatKind {
	u := strings.ToLower(username)
	p := strings.ToLower(password)
	for _, marker := range sqlProbeMarkers {
		if strings.Contains(u, marker) || strings.Contains(p, marker) {
			return models.ThreatSQLInjection
		}
	}

	for _, pair := range lowEffortCredentials {
		if username == pair[0] && password == pair[1] {
			return models.ThreatBasicAttack
		}
	}

	return models.ThreatNone
}
