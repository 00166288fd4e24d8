package services_test

import (
	"testing"

	"github.com/BradenHooton/folio/internal/models"
	"github.com/BradenHooton/folio/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestClassifyThreat(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     models.ThreatKind
	}{
		{"clean credentials", "fasin_admin", "SecurePass2025!", models.ThreatNone},
		{"empty input", "", "", models.ThreatNone},
		{"classic tautology", "admin' OR '1'='1", "x", models.ThreatSQLInjection},
		{"quote in password", "fasin_admin", "it's", models.ThreatSQLInjection},
		{"lowercase union select", "x", "1 union select *", models.ThreatSQLInjection},
		{"comment marker", "admin--", "x", models.ThreatSQLInjection},
		{"statement separator", "x", "a;b", models.ThreatSQLInjection},
		{"drop keyword mixed case", "DrOp", "x", models.ThreatSQLInjection},
		{"keyword inside word", "editor", "x", models.ThreatSQLInjection},
		{"admin/admin", "admin", "admin", models.ThreatBasicAttack},
		{"admin/1", "admin", "1", models.ThreatBasicAttack},
		{"root/root", "root", "root", models.ThreatBasicAttack},
		{"1/1", "1", "1", models.ThreatBasicAttack},
		{"basic pairs are exact", "Admin", "admin", models.ThreatNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.ClassifyThreat(tt.username, tt.password)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != models.ThreatNone, got.Suspicious())
		})
	}
}

func TestClassifyThreat_NeverPanics(t *testing.T) {
	inputs := []string{"", "\x00", "\xff\xfe", "🙂", string(make([]byte, 4096))}
	for _, u := range inputs {
		for _, p := range inputs {
			assert.NotPanics(t, func() { services.ClassifyThreat(u, p) })
		}
	}
}
