package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, User: "hms", Password: "pw", DBName: "hms", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=hms password=pw dbname=hms sslmode=disable", cfg.DSN())
}

func TestModelsCoverEveryTable(t *testing.T) {
	tables := map[string]bool{}
	for _, m := range Models() {
		if tn, ok := m.(interface{ TableName() string }); ok {
			tables[tn.TableName()] = true
		}
	}
	for _, want := range []string{
		"patients", "staff", "appointments", "invoices", "inventory_items", "lab_tests",
		"prescriptions", "surgeries", "wards", "rooms", "patient_care", "reports",
		"external_integrations",
		"permissions", "groups", "users", "audit_logs",
	} {
		assert.True(t, tables[want], want)
	}
}
