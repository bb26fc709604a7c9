package db

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db.local", Port: 3306, Username: "presence", Password: "secret", DBName: "presence"}
	dsn := c.DSN()

	for _, want := range []string{"presence:secret@tcp(db.local:3306)/presence", "parseTime=true", "timeout=3s"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q does not contain %q", dsn, want)
		}
	}
}
