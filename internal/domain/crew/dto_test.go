package crew

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	cases := []struct {
		name, role, status, want string
	}{
		{"Dana", "photographer", "available", "Dana (photographer)"},
		{"Dana", "photographer", "on_leave", "Dana (photographer) [on_leave]"},
		{"Dana", "", "busy", "Dana [busy]"},
		{"Dana", "", "available", "Dana"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Label(tc.name, tc.role, tc.status))
	}
}

func TestOptionFromEntity(t *testing.T) {
	opt := OptionFromEntity(&Crew{
		ID:     7,
		Name:   sql.NullString{String: "Dana", Valid: true},
		Role:   sql.NullString{String: "lead", Valid: true},
		Status: "busy",
	})
	assert.Equal(t, "7", opt.Value)
	assert.Equal(t, "Dana (lead) [busy]", opt.Label)
	if assert.NotNil(t, opt.Role) {
		assert.Equal(t, "lead", *opt.Role)
	}

	unnamed := OptionFromEntity(&Crew{ID: 3, Status: StatusAvailable})
	assert.Equal(t, "Crew #3", unnamed.Label)
	assert.Nil(t, unnamed.Role)
}
