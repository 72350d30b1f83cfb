package handlers

import (
	"testing"

	"github.com/WildHonestFur/Quantix-Arena/internal/models"
)

func TestValidateIdentifiers(t *testing.T) {
	declared := []models.IdentifierField{
		{Name: "Name", Pattern: `[A-Za-z ]+`},
		{Name: "School ID", Pattern: `s-\d+`},
	}

	tests := []struct {
		name      string
		submitted map[string]string
		wantOK    bool
	}{
		{
			name:      "valid",
			submitted: map[string]string{"Name": "Ada Lovelace", "School ID": "s-42"},
			wantOK:    true,
		},
		{
			name:      "missing field",
			submitted: map[string]string{"Name": "Ada"},
		},
		{
			name:      "extra field",
			submitted: map[string]string{"Name": "Ada", "School ID": "s-42", "Extra": "x"},
		},
		{
			name:      "empty value",
			submitted: map[string]string{"Name": "", "School ID": "s-42"},
		},
		{
			name:      "pattern mismatch",
			submitted: map[string]string{"Name": "Ada", "School ID": "nope"},
		},
		{
			name:      "pattern must match the whole value",
			submitted: map[string]string{"Name": "Ada", "School ID": "xs-42y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateIdentifiers(declared, tt.submitted)
			if tt.wantOK && msg != "" {
				t.Fatalf("expected valid, got %q", msg)
			}
			if !tt.wantOK && msg == "" {
				t.Fatalf("expected a validation message")
			}
		})
	}
}

func TestValidateIdentifiersNoPattern(t *testing.T) {
	declared := []models.IdentifierField{{Name: "Name"}}
	if msg := validateIdentifiers(declared, map[string]string{"Name": "anything at all"}); msg != "" {
		t.Fatalf("field without a pattern accepts any non-empty value, got %q", msg)
	}
}
