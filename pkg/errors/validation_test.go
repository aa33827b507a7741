package errors

import (
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid simple", "created-at", false},
		{"valid dotted", "meta.owner", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
		{"control character", "facet\x01name", true},
		{"path traversal", "../etc/passwd", true},
		{"double slash", "a//b", true},
		{"null byte", "facet\x00", true},
		{"backslash", "a\\b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFacetID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid slug", "created_at", false},
		{"valid dashed", "display-order", false},
		{"valid dotted", "meta.owner", false},
		{"uppercase rejected", "CreatedAt", true},
		{"leading dash", "-created", true},
		{"spaces", "created at", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFacetID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFacetID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if tt.wantErr && err != nil && GetCode(err) == "" {
				t.Error("validation error carries no code")
			}
		})
	}
}

func TestValidateCanvasID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"hex object id", "68b1f0a2c3d4e5f601234567", false},
		{"uuid", "550e8400-e29b-41d4-a716-446655440000", false},
		{"empty", "", true},
		{"underscore rejected", "canvas_1", true},
		{"traversal", "../x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvasID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCanvasID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateViewName(t *testing.T) {
	tests := []struct {
		name    string
		view    string
		wantErr bool
	}{
		{"simple", "grid", false},
		{"with spaces", "Q3 Planning Board", false},
		{"empty", "", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"control character", "name\x07", true},
		{"too long", strings.Repeat("v", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateViewName(tt.view)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateViewName(%q) error = %v, wantErr %v", tt.view, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSlotName(t *testing.T) {
	for _, slot := range []string{"x", "y", "z"} {
		if err := ValidateSlotName(slot); err != nil {
			t.Errorf("ValidateSlotName(%q) = %v, want nil", slot, err)
		}
	}
	for _, slot := range []string{"", "w", "X", "xy"} {
		err := ValidateSlotName(slot)
		if err == nil {
			t.Errorf("ValidateSlotName(%q) = nil, want error", slot)
			continue
		}
		if GetCode(err) != ErrCodeInvalidAxis {
			t.Errorf("ValidateSlotName(%q) code = %v, want %v", slot, GetCode(err), ErrCodeInvalidAxis)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid relative", "trees/canvas.json", false},
		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "a/../b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("p/", 251), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://example.com", false},
		{"http", "http://localhost:8080", false},
		{"empty", "", true},
		{"file scheme", "file:///etc/passwd", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
