package validator_test

import (
	"net/http"
	"stayin/shared/failure"
	"stayin/shared/validator"
	"strings"
	"testing"
)

type guestContact struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Contact string `json:"contact" validate:"required,len=10,numeric"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   guestContact
		wantErr bool
	}{
		{
			name:    "valid input",
			input:   guestContact{Name: "Ram", Contact: "9876543210"},
			wantErr: false,
		},
		{
			name:    "empty name",
			input:   guestContact{Name: "", Contact: "9876543210"},
			wantErr: true,
		},
		{
			name:    "contact too short",
			input:   guestContact{Name: "Ram", Contact: "98765"},
			wantErr: true,
		},
		{
			name:    "contact too long",
			input:   guestContact{Name: "Ram", Contact: "98765432101"},
			wantErr: true,
		},
		{
			name:    "contact not numeric",
			input:   guestContact{Name: "Ram", Contact: "98765abcde"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if code := failure.GetCode(err); code != http.StatusBadRequest {
					t.Errorf("expected code %d, got %d", http.StatusBadRequest, code)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidate_DecodeFailure(t *testing.T) {
	var data guestContact

	err := validator.Validate(strings.NewReader(`{"name": 42}`), &data)
	if err == nil {
		t.Fatal("expected decode error, got nil")
	}

	if code := failure.GetCode(err); code != http.StatusBadRequest {
		t.Errorf("expected code %d, got %d", http.StatusBadRequest, code)
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("9876543210", "len=10,numeric"); err != nil {
		t.Errorf("expected valid contact, got %v", err)
	}

	if err := validator.ValidateVar("98765", "len=10,numeric"); err == nil {
		t.Error("expected short contact to fail")
	}
}
