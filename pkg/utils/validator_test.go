package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct_Phone(t *testing.T) {
	type form struct {
		Phone string `validate:"required,phone"`
	}

	tests := []struct {
		phone string
		valid bool
	}{
		{"+9779800000000", true},
		{"9779800000000", true},
		{"+1 (555) 010-2030", true},
		{"+12345", false},
		{"12345", false},
		{"+977abc0000000", false},
		{"-9779800000000", false},
		{"+123456789012345678901", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := ValidateStruct(form{Phone: tt.phone})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateStruct_NumericCode(t *testing.T) {
	type form struct {
		Code string `validate:"required,numeric_code"`
	}

	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{"six digits", "246810", true},
		{"leading zero", "012345", true},
		{"too short", "24681", false},
		{"too long", "2468100", false},
		{"letters", "24681a", false},
		{"padded", " 24681", false},
		{"full width digits", "２４６８１０", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(form{Code: tt.code})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("admin@rumooz.com"))
	assert.True(t, IsValidEmail("  Sales.Team+np@Rumooz.com.np "))
	assert.False(t, IsValidEmail("admin"))
	assert.False(t, IsValidEmail("admin@rumooz"))
	assert.False(t, IsValidEmail("@rumooz.com"))
	assert.False(t, IsValidEmail(""))
}
