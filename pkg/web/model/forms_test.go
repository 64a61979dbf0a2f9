package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCampgroundFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		form   CampgroundForm
		fields []string
	}{
		{name: "valid", form: CampgroundForm{Name: "Salmon Creek", Image: "https://img.example.com/a.jpg", Description: "Lovely"}},
		{name: "all missing", form: CampgroundForm{}, fields: []string{"name", "image", "description"}},
		{name: "blank name", form: CampgroundForm{Name: "   ", Image: "http://x.io/a.png", Description: "d"}, fields: []string{"name"}},
		{name: "bad image", form: CampgroundForm{Name: "n", Image: "javascript:alert(1)", Description: "d"}, fields: []string{"image"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			assert.Len(t, errs, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestRegisterFormValidate(t *testing.T) {
	assert.False(t, RegisterForm{Name: "a", Email: "a@b.com", Password: "p"}.Validate().Any())

	errs := RegisterForm{Name: "a", Email: "not-an-email", Password: "p"}.Validate()
	assert.Equal(t, FieldErrors{"email": "Email is not a valid address."}, errs)

	errs = RegisterForm{Email: "a@b.com"}.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "password")
	assert.NotContains(t, errs, "email")
}

func TestRegisterFormPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{name: "whitespace only", password: "   "},
		{name: "at bcrypt limit", password: strings.Repeat("p", MaxPasswordBytes)},
		{name: "over bcrypt limit", password: strings.Repeat("p", MaxPasswordBytes+1), wantErr: "Password must be at most 72 bytes."},
		{name: "empty", password: "", wantErr: "Password is required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := RegisterForm{Name: "a", Email: "a@b.com", Password: tt.password}.Validate()
			if tt.wantErr == "" {
				assert.False(t, errs.Any(), errs)
				return
			}
			assert.Equal(t, FieldErrors{"password": tt.wantErr}, errs)
		})
	}
}

func TestLoginFormValidate(t *testing.T) {
	assert.False(t, LoginForm{Email: "a@b.com", Password: "p"}.Validate().Any())
	assert.Len(t, LoginForm{}.Validate(), 2)
	assert.False(t, LoginForm{Email: "a@b.com", Password: " "}.Validate().Any())
}
