package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerForm struct {
	Username  string `json:"username" validate:"required,max=64"`
	Email     string `json:"email" validate:"required,email,max=120"`
	Password  string `json:"password" validate:"required,maxbytes=72"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

type postForm struct {
	Body string `json:"body" validate:"runes=140"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		fields map[string]string
	}{
		{
			name:  "valid registration",
			input: registerForm{Username: "john", Email: "john@example.com", Password: "cat", Password2: "cat"},
		},
		{
			name:  "missing fields",
			input: registerForm{},
			fields: map[string]string{
				"username":  "This field is required.",
				"email":     "This field is required.",
				"password":  "This field is required.",
				"password2": "This field is required.",
			},
		},
		{
			name:   "bad email and mismatched passwords",
			input:  registerForm{Username: "john", Email: "nope", Password: "cat", Password2: "dog"},
			fields: map[string]string{"email": "Invalid email address.", "password2": "Must match Password."},
		},
		{
			name:   "username too long",
			input:  registerForm{Username: strings.Repeat("a", 65), Email: "a@b.co", Password: "x", Password2: "x"},
			fields: map[string]string{"username": "Must be at most 64 characters."},
		},
		{
			name:  "password of 72 bytes",
			input: registerForm{Username: "john", Email: "a@b.co", Password: strings.Repeat("p", 72), Password2: strings.Repeat("p", 72)},
		},
		{
			name: "password over 72 bytes counted in bytes",
			input: registerForm{
				Username: "john", Email: "a@b.co",
				Password: strings.Repeat("ж", 37), Password2: strings.Repeat("ж", 37),
			},
			fields: map[string]string{"password": "Must be at most 72 bytes."},
		},
		{
			name:  "post of 140 multibyte characters",
			input: postForm{Body: strings.Repeat("ж", 140)},
		},
		{
			name:   "blank post",
			input:  postForm{Body: "   "},
			fields: map[string]string{"body": "Must be between 1 and 140 characters."},
		},
		{
			name:   "post too long",
			input:  postForm{Body: strings.Repeat("a", 141)},
			fields: map[string]string{"body": "Must be between 1 and 140 characters."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Struct(tt.input)
			if len(tt.fields) == 0 {
				assert.False(t, errs.HasErrors(), errs.Error())
				return
			}
			assert.Equal(t, ValidationErrors(tt.fields), errs)
		})
	}
}
