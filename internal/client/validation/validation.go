// Package validation checks user input client-side, before anything is sent
// to the server.
package validation

import (
	"strings"

	"github.com/dmitrymomot/saaskit/pkg/validator"

	"github.com/dmitrijs2005/crmclient/internal/client/models"
)

const MinPasswordLength = 8

const (
	MsgRequired         = "this field is required"
	MsgInvalidEmail     = "enter a valid email address"
	MsgPasswordTooShort = "password must be at least 8 characters"
	MsgPasswordMismatch = "passwords do not match"
)

// Fields returns the failing fields of err in rule order with the first
// message of each. It returns nil when err carries no validation errors.
func Fields(err error) []validator.ValidationError {
	errs := validator.ExtractValidationErrors(err)
	var out []validator.ValidationError
	for _, f := range errs.Fields() {
		out = append(out, errs.GetErrors(f)[0])
	}
	return out
}

func withMessage(r validator.Rule, msg string) validator.Rule {
	r.Error.Message = msg
	return r
}

func required(field, value string) validator.Rule {
	return withMessage(validator.Required(field, value), MsgRequired)
}

// email accepts a bare address only. An empty value passes here and is left
// to required.
func email(field, value string) validator.Rule {
	value = strings.TrimSpace(value)
	r := withMessage(validator.ValidEmail(field, value), MsgInvalidEmail)
	valid := r.Check
	r.Check = func() bool {
		if value == "" {
			return true
		}
		return !strings.ContainsAny(value, "<>") && valid()
	}
	return r
}

type Registration struct {
	FirstName       string
	LastName        string
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
}

// Validate reports every problem at once as validator.ValidationErrors. A
// confirmation mismatch and a short password are independent rules on their
// own fields.
func (r Registration) Validate() error {
	return validator.Apply(
		required("first_name", r.FirstName),
		required("last_name", r.LastName),
		required("email", r.Email),
		email("email", r.Email),
		required("username", r.Username),
		withMessage(validator.MinLen("password", r.Password, MinPasswordLength), MsgPasswordTooShort),
		withMessage(validator.InListString("password_confirm", r.PasswordConfirm, []string{r.Password}), MsgPasswordMismatch),
	)
}

// ToRequest returns the payload sent to the server. The confirmation field
// never leaves the client.
func (r Registration) ToRequest() models.RegisterRequest {
	return models.RegisterRequest{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.TrimSpace(r.Email),
		Username:  strings.TrimSpace(r.Username),
		Password:  r.Password,
	}
}

type Login struct {
	Email    string
	Password string
}

func (l Login) Validate() error {
	return validator.Apply(
		required("email", l.Email),
		withMessage(validator.RequiredComparable("password", l.Password), MsgRequired),
	)
}
