package validation

import (
	"testing"

	"github.com/dmitrijs2005/crmclient/internal/client/models"
	"github.com/dmitrymomot/saaskit/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() Registration {
	return Registration{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Username:        "ada",
		Password:        "engine1843",
		PasswordConfirm: "engine1843",
	}
}

// messages flattens err into field -> first message.
func messages(err error) map[string]string {
	out := map[string]string{}
	for _, e := range Fields(err) {
		out[e.Field] = e.Message
	}
	return out
}

func TestRegistration_Valid(t *testing.T) {
	require.NoError(t, validRegistration().Validate())
}

func TestRegistration_ShortAndMismatchedAreIndependent(t *testing.T) {
	r := validRegistration()
	r.Password = "abc"
	r.PasswordConfirm = "xyz"

	err := r.Validate()
	require.Error(t, err)
	require.True(t, validator.IsValidationError(err))

	errs := validator.ExtractValidationErrors(err)
	require.Len(t, errs, 2)
	assert.Equal(t, []string{MsgPasswordTooShort}, errs.Get("password"))
	assert.Equal(t, []string{MsgPasswordMismatch}, errs.Get("password_confirm"))
}

func TestRegistration_Table(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Registration)
		want   map[string]string
	}{
		{
			name:   "short but matching",
			mutate: func(r *Registration) { r.Password, r.PasswordConfirm = "abc", "abc" },
			want:   map[string]string{"password": MsgPasswordTooShort},
		},
		{
			name:   "long enough but mismatched",
			mutate: func(r *Registration) { r.PasswordConfirm = "engine1844" },
			want:   map[string]string{"password_confirm": MsgPasswordMismatch},
		},
		{
			name:   "exactly minimum length",
			mutate: func(r *Registration) { r.Password, r.PasswordConfirm = "12345678", "12345678" },
			want:   map[string]string{},
		},
		{
			name:   "missing names",
			mutate: func(r *Registration) { r.FirstName, r.LastName = " ", "" },
			want:   map[string]string{"first_name": MsgRequired, "last_name": MsgRequired},
		},
		{
			name:   "bad email",
			mutate: func(r *Registration) { r.Email = "not-an-email" },
			want:   map[string]string{"email": MsgInvalidEmail},
		},
		{
			name:   "display-name email is rejected",
			mutate: func(r *Registration) { r.Email = "Ada <ada@example.com>" },
			want:   map[string]string{"email": MsgInvalidEmail},
		},
		{
			name:   "surrounding spaces are accepted",
			mutate: func(r *Registration) { r.Email = " ada@example.com " },
			want:   map[string]string{},
		},
		{
			name:   "empty email is only required",
			mutate: func(r *Registration) { r.Email = "" },
			want:   map[string]string{"email": MsgRequired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)
			err := r.Validate()
			assert.Equal(t, tt.want, messages(err))
			assert.Equal(t, len(tt.want) == 0, err == nil)
		})
	}
}

func TestFields_RuleOrder(t *testing.T) {
	err := Registration{Password: "abc", PasswordConfirm: "abcd"}.Validate()

	var fields []string
	for _, e := range Fields(err) {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"first_name", "last_name", "email", "username", "password", "password_confirm"}, fields)
	assert.Nil(t, Fields(nil))
}

func TestRegistration_ToRequestDropsConfirmation(t *testing.T) {
	r := validRegistration()
	r.Email = "  ada@example.com "

	got := r.ToRequest()

	assert.Equal(t, models.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Username:  "ada",
		Password:  "engine1843",
	}, got)
}

func TestLogin_Validate(t *testing.T) {
	assert.NoError(t, Login{Email: "a@b.com", Password: "x"}.Validate())
	assert.Equal(t, map[string]string{"email": MsgRequired, "password": MsgRequired}, messages(Login{}.Validate()))
}
