package guests

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		FullName:     "Ana Souza",
		Email:        "ana@example.com",
		DocumentType: "cpf",
		DocumentID:   "529.982.247-25",
	}
}

func TestFormValidate(t *testing.T) {
	require.Empty(t, validForm().Validate())
}

func TestFormRequiresFullName(t *testing.T) {
	form := validForm()
	form.FullName = ""
	errs := form.Validate()
	require.Contains(t, errs, "FullName")
}

func TestFormRejectsBadEmail(t *testing.T) {
	form := validForm()
	form.Email = "ana@"
	errs := form.Validate()
	require.Contains(t, errs, "Email")
}

func TestFormChecksCPFOnlyForCPFType(t *testing.T) {
	form := validForm()
	form.DocumentID = "12345678900"
	errs := form.Validate()
	require.Contains(t, errs, "DocumentID")

	// The same digits pass as a generic document.
	form.DocumentType = "other"
	require.Empty(t, form.Validate())

	form.DocumentType = "passport"
	form.DocumentID = "FD123456"
	require.Empty(t, form.Validate())
}

func TestFormRejectsBadBirthDate(t *testing.T) {
	form := validForm()
	form.BirthDate = "31/12/1990"
	errs := form.Validate()
	require.Contains(t, errs, "BirthDate")

	form.BirthDate = "1990-12-31"
	require.Empty(t, form.Validate())
}

func TestFormInputOmitsEmptyOptionals(t *testing.T) {
	form := Form{FullName: "Ana Souza"}
	input := form.Input()
	require.Nil(t, input.Email)
	require.Nil(t, input.DocumentType)
	require.Nil(t, input.Notes)
	require.Equal(t, "Ana Souza", input.FullName)
}
