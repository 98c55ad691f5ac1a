package simulations

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/costintel/costintel/internal/dates"
)

// User-facing validation messages.
const (
	MsgInvalidWindow = "A data inicial deve ser anterior ou igual à data final."
	MsgNoCuts        = "Adicione pelo menos um corte para executar."
	MsgNoScenarios   = "Selecione ao menos dois cenários salvos para comparar."
)

// ValidationError is a client-side failure that never reaches the API.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = validator.New()

// Validate is the gate in front of every run: a well-formed, ordered window and at least one cut.
func Validate(d Draft) error {
	if err := ValidateWindow(d.Window()); err != nil {
		return err
	}
	if !d.HasCuts() {
		return &ValidationError{Message: MsgNoCuts}
	}
	return nil
}

// ValidateWindow checks that both dates parse and start is not after end.
func ValidateWindow(w dates.Window) error {
	form := struct {
		Start string `validate:"required,datetime=2006-01-02"`
		End   string `validate:"required,datetime=2006-01-02"`
	}{Start: w.Start, End: w.End}
	if err := validate.Struct(form); err != nil {
		return &ValidationError{Message: MsgInvalidWindow}
	}
	if !w.IsValid() {
		return &ValidationError{Message: MsgInvalidWindow}
	}
	return nil
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
