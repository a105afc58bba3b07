// Package validation checks contact form payloads against the field rules
// and returns a normalized model.Submission.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/parduccinward/tukuy-cms/internal/model"
)

var whatsappPattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// contactInput mirrors model.ContactRequest after normalization. Tags carry
// the field rules; json names are used when reporting violations.
type contactInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Message  string `json:"message" validate:"required,min=10,max=2000"`
	WhatsApp string `json:"whatsapp" validate:"omitempty,whatsapp"`
	Service  string `json:"service" validate:"omitempty,service"`
	Modality string `json:"modality" validate:"omitempty,modality"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	mustRegister(v, "whatsapp", func(fl validator.FieldLevel) bool {
		return whatsappPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "service", func(fl validator.FieldLevel) bool {
		return model.Service(fl.Field().String()).Valid()
	})
	mustRegister(v, "modality", func(fl validator.FieldLevel) bool {
		return model.Modality(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}

// Errors lists every violated field rule of one submission.
type Errors struct {
	Fields []model.FieldError
}

func (e *Errors) Error() string {
	parts := lo.Map(e.Fields, func(f model.FieldError, _ int) string {
		return f.Field + ": " + f.Reason
	})
	return "invalid contact form: " + strings.Join(parts, "; ")
}

// Validate normalizes req and checks every field. On failure the returned
// error is an *Errors holding all violations, not just the first one.
func Validate(req model.ContactRequest) (model.Submission, error) {
	sub := model.Submission{
		Name:     Collapse(req.Name),
		Email:    Collapse(req.Email),
		Message:  strings.TrimSpace(req.Message),
		WhatsApp: StripSpaces(req.WhatsApp),
		Service:  model.Service(Collapse(req.Service)),
		Modality: model.Modality(Collapse(req.Modality)),
		Honeypot: Collapse(req.Honeypot),
	}

	// Lengths are measured on the collapsed message so that padding with
	// whitespace cannot satisfy the minimum. The stored message keeps its
	// line breaks.
	in := contactInput{
		Name:     sub.Name,
		Email:    sub.Email,
		Message:  Collapse(sub.Message),
		WhatsApp: sub.WhatsApp,
		Service:  string(sub.Service),
		Modality: string(sub.Modality),
	}

	err := validate.Struct(in)
	if err == nil {
		return sub, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.Submission{}, err
	}

	out := &Errors{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, model.FieldError{
			Field:  fe.Field(),
			Reason: reason(fe.Field(), fe.Tag()),
		})
	}
	return model.Submission{}, out
}
