package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"condo-forms/internal/validation"
)

const (
	formResidentRegistration = "resident_registration"
	formVisitorAuthorization = "visitor_authorization"
	formReservation          = "reservation"
)

var tagMessages = map[string]string{
	"required":  "Campo obrigatório",
	"notblank":  "Campo obrigatório",
	"cpf":       "CPF inválido",
	"document":  "CPF/CNPJ inválido",
	"emailaddr": "E-mail inválido",
	"phone_br":  "Telefone inválido",
	"cep":       "CEP inválido",
	"fullname":  "Informe o nome completo",
	"plate":     "Placa inválida",
	"date_br":   "Data inválida",
	"adult":     "É necessário ter pelo menos 18 anos",
	"not_past":  "A data não pode estar no passado",
	"unit":      "Unidade inválida",
	"httpurl":   "URL inválida",
	"money":     "Valor inválido",
	"eqfield":   "As senhas não conferem",
}

func newFormValidator(now func() time.Time) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	stringRules := map[string]func(string) bool{
		"cpf":       validation.ValidateCPF,
		"document":  validation.ValidateDocument,
		"emailaddr": validation.ValidateEmail,
		"phone_br":  validation.ValidatePhone,
		"cep":       validation.ValidateCEP,
		"fullname":  validation.ValidateName,
		"plate":     validation.ValidatePlate,
		"date_br":   validation.ValidateDate,
		"unit":      validation.ValidateUnit,
		"httpurl":   validation.ValidateURL,
		"money": func(value string) bool {
			return validation.RemoveNonNumeric(value) != ""
		},
		"adult": func(value string) bool {
			return validation.ValidateAgeAt(value, now())
		},
		"not_past": func(value string) bool {
			return validation.ValidateFutureDate(value, now())
		},
	}
	for tag, rule := range stringRules {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String())
		})
	}

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return validation.ValidateRequired(fl.Field().Interface())
	})
	_ = v.RegisterValidation("minchars", lengthRule(validation.ValidateMinLength))
	_ = v.RegisterValidation("maxchars", lengthRule(validation.ValidateMaxLength))

	return v
}

func lengthRule(check func(value string, limit int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return check(fl.Field().String(), limit)
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func (s *Service) RegisterResident(ctx context.Context, input ResidentRegistrationInput) (ResidentRegistrationOutput, error) {
	ctx, span := otel.Tracer(serviceTracerName).Start(ctx, "Service.RegisterResident")
	defer span.End()

	password := validation.ValidateStrongPassword(input.Password)
	extra := make(FieldErrors, 0, len(password.Errors))
	for _, message := range password.Errors {
		extra = append(extra, FieldError{Field: FieldPassword, Message: message})
	}
	if err := s.validateForm(ctx, formResidentRegistration, &input, extra); err != nil {
		return ResidentRegistrationOutput{}, err
	}

	birth, _ := validation.ParseDate(input.BirthDate)
	return ResidentRegistrationOutput{
		Name:             collapseSpaces(input.Name),
		Email:            strings.ToLower(strings.TrimSpace(input.Email)),
		CPF:              validation.FormatCPF(input.CPF),
		Phone:            validation.FormatPhone(input.Phone),
		BirthDate:        validation.FormatDateBR(birth),
		Age:              validation.CalculateAge(birth, s.now()),
		Unit:             strings.ToUpper(strings.TrimSpace(input.Unit)),
		CEP:              validation.FormatCEP(input.CEP),
		PasswordStrength: password.Strength,
	}, nil
}

func (s *Service) AuthorizeVisitor(ctx context.Context, input VisitorAuthorizationInput) (VisitorAuthorizationOutput, error) {
	ctx, span := otel.Tracer(serviceTracerName).Start(ctx, "Service.AuthorizeVisitor")
	defer span.End()

	if err := s.validateForm(ctx, formVisitorAuthorization, &input, nil); err != nil {
		return VisitorAuthorizationOutput{}, err
	}

	return VisitorAuthorizationOutput{
		Name:      collapseSpaces(input.Name),
		Document:  validation.FormatDocument(input.Document),
		Phone:     validation.FormatPhone(input.Phone),
		Plate:     validation.FormatPlate(input.Plate),
		VisitDate: input.VisitDate,
		Unit:      strings.ToUpper(strings.TrimSpace(input.Unit)),
		PhotoURL:  input.PhotoURL,
	}, nil
}

func (s *Service) ReserveAmenity(ctx context.Context, input ReservationInput) (ReservationOutput, error) {
	ctx, span := otel.Tracer(serviceTracerName).Start(ctx, "Service.ReserveAmenity")
	defer span.End()

	if err := s.validateForm(ctx, formReservation, &input, nil); err != nil {
		return ReservationOutput{}, err
	}

	output := ReservationOutput{
		Amenity: strings.TrimSpace(input.Amenity),
		Unit:    strings.ToUpper(strings.TrimSpace(input.Unit)),
		Date:    input.Date,
		Guests:  input.Guests,
		Notes:   strings.TrimSpace(input.Notes),
	}
	if input.Fee != "" {
		output.Fee = validation.FormatMoney(input.Fee)
		output.FeeAmount = validation.UnformatMoney(input.Fee)
	}
	return output, nil
}

// validateForm runs the struct tags of form, merges extra and returns the
// result as FieldErrors sorted by the order fields are declared in.
func (s *Service) validateForm(ctx context.Context, name string, form any, extra FieldErrors) error {
	var errs FieldErrors
	if err := s.validate.Struct(form); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return fmt.Errorf("validate %s: %w", name, err)
		}
		for _, fieldErr := range validationErrs {
			errs = append(errs, FieldError{Field: fieldErr.Field(), Message: fieldMessage(fieldErr)})
		}
	}
	errs = append(errs, extra...)

	valid := len(errs) == 0
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("validation.form", name), attribute.Bool("validation.valid", valid))
	s.recordCheck(ctx, name, valid)
	if valid {
		return nil
	}

	order := fieldOrder(form)
	slices.SortStableFunc(errs, func(a, b FieldError) int {
		return cmp.Compare(order[a.Field], order[b.Field])
	})
	return errs
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "minchars":
		return "Deve ter no mínimo " + fieldErr.Param() + " caracteres"
	case "maxchars":
		return "Deve ter no máximo " + fieldErr.Param() + " caracteres"
	case "gte":
		return "Deve ser no mínimo " + fieldErr.Param()
	case "lte":
		return "Deve ser no máximo " + fieldErr.Param()
	}
	if message, ok := tagMessages[fieldErr.Tag()]; ok {
		return message
	}
	return "Valor inválido"
}

func fieldOrder(form any) map[string]int {
	t := reflect.TypeOf(form)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	order := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		order[jsonFieldName(t.Field(i))] = i
	}
	return order
}

func collapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
