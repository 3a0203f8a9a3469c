package application

import (
	"strings"

	"github.com/bnema/driver-partner-cli/internal/domain"
)

type SignUpCommand struct {
	FullName        string
	MobileNumber    string
	Password        string
	ConfirmPassword string
}

func (c SignUpCommand) Validate() error {
	if err := domain.ValidateFullName(c.FullName); err != nil {
		return err
	}
	if err := domain.ValidateMobileNumber(c.MobileNumber); err != nil {
		return err
	}
	return domain.ValidatePassword(c.Password, c.ConfirmPassword)
}

type SignInCommand struct {
	MobileNumber string
	Password     string
}

func (c SignInCommand) Validate() error {
	if err := domain.ValidateMobileNumber(c.MobileNumber); err != nil {
		return err
	}
	return domain.ValidatePassword(c.Password, c.Password)
}

type CompleteProfileCommand struct {
	Age           int
	Experience    int
	Gender        string
	City          string
	Skill         string
	Email         string
	AcceptedTerms bool
}

func (c CompleteProfileCommand) Validate() error {
	for _, field := range []struct{ name, value string }{
		{name: "gender", value: c.Gender},
		{name: "city", value: c.City},
		{name: "skill", value: c.Skill},
	} {
		if err := domain.ValidateRequired(field.name, field.value); err != nil {
			return err
		}
	}
	if err := domain.ValidateAge(c.Age); err != nil {
		return err
	}
	if err := domain.ValidateExperience(c.Experience, c.Age); err != nil {
		return err
	}
	if err := domain.ValidateEmail(strings.TrimSpace(c.Email)); err != nil {
		return err
	}
	if !c.AcceptedTerms {
		return &domain.ValidationError{Field: "terms", Message: "Please accept the Terms & Conditions to continue."}
	}
	return nil
}

func validateDocument(field, ref string) error {
	if strings.TrimSpace(ref) == "" {
		return &domain.ValidationError{Field: field, Message: "Please select an image before continuing."}
	}
	return nil
}
