package domain

import (
	"regexp"
	"strings"
)

const (
	OTPLength         = 4
	MinPasswordLength = 6
	MinDriverAge      = 18
	MaxDriverAge      = 70
)

var (
	mobileNumberPattern = regexp.MustCompile(`^\d{10}$`)
	otpPattern          = regexp.MustCompile(`^\d{4}$`)
	emailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func ValidateFullName(fullName string) error {
	if strings.TrimSpace(fullName) == "" {
		return invalid("full name", "Please enter your full name.")
	}
	return nil
}

func ValidateMobileNumber(mobileNumber string) error {
	if !mobileNumberPattern.MatchString(mobileNumber) {
		return invalid("mobile number", "Please enter a valid 10-digit mobile number.")
	}
	return nil
}

func ValidatePassword(password, confirmation string) error {
	if len(password) < MinPasswordLength {
		return invalid("password", "Password must be at least 6 characters long.")
	}
	if password != confirmation {
		return invalid("password", "Both passwords must be the same.")
	}
	return nil
}

func ValidateOTP(otp string) error {
	if len(otp) != OTPLength || !otpPattern.MatchString(otp) {
		return invalid("otp", "Please enter the complete 4-digit OTP.")
	}
	return nil
}

func ValidateAge(age int) error {
	if age < MinDriverAge || age > MaxDriverAge {
		return invalid("age", "Age must be between 18 and 70.")
	}
	return nil
}

// ValidateExperience rejects driving experience that predates adulthood.
func ValidateExperience(experience, age int) error {
	if experience < 0 || experience > age-MinDriverAge {
		return invalid("experience", "Experience does not match your age.")
	}
	return nil
}

// ValidateEmail accepts an empty address; email is optional.
func ValidateEmail(email string) error {
	if email != "" && !emailPattern.MatchString(email) {
		return invalid("email", "Please enter a valid email address.")
	}
	return nil
}

func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "Please fill all required fields.")
	}
	return nil
}
