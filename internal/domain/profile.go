package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type DriverID string

// RegistrationStage is the server-authoritative onboarding step. The empty
// value means onboarding is complete.
type RegistrationStage string

const (
	StageComplete        RegistrationStage = ""
	StageVerifyOTP       RegistrationStage = "verif"
	StageCompleteProfile RegistrationStage = "comprof"
	StageProfilePicture  RegistrationStage = "setprof"
	StageDrivingLicense  RegistrationStage = "drivlic"
	StageSubmitted       RegistrationStage = "submit"
	StageUnknown         RegistrationStage = "unknown"
)

// ParseRegistrationStage maps a raw wire value onto the closed stage set.
// Values outside the set collapse to StageUnknown.
func ParseRegistrationStage(raw string) RegistrationStage {
	switch stage := RegistrationStage(strings.TrimSpace(raw)); stage {
	case StageComplete, StageVerifyOTP, StageCompleteProfile, StageProfilePicture, StageDrivingLicense, StageSubmitted:
		return stage
	default:
		return StageUnknown
	}
}

func (s RegistrationStage) Known() bool {
	return ParseRegistrationStage(string(s)) != StageUnknown
}

func (s *RegistrationStage) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = StageComplete
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = ParseRegistrationStage(raw)
	return nil
}

type UserProfile struct {
	ID                DriverID          `json:"_id"`
	FullName          string            `json:"fullName"`
	MobileNumber      string            `json:"mobileNumber"`
	RegistrationStage RegistrationStage `json:"regiStatus,omitempty"`
	IsVerified        bool              `json:"isVerified"`
	IsMobileVerified  bool              `json:"isMobileVerified"`
	IsActingDriver    bool              `json:"isActingDriver"`
	Email             string            `json:"email,omitempty"`
	Gender            string            `json:"gender,omitempty"`
	City              string            `json:"city,omitempty"`
	Age               int               `json:"age,omitempty"`
	Experience        int               `json:"experience,omitempty"`
	Skill             string            `json:"skill,omitempty"`
	ProfilePicture    string            `json:"profilePicture,omitempty"`
	DrivingLicense    string            `json:"drivingLicense,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

func (p *UserProfile) OnboardingComplete() bool {
	return p != nil && p.RegistrationStage == StageComplete
}
