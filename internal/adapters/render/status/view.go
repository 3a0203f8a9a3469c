package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/driver-partner-cli/internal/application"
	"github.com/bnema/driver-partner-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
	// Details adds the full account record below the summary.
	Details bool
}

var onboardingSteps = []domain.RegistrationStage{
	domain.StageVerifyOTP,
	domain.StageCompleteProfile,
	domain.StageProfilePicture,
	domain.StageDrivingLicense,
	domain.StageSubmitted,
}

func renderDriver(status application.Status, opts RenderOptions, s styles) string {
	parts := []string{s.driver.Render(driverTitle(status.Profile))}

	stage := domain.StageUnknown
	if status.Profile != nil {
		stage = status.Profile.RegistrationStage
	}
	parts = append(parts, onboardingLine(stage, s))

	if status.Claims != nil {
		parts = append(parts, tokenLine(*status.Claims, opts.Now, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderDetails(profile domain.UserProfile, s styles) string {
	rows := [][2]string{
		{"mobile", profile.MobileNumber},
		{"email", profile.Email},
		{"gender", profile.Gender},
		{"city", profile.City},
		{"age", intOrEmpty(profile.Age)},
		{"experience", yearsOrEmpty(profile.Experience)},
		{"skill", profile.Skill},
		{"profile picture", documentLabel(profile.ProfilePicture)},
		{"driving license", documentLabel(profile.DrivingLicense)},
		{"verified", yesNo(profile.IsVerified)},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		value := row[1]
		if value == "" {
			value = "n/a"
		}
		lines = append(lines, s.label.Render(fmt.Sprintf("%-16s", row[0]+":"))+s.detail.Render(value))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func onboardingLine(stage domain.RegistrationStage, s styles) string {
	done := completedSteps(stage)
	total := len(onboardingSteps)

	label := s.label.Render("onboarding:")
	if done == total {
		return label + " " + s.success.Render("complete")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		label,
		" ",
		renderProgressBar(done, total, 20, s),
		" ",
		s.detail.Render(fmt.Sprintf("%d/%d, next: %s", done, total, stageLabel(stage))),
	)
}

func tokenLine(claims application.TokenClaims, now time.Time, s styles) string {
	label := s.label.Render("token:")
	if claims.ExpiresAt.IsZero() {
		return label + " " + s.detail.Render("no expiry")
	}
	if now.IsZero() {
		return label + " " + s.detail.Render("expires "+claims.ExpiresAt.Format(time.RFC3339))
	}
	if !claims.ExpiresAt.After(now) {
		return label + " " + s.warning.Render("expired, sign in again")
	}

	return label + " " + s.detail.Render(formatRemaining(claims.ExpiresAt.Sub(now)))
}

func completedSteps(stage domain.RegistrationStage) int {
	if stage == domain.StageComplete {
		return len(onboardingSteps)
	}
	for i, step := range onboardingSteps {
		if step == stage {
			return i
		}
	}
	return 0
}

func renderProgressBar(done, total, width int, s styles) string {
	if width <= 0 || total <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * float64(done) / float64(total)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 24*time.Hour {
		hours := int(math.Ceil(remaining.Hours()))
		if hours < 1 {
			hours = 1
		}
		if hours == 1 {
			return "expires in 1 hour"
		}
		return fmt.Sprintf("expires in %d hours", hours)
	}

	days := int(math.Ceil(remaining.Hours() / 24))
	if days == 1 {
		return "expires in 1 day"
	}
	return fmt.Sprintf("expires in %d days", days)
}

func screenLabel(screen domain.Screen) string {
	switch screen.Tree {
	case domain.ScreenLoading:
		return "loading"
	case domain.ScreenMain:
		return "main"
	default:
		return "onboarding/" + string(screen.Route)
	}
}

func stageLabel(stage domain.RegistrationStage) string {
	switch stage {
	case domain.StageVerifyOTP:
		return "verify OTP"
	case domain.StageCompleteProfile:
		return "complete profile"
	case domain.StageProfilePicture:
		return "profile picture"
	case domain.StageDrivingLicense:
		return "driving license"
	case domain.StageSubmitted:
		return "submit application"
	default:
		return "verify OTP"
	}
}

func driverTitle(profile *domain.UserProfile) string {
	if profile == nil {
		return "Driver (profile not loaded)"
	}

	name := strings.TrimSpace(profile.FullName)
	if name == "" {
		name = "Driver"
	}
	if profile.ID == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, profile.ID)
}

func documentLabel(ref string) string {
	if strings.TrimSpace(ref) == "" {
		return ""
	}
	return "uploaded"
}

func intOrEmpty(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}

func yearsOrEmpty(v int) string {
	if v == 0 {
		return ""
	}
	if v == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", v)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
