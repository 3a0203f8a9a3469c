package domain

type Route string

const (
	RouteMain              Route = ""
	RouteHome              Route = "home"
	RouteSignIn            Route = "sign-in"
	RouteSignUp            Route = "sign-up"
	RouteVerifyOTP         Route = "verify-otp"
	RouteCompleteProfile   Route = "complete-profile"
	RouteSetProfilePicture Route = "set-profile-pic"
	RouteDrivingLicense    Route = "add-driving-license"
	RouteSubmitApplication Route = "submit-application"
)

var stageRoutes = map[RegistrationStage]Route{
	StageVerifyOTP:       RouteVerifyOTP,
	StageCompleteProfile: RouteCompleteProfile,
	StageProfilePicture:  RouteSetProfilePicture,
	StageDrivingLicense:  RouteDrivingLicense,
	StageSubmitted:       RouteSubmitApplication,
	StageComplete:        RouteMain,
}

// ResolveInitialRoute maps the cached profile onto the screen a user lands on.
// Without a token the funnel does not apply and the unauthenticated entry point
// is returned. Unknown stages, and a token without any profile, fall back to
// OTP verification.
func ResolveInitialRoute(profile *UserProfile, token string) Route {
	if token == "" {
		return RouteHome
	}
	if profile == nil || !profile.RegistrationStage.Known() {
		return RouteVerifyOTP
	}
	if profile.OnboardingComplete() {
		return RouteMain
	}

	route, ok := stageRoutes[ParseRegistrationStage(string(profile.RegistrationStage))]
	if !ok {
		return RouteVerifyOTP
	}
	return route
}

type ScreenTree string

const (
	ScreenLoading    ScreenTree = "loading"
	ScreenOnboarding ScreenTree = "onboarding"
	ScreenMain       ScreenTree = "main"
)

type Screen struct {
	Tree  ScreenTree
	Route Route
}

// ResolveScreen derives the tree the navigation router renders. The funnel is
// never consulted while bootstrapping.
func ResolveScreen(session Session) Screen {
	if session.Bootstrapping {
		return Screen{Tree: ScreenLoading}
	}

	route := ResolveInitialRoute(session.Profile, session.AccessToken)
	if route == RouteMain {
		return Screen{Tree: ScreenMain}
	}

	return Screen{Tree: ScreenOnboarding, Route: route}
}

// Destination is a screen reached outside the onboarding funnel.
type Destination string

const (
	DestinationRequestedUsers Destination = "requested-users"
)
