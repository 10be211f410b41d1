package onboarding

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/designmatch/web-client/backend"
	"github.com/designmatch/web-client/internal/errors"
)

// Wizard steps, strictly linear.
const (
	StepBusinessInfo = 1
	StepCategories   = 2
	StepLocation     = 3
	StepSocial       = 4

	firstStep = StepBusinessInfo
	lastStep  = StepSocial
)

// API is the slice of the backend client the wizard needs for its
// terminal action.
type API interface {
	Onboard(ctx context.Context, token string, req backend.OnboardRequest) (string, error)
	UploadLogo(ctx context.Context, token, filename string, content io.Reader) error
}

// Wizard drives the onboarding flow: a step counter in [1,4] over a
// draft. Next advances only past a valid step; Prev always goes back.
// There is no save-and-resume — a fresh wizard starts empty.
type Wizard struct {
	step  int
	draft Draft
}

// NewWizard starts at step 1 with an empty draft.
func NewWizard() *Wizard {
	return &Wizard{step: firstStep, draft: NewDraft()}
}

// Step returns the current step, always within [1,4].
func (w *Wizard) Step() int {
	return w.step
}

// Draft exposes the accumulating form state for binding and rendering.
func (w *Wizard) Draft() *Draft {
	return &w.draft
}

// Next validates the current step and, on success, advances by exactly
// one. The validation failure is returned for display and the step does
// not move.
func (w *Wizard) Next() error {
	if err := validateStep(w.step, &w.draft); err != nil {
		return err
	}
	if w.step < lastStep {
		w.step++
	}
	return nil
}

// Prev steps back unconditionally, never below the first step.
func (w *Wizard) Prev() {
	if w.step > firstStep {
		w.step--
	}
}

// OnLastStep reports whether the wizard is ready for submission.
func (w *Wizard) OnLastStep() bool {
	return w.step == lastStep
}

// Result is the outcome of a successful submission.
type Result struct {
	// AccessToken is the replacement token issued by the onboarding
	// call; it reflects the user's new vendor status and must replace
	// the session's token.
	AccessToken string
}

// Submit performs the terminal action: every step is re-validated, the
// draft is coerced into the wire payload, and one profile-creation call
// is issued with the current session token. On success the returned
// token is used for the optional, independent logo upload. A failed
// upload does not roll anything back — the profile exists and the new
// token is still returned alongside the error.
func (w *Wizard) Submit(ctx context.Context, api API, token string) (Result, error) {
	if !w.OnLastStep() {
		return Result{}, errors.ErrStepIncomplete
	}
	for step := firstStep; step <= lastStep; step++ {
		if err := validateStep(step, &w.draft); err != nil {
			return Result{}, err
		}
	}

	newToken, err := api.Onboard(ctx, token, w.buildRequest())
	if err != nil {
		return Result{}, err
	}

	result := Result{AccessToken: newToken}

	if len(w.draft.LogoContent) > 0 {
		if err := api.UploadLogo(ctx, newToken, w.draft.LogoFilename, bytes.NewReader(w.draft.LogoContent)); err != nil {
			log.Warn().Err(err).Msg("logo upload failed after onboarding")
			return result, errors.Wrapf(err, "profile created but logo upload failed")
		}
	}

	return result, nil
}

// buildRequest coerces the draft into the onboarding payload: numeric
// strings become numbers, the category axes become comma-joined strings.
// Validation has already guaranteed the conversions succeed.
func (w *Wizard) buildRequest() backend.OnboardRequest {
	employees, _ := strconv.Atoi(w.draft.NumberOfEmployees)
	projectValue, _ := strconv.ParseFloat(w.draft.AverageProjectValue, 64)
	completed, _ := strconv.Atoi(w.draft.ProjectsCompleted)

	return backend.OnboardRequest{
		BusinessName:        w.draft.BusinessName,
		Address:             w.draft.Address,
		SubCategory1:        w.draft.joinedSubcategories(1),
		SubCategory2:        w.draft.joinedSubcategories(2),
		SubCategory3:        w.draft.joinedSubcategories(3),
		Category:            w.draft.Category,
		StartedIn:           w.draft.StartedIn,
		NumberOfEmployees:   employees,
		AverageProjectValue: projectValue,
		ProjectsCompleted:   completed,
		City:                w.draft.City,
		State:               w.draft.State,
		Description:         w.draft.Description,
		Social:              w.draft.Social,
	}
}
