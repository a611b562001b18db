package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/screenmock/internal/client/client"
)

var (
	ErrEmptyPrompt         = errors.New("prompt is empty")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrGenerationFailed    = errors.New("generation failed")
	ErrNoActiveArtifact    = errors.New("no active artifact")
)

// insufficientCreditsMarker is the fragment the service puts into its
// message when the caller has run out of credits.
const insufficientCreditsMarker = "Insufficient credits"

const (
	msgInsufficientCredits = "You don't have enough credits to generate a mockup."
	msgInsufficientEdit    = "You don't have enough revision credits to edit this mockup."
	msgEditFailed          = "There was an error editing your mockup. Please try again."
	msgGeneric             = "Something went wrong, please try again later."
	msgEmptyPrompt         = "Please describe the screen you want."
	msgSignIn              = "Please sign in to continue."
	msgNoActive            = "There is no mockup to edit yet. Generate one first."
)

// GenerationError is a classified generate/edit/load failure.
// errors.Is matches Kind, errors.As reaches the original cause.
type GenerationError struct {
	Op   string
	Kind error
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, client.ErrAuthTokenMissing) {
		return err
	}
	kind := ErrGenerationFailed
	if strings.Contains(err.Error(), insufficientCreditsMarker) {
		kind = ErrInsufficientCredits
	}
	return &GenerationError{Op: op, Kind: kind, Err: err}
}

// UserMessage maps a session error to the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ge *GenerationError
	isEdit := errors.As(err, &ge) && ge.Op == opEdit

	switch {
	case errors.Is(err, ErrEmptyPrompt):
		return msgEmptyPrompt
	case errors.Is(err, client.ErrAuthTokenMissing):
		return msgSignIn
	case errors.Is(err, ErrNoActiveArtifact):
		return msgNoActive
	case errors.Is(err, ErrInsufficientCredits):
		if isEdit {
			return msgInsufficientEdit
		}
		return msgInsufficientCredits
	case isEdit:
		return msgEditFailed
	}

	var re *client.RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return msgGeneric
}
