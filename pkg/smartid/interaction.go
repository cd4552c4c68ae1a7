package smartid

import (
	"fmt"
	"unicode/utf8"
)

// InteractionType tags the allowed interaction variants. The value is the
// wire representation of the type field.
type InteractionType string

const (
	InteractionDisplayTextAndPIN                            InteractionType = "displayTextAndPIN"
	InteractionVerificationCodeChoice                       InteractionType = "verificationCodeChoice"
	InteractionConfirmationMessage                          InteractionType = "confirmationMessage"
	InteractionConfirmationMessageAndVerificationCodeChoice InteractionType = "confirmationMessageAndVerificationCodeChoice"
)

const (
	displayText60MaxLength  = 60
	displayText200MaxLength = 200
)

// Interaction describes one way the user's app may present the operation.
// Exactly one of the two text fields is populated, depending on the type.
// Build instances through the constructors below; they pick the right field.
type Interaction struct {
	Type           InteractionType `json:"type"`
	DisplayText60  string          `json:"displayText60,omitempty"`
	DisplayText200 string          `json:"displayText200,omitempty"`
}

// DisplayTextAndPIN shows a short text above the PIN entry.
func DisplayTextAndPIN(displayText60 string) Interaction {
	return Interaction{Type: InteractionDisplayTextAndPIN, DisplayText60: displayText60}
}

// VerificationCodeChoice shows a short text and asks the user to pick the
// verification code that matches what the relying party displays.
func VerificationCodeChoice(displayText60 string) Interaction {
	return Interaction{Type: InteractionVerificationCodeChoice, DisplayText60: displayText60}
}

// ConfirmationMessage shows a longer message with an accept/refuse choice
// before the PIN screen.
func ConfirmationMessage(displayText200 string) Interaction {
	return Interaction{Type: InteractionConfirmationMessage, DisplayText200: displayText200}
}

// ConfirmationMessageAndVerificationCodeChoice combines the longer
// confirmation message with the verification code choice screen.
func ConfirmationMessageAndVerificationCodeChoice(displayText200 string) Interaction {
	return Interaction{Type: InteractionConfirmationMessageAndVerificationCodeChoice, DisplayText200: displayText200}
}

// Validate checks the mutually-exclusive-field invariant of the variant.
// The messages are part of the observable contract of this client.
func (i Interaction) Validate() error {
	switch i.Type {
	case InteractionDisplayTextAndPIN, InteractionVerificationCodeChoice:
		if i.DisplayText60 == "" {
			return NewClientConfigurationError(fmt.Sprintf("displayText60 must be set for interaction type %s", i.Type))
		}
		if utf8.RuneCountInString(i.DisplayText60) > displayText60MaxLength {
			return NewClientConfigurationError("displayText60 must not be longer than 60 characters")
		}
		if i.DisplayText200 != "" {
			return NewClientConfigurationError(fmt.Sprintf("displayText200 must be null for interaction type %s", i.Type))
		}
	case InteractionConfirmationMessage, InteractionConfirmationMessageAndVerificationCodeChoice:
		if i.DisplayText200 == "" {
			return NewClientConfigurationError(fmt.Sprintf("displayText200 must be set for interaction type %s", i.Type))
		}
		if utf8.RuneCountInString(i.DisplayText200) > displayText200MaxLength {
			return NewClientConfigurationError("displayText200 must not be longer than 200 characters")
		}
		if i.DisplayText60 != "" {
			return NewClientConfigurationError(fmt.Sprintf("displayText60 must be null for interaction type %s", i.Type))
		}
	default:
		return NewClientConfigurationError(fmt.Sprintf("unknown interaction type '%s'", i.Type))
	}
	return nil
}
