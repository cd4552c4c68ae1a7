package cmd

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bogatykh/smartid-go-client/logging"
	"github.com/bogatykh/smartid-go-client/pkg/smartid"
	"github.com/bogatykh/smartid-go-client/pkg/validator"
)

var authenticateCmd = &cobra.Command{
	Use:   "authenticate",
	Short: "Authenticate a user and print the authenticated identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		rpUUID, rpName, err := relyingParty()
		if err != nil {
			return err
		}

		// a random challenge; the user confirms the derived code on both ends
		challenge := make([]byte, 64)
		if _, err := rand.Read(challenge); err != nil {
			return err
		}
		data := &smartid.SignableData{Data: challenge, HashType: smartid.SHA512}
		hash, err := data.CalculateHash()
		if err != nil {
			return err
		}
		fmt.Printf("Verification code: %s\n", hash.VerificationCode())

		request := smartid.AuthenticationRequest{
			RelyingPartyUUID: rpUUID,
			RelyingPartyName: rpName,
			Identity:         identity(),
			CertificateLevel: certificateLevel(),
			SignableHash:     &hash,
			AllowedInteractionsOrder: []smartid.Interaction{
				smartid.DisplayTextAndPIN(displayText),
			},
			ShareMdClientIPAddress: true,
		}

		response, err := newClient().Authenticate(cmd.Context(), request)
		if err != nil {
			return err
		}

		responseValidator := validator.New()
		for _, path := range trustedCertificateFiles {
			pemBytes, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if err := responseValidator.AddTrustedCertificatesFromPEM(pemBytes); err != nil {
				return err
			}
		}
		if len(trustedCertificateFiles) == 0 {
			logging.Log().Warn("no trusted certificates configured, validation will fail the trust check")
		}

		authenticatedIdentity, err := responseValidator.Validate(response)
		if err != nil {
			return err
		}

		fmt.Printf("Authenticated: %s %s\n", authenticatedIdentity.GivenName, authenticatedIdentity.Surname)
		fmt.Printf("Identity number: %s (%s)\n", authenticatedIdentity.IdentityNumber, authenticatedIdentity.Country)
		fmt.Printf("Document number: %s\n", authenticatedIdentity.DocumentNumber)
		if authenticatedIdentity.DateOfBirth != nil {
			fmt.Printf("Date of birth: %s\n", authenticatedIdentity.DateOfBirth.Format("2006-01-02"))
		}
		return nil
	},
}

var (
	displayText             string
	trustedCertificateFiles []string
)

func init() {
	authenticateCmd.Flags().StringVar(&displayText, "display-text", "Log in?", "short text shown above the PIN entry")
	authenticateCmd.Flags().StringSliceVar(&trustedCertificateFiles, "trusted-certificates", nil, "PEM files with trusted CA certificates")
	rootCmd.AddCommand(authenticateCmd)
}
