package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

var signCmd = &cobra.Command{
	Use:   "sign [file]",
	Short: "Sign a file's digest, or a precomputed hash, and print the signature",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rpUUID, rpName, err := relyingParty()
		if err != nil {
			return err
		}

		var hash smartid.SignableHash
		var subject string
		switch {
		case signHash != "":
			subject = "the provided hash"
			hash, err = smartid.NewSignableHashFromBase64(signHash, smartid.HashType(signHashType))
			if err != nil {
				return err
			}
		case len(args) == 1:
			subject = fmt.Sprintf("file %s", args[0])
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			data := &smartid.SignableData{Data: content, HashType: smartid.HashType(signHashType)}
			hash, err = data.CalculateHash()
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("either a file argument or --hash must be given")
		}
		fmt.Printf("Verification code: %s\n", hash.VerificationCode())

		request := smartid.SignatureRequest{
			RelyingPartyUUID: rpUUID,
			RelyingPartyName: rpName,
			Identity:         identity(),
			CertificateLevel: certificateLevel(),
			SignableHash:     &hash,
			AllowedInteractionsOrder: []smartid.Interaction{
				smartid.ConfirmationMessage(fmt.Sprintf("Sign %s?", subject)),
				smartid.DisplayTextAndPIN("Sign?"),
			},
		}

		result, err := newClient().Sign(cmd.Context(), request)
		if err != nil {
			return err
		}

		fmt.Printf("Signature (%s): %s\n", result.AlgorithmName, result.ValueBase64())
		fmt.Printf("Document number: %s\n", result.DocumentNumber)
		fmt.Printf("Interaction flow used: %s\n", result.InteractionFlowUsed)
		return nil
	},
}

var (
	signHashType string
	signHash     string
)

func init() {
	signCmd.Flags().StringVar(&signHashType, "hash-type", string(smartid.SHA512), "hash algorithm (SHA256, SHA384 or SHA512)")
	signCmd.Flags().StringVar(&signHash, "hash", "", "precomputed hash to sign, standard base64")
	rootCmd.AddCommand(signCmd)
}
