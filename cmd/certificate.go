package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

var certificateCmd = &cobra.Command{
	Use:   "certificate",
	Short: "Run a certificate choice and print the chosen certificate",
	RunE: func(cmd *cobra.Command, args []string) error {
		rpUUID, rpName, err := relyingParty()
		if err != nil {
			return err
		}

		request := smartid.CertificateChoiceRequest{
			RelyingPartyUUID:       rpUUID,
			RelyingPartyName:       rpName,
			Identity:               identity(),
			CertificateLevel:       certificateLevel(),
			ShareMdClientIPAddress: true,
		}

		result, err := newClient().GetCertificate(cmd.Context(), request)
		if err != nil {
			return err
		}

		fmt.Printf("Subject: %s\n", result.Certificate.Subject)
		fmt.Printf("Certificate level: %s\n", result.CertificateLevel)
		fmt.Printf("Document number: %s\n", result.DocumentNumber)
		if result.DeviceIPAddress != "" {
			fmt.Printf("Device IP: %s\n", result.DeviceIPAddress)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(certificateCmd)
}
