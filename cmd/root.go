/*
 * Smart-ID client for Go
 * Copyright (C) 2021. The smartid-go-client authors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bogatykh/smartid-go-client/logging"
	"github.com/bogatykh/smartid-go-client/pkg/client"
	"github.com/bogatykh/smartid-go-client/pkg/connector"
	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

var rootCmd = &cobra.Command{
	Use:   "smartid",
	Short: "command line client for the Smart-ID identity service",
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("url", connector.DemoEnvironmentURL, "base URL of the identity service")
	flags.String("relying-party-uuid", "00000000-0000-0000-0000-000000000000", "relying party UUID")
	flags.String("relying-party-name", "DEMO", "relying party name")
	flags.String("certificate-level", string(smartid.CertificateLevelQualified), "requested certificate level (ADVANCED or QUALIFIED)")
	flags.String("document-number", "", "target the account by document number")
	flags.String("semantics-identifier", "", "target the account by semantics identifier, e.g. PNOEE-31111111111")
	flags.Duration("socket-open-time", 30*time.Second, "long-poll timeout the service may hold a status response open for")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	bindFlags(flags)
}

func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		if err := viper.BindPFlag(flag.Name, flag); err != nil {
			panic(err)
		}
	})
}

func initConfig() {
	viper.SetConfigName("smartid")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("smartid")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		logging.Log().Infof("loaded configuration from %s", viper.ConfigFileUsed())
	}

	if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// newClient builds the protocol client from the configured base URL.
func newClient() *client.Client {
	rest := connector.NewRestConnector(viper.GetString("url"))
	if socketOpen := viper.GetDuration("socket-open-time"); socketOpen > 0 {
		rest.SetSessionStatusResponseSocketOpenTime(socketOpen)
	}
	return client.New(rest)
}

// relyingParty reads and sanity-checks the relying party flags.
func relyingParty() (string, string, error) {
	rpUUID := viper.GetString("relying-party-uuid")
	rpName := viper.GetString("relying-party-name")
	if _, err := uuid.Parse(rpUUID); err != nil {
		return "", "", fmt.Errorf("relying-party-uuid is not a valid UUID: %w", err)
	}
	return rpUUID, rpName, nil
}

// identity reads the account targeting flags.
func identity() smartid.Identity {
	if documentNumber := viper.GetString("document-number"); documentNumber != "" {
		return smartid.IdentityByDocumentNumber(documentNumber)
	}
	return smartid.IdentityBySemanticsIdentifier(smartid.SemanticsIdentifierFromString(viper.GetString("semantics-identifier")))
}

func certificateLevel() smartid.CertificateLevel {
	return smartid.CertificateLevel(viper.GetString("certificate-level"))
}
