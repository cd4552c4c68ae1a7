package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/bogatykh/smartid-go-client/cmd"
)

func main() {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: false,
		ForceColors:   true,
	})
	cmd.Execute()
}
