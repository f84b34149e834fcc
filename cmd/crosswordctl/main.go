// Command crosswordctl is a thin HTTP client for the crossword server,
// grounded on the roach88-nysm CLI's RootOptions/AddCommand structure
// but pointed at a running server instead of an in-process engine.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("crosswordctl: command failed")
		os.Exit(1)
	}
}
