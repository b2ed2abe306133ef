package main

import (
	"os"

	vitalscmder "github.com/papercomputeco/vitals/cmd/vitals"
)

func main() {
	cmd := vitalscmder.NewVitalsCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
