package main

import (
	"os"

	"github.com/ITS-ERP/qms-risk-backend/cmd/riskctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
