package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"console/internal/domain"
)

const sessionExpired = `session expired: run "adminctl login"`

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(newEnv(os.Stdout)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

func errorMessage(err error) string {
	if errors.Is(err, domain.ErrUnauthorized) {
		return sessionExpired
	}
	return "error: " + err.Error()
}
