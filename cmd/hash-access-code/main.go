package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/proffreport/profreport-backend/internal/config"
	"github.com/proffreport/profreport-backend/internal/service"
	"golang.org/x/term"
)

// hash-access-code prints the bcrypt hash of an access code for use in
// ACCESS_CODE_HASHES. The code is read without echo when stdin is a terminal.
func main() {
	cfg := config.Load()

	code, err := readCode()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading code:", err)
		os.Exit(1)
	}
	if len(code) < 6 {
		fmt.Fprintln(os.Stderr, "Error: code must be at least 6 characters")
		os.Exit(1)
	}

	hash, err := service.HashAccessCode(code, cfg.BcryptCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error hashing code:", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}

func readCode() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	fmt.Fprint(os.Stderr, "Enter access code: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	fmt.Fprint(os.Stderr, "Repeat access code: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("codes do not match")
	}
	return strings.TrimSpace(string(first)), nil
}
