// Command hashpw prints a bcrypt hash for FYYUR_EDITOR_PASSWORD_HASH.
//
//	go run ./cmd/hashpw 'correct horse battery staple'
package main

import (
	"fmt"
	"os"

	"github.com/sakif/fyyur/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}

	hash, err := auth.NewPasswordService().Hash(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
