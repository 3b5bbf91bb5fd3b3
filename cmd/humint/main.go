package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	humint "github.com/humintnet/client-go"
)

type cli struct {
	Keygen      keygenCmd      `cmd:"" help:"Generate a new wallet seed."`
	PublicKey   publicKeyCmd   `cmd:"" help:"Derive an identity public key from a wallet seed."`
	Epoch       epochCmd       `cmd:"" help:"Print the current access epoch."`
	Encrypt     encryptCmd     `cmd:"" help:"Encrypt a post for a tier and epoch."`
	Decrypt     decryptCmd     `cmd:"" help:"Decrypt a post bundle."`
	Grant       grantCmd       `cmd:"" help:"Re-wrap a post's content key for one recipient."`
	AcceptGrant acceptGrantCmd `cmd:"" help:"Decrypt a post bundle using a grant."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// loadSession reads the wallet seed, signs the identity message, and opens
// a crypto session for the account. The signer is returned too for
// commands that sign bundles.
func loadSession(seedPath, accountID string) (*humint.CryptoSession, *humint.LocalSigner, error) {
	seed, err := readSeed(seedPath)
	if err != nil {
		return nil, nil, err
	}

	signer, err := humint.NewLocalSigner(seed)
	if err != nil {
		return nil, nil, err
	}

	session, err := humint.LoginWithSigner(accountID, signer)
	if err != nil {
		return nil, nil, err
	}

	return session, signer, nil
}

// readSeed loads a hex-encoded 32-byte seed from a file, or prompts for it
// with no echo when path is "-".
func readSeed(path string) ([]byte, error) {
	var text []byte
	var err error

	if path == "-" {
		text, err = askSecret("Enter wallet seed (hex): ")
	} else {
		text, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	seed, err := hex.DecodeString(strings.TrimSpace(string(text)))
	if err != nil {
		return nil, fmt.Errorf("invalid seed encoding: %w", err)
	}

	return seed, nil
}

func askSecret(prompt string) ([]byte, error) {
	defer func() { _, _ = fmt.Fprintln(os.Stderr) }()

	_, _ = fmt.Fprint(os.Stderr, prompt)

	return term.ReadPassword(int(os.Stdin.Fd()))
}

func decodePublicKey(pathOrKey string) (*humint.PublicKey, error) {
	// Try decoding the key directly.
	if pk, err := humint.ParsePublicKey(pathOrKey); err == nil {
		return pk, nil
	}

	// Otherwise, try reading the contents of it as a file.
	b, err := os.ReadFile(pathOrKey)
	if err != nil {
		return nil, err
	}

	return humint.ParsePublicKey(strings.TrimSpace(string(b)))
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
