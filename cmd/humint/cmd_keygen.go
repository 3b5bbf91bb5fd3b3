package main

import (
	"crypto/rand"
	"encoding/hex"
	"os"

	"github.com/alecthomas/kong"
)

type keygenCmd struct {
	Output string `arg:"" type:"path" help:"The output path for the wallet seed."`
}

func (cmd *keygenCmd) Run(_ *kong.Context) error {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return err
	}

	return os.WriteFile(cmd.Output, []byte(hex.EncodeToString(seed)+"\n"), 0600)
}
