package main

import (
	"io"

	"github.com/alecthomas/kong"
)

type publicKeyCmd struct {
	Seed      string `arg:"" help:"The path to the wallet seed, or - to prompt."`
	AccountID string `arg:"" help:"The wallet account, e.g. alice.near."`
	Output    string `arg:"" type:"path" default:"-" help:"The output path for the public key."`
}

func (cmd *publicKeyCmd) Run(_ *kong.Context) error {
	session, _, err := loadSession(cmd.Seed, cmd.AccountID)
	if err != nil {
		return err
	}
	defer session.Close()

	dst, err := openOutput(cmd.Output)
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	_, err = io.WriteString(dst, session.PublicKey().String()+"\n")

	return err
}
