package main

import (
	"encoding/json"

	"github.com/alecthomas/kong"
)

type grantCmd struct {
	Seed      string `arg:"" help:"The path to the wallet seed, or - to prompt."`
	AccountID string `arg:"" help:"The wallet account, e.g. alice.near."`
	Peer      string `arg:"" help:"The public key the post was encrypted with, or a path to it."`
	Recipient string `arg:"" help:"The recipient's public key, or a path to it."`
	Bundle    string `arg:"" type:"existingfile" help:"The path to the post bundle."`
	Output    string `arg:"" type:"path" default:"-" help:"The output path for the grant."`
}

func (cmd *grantCmd) Run(_ *kong.Context) error {
	session, _, err := loadSession(cmd.Seed, cmd.AccountID)
	if err != nil {
		return err
	}
	defer session.Close()

	peer, err := decodePublicKey(cmd.Peer)
	if err != nil {
		return err
	}

	recipient, err := decodePublicKey(cmd.Recipient)
	if err != nil {
		return err
	}

	post, err := readBundle(cmd.Bundle)
	if err != nil {
		return err
	}

	grant, err := session.GrantPost(post, peer, recipient)
	if err != nil {
		return err
	}

	dst, err := openOutput(cmd.Output)
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	enc := json.NewEncoder(dst)
	enc.SetIndent("", "  ")

	return enc.Encode(grant)
}
