package main

import (
	"encoding/json"
	"io"

	"github.com/alecthomas/kong"
)

type encryptCmd struct {
	Seed      string `arg:"" help:"The path to the wallet seed, or - to prompt."`
	AccountID string `arg:"" help:"The wallet account, e.g. alice.near."`
	Peer      string `arg:"" help:"The peer's public key, or a path to it."`
	Tier      string `arg:"" help:"The minimum access tier, e.g. press."`
	Epoch     string `arg:"" help:"The access epoch, e.g. 2025-06."`
	Plaintext string `arg:"" type:"existingfile" help:"The path to the plaintext file."`
	Bundle    string `arg:"" type:"path" default:"-" help:"The output path for the post bundle."`

	Sign bool `help:"Sign the bundle with the wallet key."`
}

func (cmd *encryptCmd) Run(_ *kong.Context) error {
	session, signer, err := loadSession(cmd.Seed, cmd.AccountID)
	if err != nil {
		return err
	}
	defer session.Close()

	peer, err := decodePublicKey(cmd.Peer)
	if err != nil {
		return err
	}

	src, err := openInput(cmd.Plaintext)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	post, err := session.EncryptPost(content, peer, cmd.Tier, cmd.Epoch)
	if err != nil {
		return err
	}

	if cmd.Sign {
		if err := post.Sign(signer); err != nil {
			return err
		}
	}

	dst, err := openOutput(cmd.Bundle)
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	enc := json.NewEncoder(dst)
	enc.SetIndent("", "  ")

	return enc.Encode(post)
}
