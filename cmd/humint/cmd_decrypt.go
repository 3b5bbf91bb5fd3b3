package main

import (
	"encoding/json"

	"github.com/alecthomas/kong"

	humint "github.com/humintnet/client-go"
	"github.com/humintnet/client-go/internal/crypto"
)

type decryptCmd struct {
	Seed      string `arg:"" help:"The path to the wallet seed, or - to prompt."`
	AccountID string `arg:"" help:"The wallet account, e.g. bob.near."`
	Peer      string `arg:"" help:"The source's public key, or a path to it."`
	Bundle    string `arg:"" type:"existingfile" help:"The path to the post bundle."`
	Plaintext string `arg:"" type:"path" default:"-" help:"The output path for the plaintext."`

	SourceSigPk string `help:"Require a valid source signature by this base64url Ed25519 key."`
}

func (cmd *decryptCmd) Run(_ *kong.Context) error {
	session, _, err := loadSession(cmd.Seed, cmd.AccountID)
	if err != nil {
		return err
	}
	defer session.Close()

	peer, err := decodePublicKey(cmd.Peer)
	if err != nil {
		return err
	}

	post, err := readBundle(cmd.Bundle)
	if err != nil {
		return err
	}

	if cmd.SourceSigPk != "" {
		pinned, err := crypto.DecodeBase64(cmd.SourceSigPk)
		if err != nil {
			return err
		}
		if err := post.VerifySource(pinned); err != nil {
			return err
		}
	}

	content, err := session.DecryptPost(post, peer)
	if err != nil {
		return err
	}

	dst, err := openOutput(cmd.Plaintext)
	if err != nil {
		return err
	}
	defer func() { _ = dst.Close() }()

	_, err = dst.Write(content)

	return err
}

func readBundle(path string) (*humint.EncryptedPost, error) {
	src, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	var post humint.EncryptedPost
	if err := json.NewDecoder(src).Decode(&post); err != nil {
		return nil, err
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return &post, nil
}
