package main

import (
	"encoding/json"

	"github.com/alecthomas/kong"

	humint "github.com/humintnet/client-go"
)

type acceptGrantCmd struct {
	Seed      string `arg:"" help:"The path to the wallet seed, or - to prompt."`
	AccountID string `arg:"" help:"The wallet account, e.g. carol.near."`
	Granter   string `arg:"" help:"The granter's public key, or a path to it."`
	Bundle    string `arg:"" type:"existingfile" help:"The path to the post bundle."`
	Grant     string `arg:"" type:"existingfile" help:"The path to the grant."`
	Plaintext string `arg:"" type:"path" default:"-" help:"The output path for the plaintext."`
}

func (cmd *acceptGrantCmd) Run(_ *kong.Context) error {
	session, _, err := loadSession(cmd.Seed, cmd.AccountID)
	if err != nil {
		return err
	}
	defer session.Close()

	granter, err := decodePublicKey(cmd.Granter)
	if err != nil {
		return err
	}

	post, err := readBundle(cmd.Bundle)
	if err != nil {
		return err
	}

	src, err := openInput(cmd.Grant)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	var grant humint.Grant
	if err := json.NewDecoder(src).Decode(&grant); err != nil {
		return err
	}

	content, err := session.AcceptGrant(post, &grant, granter)
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
