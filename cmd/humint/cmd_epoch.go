package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	humint "github.com/humintnet/client-go"
)

type epochCmd struct {
	Next bool `help:"Print the next epoch instead of the current one."`
}

func (cmd *epochCmd) Run(_ *kong.Context) error {
	epoch := humint.CurrentEpoch()

	if cmd.Next {
		next, err := humint.NextEpoch(epoch)
		if err != nil {
			return err
		}
		epoch = next
	}

	fmt.Println(epoch)

	return nil
}
