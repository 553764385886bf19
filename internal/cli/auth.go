package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sixteen1-6/Pong/internal/wire"
)

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Register a new account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Auth(wire.AuthRequest{
				Action:   wire.ActionRegister,
				Username: args[0],
				Password: args[1],
			})
			if err != nil {
				return err
			}
			fmt.Println(resp.Message)
			if !resp.Success {
				return errors.New("registration failed")
			}
			return nil
		},
	}
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and print a session token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Auth(wire.AuthRequest{
				Action:   wire.ActionLogin,
				Username: args[0],
				Password: args[1],
			})
			if err != nil {
				return err
			}
			if !resp.Success {
				fmt.Println(resp.Message)
				return errors.New("login failed")
			}
			fmt.Println(resp.Token)
			return nil
		},
	}
}
