package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
)

var userFlags struct {
	username string
	email    string
	password string
	name     string
	role     string
}

// storefront user:create
var userCreateCmd = &cobra.Command{
	Use:   "user:create",
	Short: "Create an account with any role (including admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := models.ParseRole(userFlags.role)
		if err != nil {
			return err
		}
		if err := bootDB(); err != nil {
			return err
		}

		u, err := services.NewAuthService().CreateUser(cmd.Context(), services.RegisterInput{
			Username: userFlags.username,
			Email:    userFlags.email,
			Password: userFlags.password,
			Name:     userFlags.name,
		}, role)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s %q (id %d)\n", u.Role, u.Username, u.ID)
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userFlags.username, "username", "", "login name (defaults to the email)")
	f.StringVar(&userFlags.email, "email", "", "email address")
	f.StringVar(&userFlags.password, "password", "", "password, at least 6 characters")
	f.StringVar(&userFlags.name, "name", "", "full name, split on the first space")
	f.StringVar(&userFlags.role, "role", string(models.RoleUser), "admin, seller or user")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
}
