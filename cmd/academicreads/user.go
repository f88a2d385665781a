package main

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	UserCommand.AddCommand(&UserAllCommand)
	UserCommand.AddCommand(&UserRegisterCommand)
	RootCmd.AddCommand(&UserCommand)
}

var UserCommand = cobra.Command{
	Use:   "user",
	Short: "Print a user",
	Long:  "Print the user with the given id",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			logger.Fatal("user wants 1 argument: the id of the user")
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			logger.Fatal("error converting user id: ", err)
		}

		user, err := userService.Get(id)
		if err != nil {
			logger.Fatal("error retrieving user:", err)
		}

		data, err := json.Marshal(user)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Print(string(data))
	},
}

var UserAllCommand = cobra.Command{
	Use:   "all",
	Short: "Print all users",
	Long:  "Print all users",
	Run: func(cmd *cobra.Command, args []string) {
		users, err := userStore.List()
		if err != nil {
			logger.Fatal("error listing users:", err)
		}

		for _, user := range users {
			data, err := json.Marshal(user)
			if err != nil {
				logger.Fatal(err)
			}
			logger.Print(string(data))
		}
	},
}

var UserRegisterCommand = cobra.Command{
	Use:   "register",
	Short: "Register a user",
	Long:  "Register a user from name, email and password",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 3 {
			logger.Fatal("user register wants 3 arguments: name, email and password")
		}

		user, err := userService.Register(args[0], args[1], args[2])
		if err != nil {
			logger.Fatal("error registering user:", err)
		}

		data, err := json.Marshal(user)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Print(string(data))
	},
}
