package main

import "github.com/clubhousefc/backend/cmd/clubhousectl/commands"

func main() {
	commands.Execute()
}
