package main

import (
	"github.com/axellelanca/catalog/cmd"
	_ "github.com/axellelanca/catalog/cmd/cli"
	_ "github.com/axellelanca/catalog/cmd/server"
)

func main() {
	cmd.Execute()
}
