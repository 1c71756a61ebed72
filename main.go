package main

import "github.com/kamer1337/go-bootimg/cmd"

func main() {
	cmd.Execute()
}
