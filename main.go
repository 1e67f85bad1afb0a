package main

import "github.com/vishwajitvm/tracenest/internal/cmd"

func main() {
	cmd.Execute()
}
