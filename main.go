package main

import "github.com/atikulmunna/matchlog/internal/cmd"

func main() {
	cmd.Execute()
}
