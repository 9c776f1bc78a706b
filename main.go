package main

import (
	"github.com/Saran-Akshintala/autocontent-pro-sub000/cmd"
)

func main() {
	cmd.Execute()
}
