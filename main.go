package main

import (
	"os"

	"github.com/SevgiNurKARA/Personal-learning-coach/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
