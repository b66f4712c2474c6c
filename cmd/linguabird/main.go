// Command linguabird renders vocabulary audio from word list files.
//
// Usage:
//
//	linguabird render -i words.txt -o words.mp3 [--direction en-ru] [--repeat 3] [--pause 500]
//	linguabird directions
package main

import (
	"fmt"
	"os"

	"linguabird/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.DefaultFactory).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
