// Package display provides output formatting helpers and the startup banner.
package display

import (
	"fmt"
	"os"

	"github.com/backmassage/slidecast/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Cyan if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Cyan)
	}
	fmt.Fprint(os.Stdout, ` ____  _ _     _                    _
/ ___|| (_) __| | ___  ___ __ _ ___| |_
\___ \| | |/ _`+"`"+` |/ _ \/ __/ _`+"`"+` / __| __|
 ___) | | | (_| |  __/ (_| (_| \__ \ |_
|____/|_|_|\__,_|\___|\___\__,_|___/\__|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
