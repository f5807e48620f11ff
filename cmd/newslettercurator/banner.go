package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

func printBanner(w io.Writer, colors bool) {
	title := color.New(color.Bold, color.FgCyan)
	if colors {
		title.EnableColor()
	} else {
		title.DisableColor()
	}
	fmt.Fprintln(w, title.Sprintf("Newsletter Curator %s", version))
	fmt.Fprintln(w)
}
