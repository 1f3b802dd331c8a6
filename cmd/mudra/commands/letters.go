package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/sign"
)

var lettersCmd = &cobra.Command{
	Use:   "letters",
	Short: "Print the built-in letter library",
	Long: `Print the built-in letter definitions: the curl requirement for
each finger and any shape gates.

Letters earlier in the list win ties during matching.`,
	RunE: runLetters,
}

func init() {
	rootCmd.AddCommand(lettersCmd)
}

func runLetters(cmd *cobra.Command, args []string) error {
	bold := color.New(color.Bold)

	bold.Printf("%-8s", "Letter")
	for f := sign.Thumb; f < sign.NumFingers; f++ {
		bold.Printf("%-9s", f)
	}
	bold.Printf("%s\n", "Gates")

	for _, def := range sign.DefaultLibrary() {
		fmt.Printf("%-8s", def.Letter)
		for f := sign.Thumb; f < sign.NumFingers; f++ {
			fmt.Printf("%-9s", def.Curls[f])
		}

		var gates []string
		if def.RequirePinch {
			gates = append(gates, "pinch")
		}
		if def.RequireCircle {
			gates = append(gates, "circle")
		}
		if len(def.Directions) > 0 {
			gates = append(gates, fmt.Sprintf("%d directions", len(def.Directions)))
		}
		fmt.Println(strings.Join(gates, ", "))
	}

	return nil
}
