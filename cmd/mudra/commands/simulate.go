package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/recognize"
)

var simulateFrames int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the recognizer over built-in sample poses",
	Long: `Run each built-in sample pose through the recognition pipeline and
print the stabilized letter. Useful for checking tuning changes without a
camera.

Examples:
  # Recognize all sample poses
  mudra simulate

  # Hold each pose for more frames before reading the result
  mudra simulate --frames 15`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simulateFrames, "frames", 10, "Frames to hold each pose")
	rootCmd.AddCommand(simulateCmd)
}

// samplePoses lists the built-in landmark fixtures with the letters they
// depict.
func samplePoses() []struct {
	Name  string
	Hand  detector.HandLandmarks
	Depic string
} {
	return []struct {
		Name  string
		Hand  detector.HandLandmarks
		Depic string
	}{
		{"fist, thumb at side", detector.FistLandmarks(), "A"},
		{"flat hand", detector.FlatHandLandmarks(), "B"},
		{"fist, thumb tucked", detector.TuckedFistLandmarks(), "E"},
		{"index pointing up", detector.PointingLandmarks(), "D"},
		{"thumb and index L", detector.LShapeLandmarks(), "L"},
		{"pinky up", detector.PinkyUpLandmarks(), "I"},
		{"hang loose", detector.HangLooseLandmarks(), "Y"},
		{"index and middle together", detector.TwoUpLandmarks(), "U"},
		{"index and middle spread", detector.VictoryLandmarks(), "V"},
		{"three fingers up", detector.ThreeUpLandmarks(), "W"},
		{"thumb touching index", detector.PinchLandmarks(), "F"},
		{"fingertips circled", detector.RingShapeLandmarks(), "O"},
	}
}

func runSimulate(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	mismatches := 0
	for _, pose := range samplePoses() {
		rec := recognize.NewDefault()
		hands := []detector.HandLandmarks{pose.Hand}

		var result recognize.Result
		for i := 0; i < simulateFrames; i++ {
			result = rec.Process(hands)
		}

		switch {
		case result.Label == nil:
			red.Printf("✗ %-28s no letter (expected %s)\n", pose.Name, pose.Depic)
			mismatches++
		case *result.Label != pose.Depic:
			yellow.Printf("? %-28s %s (expected %s, confidence %.2f)\n",
				pose.Name, *result.Label, pose.Depic, result.Confidence)
			mismatches++
		default:
			green.Printf("✓ %-28s %s (confidence %.2f)\n", pose.Name, *result.Label, result.Confidence)
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("%d of %d poses did not recognize as depicted", mismatches, len(samplePoses()))
	}
	return nil
}
