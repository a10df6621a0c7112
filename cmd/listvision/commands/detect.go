package commands

import (
	"encoding/json"
	"fmt"
	"image"

	disintegration "github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/ironsheep/listvision-mcp/internal/imaging"
	"github.com/ironsheep/listvision-mcp/internal/vision"
)

// detect <kind> <image>: run one detection and print the report.
func detectCmd(a *app) *cobra.Command {
	var (
		asJSON   bool
		annotate string
		boxColor string
	)

	cmd := &cobra.Command{
		Use:   "detect <kind> <image>",
		Short: "Run a detection (classify, rectangle, face, animal, text) on an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := vision.ParseKind(args[0])
			if err != nil {
				return err
			}
			img, err := imaging.NewImageCache().Load(args[1])
			if err != nil {
				return err
			}

			session := vision.NewSession(a.newDetector())
			session.Select(img, args[1])
			detections, err := session.Run(cmd.Context(), kind)
			if err != nil {
				a.logger.Debug("detection failed", "kind", kind, "error", err)
			}

			if annotate != "" {
				if err := saveAnnotated(annotate, img, session.State().Boxes, boxColor); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"kind":       kind,
					"detections": detections,
					"state":      session.State(),
				})
			}
			_, err = fmt.Fprintln(out, session.State().Result)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print detections and session state as JSON")
	cmd.Flags().StringVar(&annotate, "annotate", "", "write the image with bounding boxes drawn on it to this file")
	cmd.Flags().StringVar(&boxColor, "color", imaging.DefaultBoxColor, "outline color for --annotate")
	return cmd
}

// saveAnnotated writes img with boxes outlined to path. The format follows
// the file extension.
func saveAnnotated(path string, img image.Image, boxes []vision.BoundingBox, hexColor string) error {
	rects := make([]image.Rectangle, len(boxes))
	for i, b := range boxes {
		rects[i] = b.Pixels(img.Bounds())
	}
	if err := disintegration.Save(imaging.Annotate(img, rects, hexColor), path); err != nil {
		return fmt.Errorf("failed to save annotated image: %w", err)
	}
	return nil
}
