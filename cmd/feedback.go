package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"prepmate/internal/bootstrap"
	"prepmate/internal/bootstrap/logging"
	domainfeedback "prepmate/internal/domain/feedback"
	"prepmate/internal/errs"
	feedbackusecase "prepmate/internal/usecase/feedback"
)

// feedbackCmd runs the feedback pipeline once for a transcript file. The
// file holds a JSON array of {"speaker": ..., "text": ...} utterances.
var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Generate and store feedback for a transcript",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svcs services) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		interviewID, _ := cmd.Flags().GetString("interview")
		transcriptPath, _ := cmd.Flags().GetString("transcript")

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		raw, err := os.ReadFile(transcriptPath)
		if err != nil {
			return errs.Wrapf(err, "read transcript %q", transcriptPath)
		}

		var lines []struct {
			Speaker string `json:"speaker"`
			Text    string `json:"text"`
		}
		if err := json.Unmarshal(raw, &lines); err != nil {
			return errs.Wrap(err, "decode transcript")
		}

		transcript := make([]domainfeedback.Utterance, 0, len(lines))
		for _, line := range lines {
			transcript = append(transcript, domainfeedback.Utterance{
				Speaker: domainfeedback.ParseSpeaker(line.Speaker),
				Text:    line.Text,
			})
		}

		result, err := svcs.Feedback.GenerateFeedback(ctx, feedbackusecase.GenerateFeedbackInput{
			InterviewID: interviewID,
			Transcript:  transcript,
		})
		if err != nil {
			return errs.Wrap(err, "generate feedback")
		}

		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errs.Wrap(err, "encode result")
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(encoded)); err != nil {
			return errs.Wrap(err, "write feedback output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
	feedbackCmd.Flags().String("interview", "", "Interview id to attach feedback to")
	feedbackCmd.Flags().String("transcript", "", "Path to transcript JSON file")
	_ = feedbackCmd.MarkFlagRequired("interview")
	_ = feedbackCmd.MarkFlagRequired("transcript")
}
