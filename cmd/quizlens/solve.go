package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/quizlens/internal/app"
	"github.com/hyperifyio/quizlens/internal/report"
)

func addPageFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("file", "", "Read the page from an HTML file (- for stdin)")
	f.String("url", "", "Fetch the page from a URL")
	f.Bool("browser", false, "Open the URL in Chrome instead of fetching it")
	f.String("browser-url", "", "DevTools websocket of a running Chrome")
	f.Bool("headful", false, "Show the Chrome window")
	f.String("out", "", "Write the marked-up HTML here (static pages)")
	f.String("report", "", "Write an outcome report (.md, .json or .pdf)")
}

func sourceFrom(cmd *cobra.Command) app.Source {
	f := cmd.Flags()
	var src app.Source
	src.File, _ = f.GetString("file")
	src.URL, _ = f.GetString("url")
	src.Browser, _ = f.GetBool("browser")
	if f.Lookup("image") != nil {
		src.Image, _ = f.GetString("image")
	}
	return src
}

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Detect the question and answers, ask the oracle and highlight its answer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPass(cmd, app.ModeText)
		},
	}
	addPageFlags(cmd)
	return cmd
}

func newScreenshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screenshot",
		Short: "Send a screenshot of the page to the oracle and highlight its answer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPass(cmd, app.ModeScreenshot)
		},
	}
	addPageFlags(cmd)
	cmd.Flags().String("image", "", "Screenshot file for static pages")
	return cmd
}

func runPass(cmd *cobra.Command, mode app.Mode) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg, notifier(cmd))
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	if out := a.Solver.Precondition(mode); out != nil {
		if err := writeOutputs(cmd, nil, out.Summary()); err != nil {
			return err
		}
		return exitFor(*out)
	}
	page, err := a.Open(ctx, sourceFrom(cmd))
	if err != nil {
		return err
	}
	var out app.Outcome
	if mode == app.ModeScreenshot {
		out = a.Solver.SolveScreenshot(ctx, page)
	} else {
		out = a.Solver.SolveText(ctx, page)
	}
	if err := writeOutputs(cmd, page, out.Summary()); err != nil {
		return err
	}
	a.Hold(ctx)
	return exitFor(out)
}

func writeOutputs(cmd *cobra.Command, page app.Page, sum report.Summary) error {
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		sp, ok := page.(*app.StaticPage)
		if !ok {
			log.Warn().Msg("--out applies to static pages only")
		} else if err := os.WriteFile(path, []byte(sp.HTML()), 0o644); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
	}
	if path, _ := cmd.Flags().GetString("report"); path != "" {
		if err := report.WriteFile(path, sum); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

// exitFor maps outcomes to the exit code policy: 0 when an answer was
// highlighted or shown, 2 when detection failed, 1 otherwise.
func exitFor(out app.Outcome) error {
	switch out.Kind {
	case app.KindHighlighted, app.KindManual:
		return nil
	case app.KindDetectionFailed:
		return &exitError{code: 2, err: out.Err}
	}
	err := out.Err
	if err == nil {
		err = errors.New(string(out.Kind))
	}
	return &exitError{code: 1, err: err}
}

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Show the detected question and answers without asking the oracle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := app.New(ctx, cfg, notifier(cmd))
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}
			defer a.Close()
			page, err := a.Open(ctx, sourceFrom(cmd))
			if err != nil {
				return err
			}
			res, err := a.Solver.Detect(ctx, page)
			w := cmd.OutOrStdout()
			var df *app.DetectionFailure
			if errors.As(err, &df) {
				fmt.Fprintln(w, df.Error())
				return &exitError{code: 2, err: err}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Question: %s\n", res.QuestionText())
			fmt.Fprintf(w, "Strategy: %s\n", res.Strategy)
			for i, ans := range res.AnswerTexts() {
				fmt.Fprintf(w, "%2d. %s\n", i+1, ans)
			}
			sum := report.Summary{Mode: string(app.ModeDetect), Kind: "detected", Strategy: string(res.Strategy), Question: res.QuestionText(), Answers: res.AnswerTexts()}
			return writeOutputs(cmd, page, sum)
		},
	}
	addPageFlags(cmd)
	return cmd
}
