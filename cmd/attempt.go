package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/service"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/session"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	attemptUser        string
	attemptAssessment  uint
	attemptAnswersFile string
	attemptWait        bool
)

// attemptCmd takes an assessment in-process: start, answer from a file keyed
// by question id, then submit (or let the countdown submit with --wait).
var attemptCmd = &cobra.Command{
	Use:   "attempt",
	Short: "Take an assessment from the command line",
	RunE:  runAttempt,
}

func init() {
	attemptCmd.Flags().StringVar(&attemptUser, "user", "", "Candidate user id")
	attemptCmd.Flags().UintVar(&attemptAssessment, "assessment", 0, "Assessment id")
	attemptCmd.Flags().StringVar(&attemptAnswersFile, "answers", "", `JSON file of {"<question id>": answer}`)
	attemptCmd.Flags().BoolVar(&attemptWait, "wait", false, "Wait for the time limit instead of submitting immediately")
	_ = attemptCmd.MarkFlagRequired("user")
	_ = attemptCmd.MarkFlagRequired("assessment")
}

func runAttempt(cmd *cobra.Command, _ []string) error {
	answers, err := readAnswers(attemptAnswersFile)
	if err != nil {
		return err
	}

	var (
		attempts service.AttemptService
		grading  service.GradingService
	)
	app := fx.New(
		coreModule(cfg),
		fx.Populate(&attempts, &grading),
		fx.NopLogger,
	)
	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Shutdown failed")
		}
	}()

	ctx := cmd.Context()
	s := session.New(attemptUser, attemptAssessment, attempts, grading)
	view, err := s.Start(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d questions, %s\n", view.Title, len(view.Questions), time.Duration(view.TimeLimit)*time.Second)

	for id, answer := range answers {
		if err := s.SetAnswer(id, answer); err != nil {
			return fmt.Errorf("question %d: %w", id, err)
		}
	}

	if attemptWait {
		<-s.Done()
	} else if _, err := s.Submit(ctx); err != nil {
		return err
	}
	result, err := s.Result()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readAnswers(path string) (map[uint]json.RawMessage, error) {
	out := map[uint]json.RawMessage{}
	if path == "" {
		return out, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("answers file is not a JSON object: %w", err)
	}
	for key, answer := range raw {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("answers file key %q is not a question id", key)
		}
		out[uint(id)] = answer
	}
	return out, nil
}
