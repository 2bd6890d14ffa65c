// Package workflow sequences the video-translation API calls: submit a
// translation, poll it, submit an iteration, poll it, download the results.
//
// The first non-Succeeded terminal outcome aborts the workflow with the
// last observed status. The workflow never resubmits a failed or cancelled
// operation; a fresh submission needs a fresh identifier and is the
// caller's decision.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/api"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/artifacts"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/banner"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/config"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/exitcode"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/logging"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/poll"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/transport"
)

// Request describes one full translation workflow.
type Request struct {
	TranslationID string // generated when empty
	DisplayName   string
	Description   string
	Input         api.TranslationInput

	// Iteration optionally seeds the refinement pass, e.g. with an
	// edited subtitle file. A nil value requests a default iteration.
	Iteration *api.IterationInput
}

// Orchestrator wires the API client, poller and downloader into the
// sequential workflow.
type Orchestrator struct {
	Client     *api.Client
	Poller     *poll.Poller
	Downloader *artifacts.Downloader
	Cfg        *config.Config
}

// New builds a fully wired Orchestrator from the validated configuration.
func New(cfg *config.Config) *Orchestrator {
	retrier := transport.NewRetrier(cfg.MaxRetries, cfg.RetryBaseDelay)
	retrier.OnRetry = func(retry int, delay time.Duration) {
		logging.Warn(fmt.Sprintf("transient failure, retry %d in %s", retry, logging.FormatDuration(delay)))
	}

	client := api.NewClient(cfg, retrier)
	poller := &poll.Poller{
		Fetcher:  client,
		Interval: cfg.PollInterval,
		MaxWait:  cfg.MaxWait,
	}
	poller.OnPoll = func(status string, elapsed time.Duration) {
		logging.Info(fmt.Sprintf("operation status: %s (waited %s)", status, logging.FormatDuration(elapsed)))
	}

	return &Orchestrator{
		Client:     client,
		Poller:     poller,
		Downloader: &artifacts.Downloader{Retrier: retrier, OutputDir: cfg.OutputDir},
		Cfg:        cfg,
	}
}

// Run executes the full workflow and returns the process exit code.
func (o *Orchestrator) Run(ctx context.Context, req Request) int {
	start := time.Now()
	translationID := req.TranslationID
	if translationID == "" {
		translationID = uuid.NewString()
	}
	banner.PrintStartupBanner(translationID, req.Input.SourceLocale, req.Input.TargetLocale, o.Cfg.Endpoint)

	if code := o.createAndWait(ctx, translationID, req); code != exitcode.Success {
		return code
	}

	iterationID := uuid.NewString()
	if code := o.iterateAndWait(ctx, translationID, iterationID, req.Iteration); code != exitcode.Success {
		return code
	}

	dir, code := o.download(ctx, translationID, iterationID)
	if code != exitcode.Success {
		return code
	}

	banner.PrintCompletionBanner(dir, logging.FormatDuration(time.Since(start)))
	return exitcode.Success
}

// CreateOnly submits and polls a translation without running an iteration.
func (o *Orchestrator) CreateOnly(ctx context.Context, req Request) int {
	translationID := req.TranslationID
	if translationID == "" {
		translationID = uuid.NewString()
	}
	banner.PrintStartupBanner(translationID, req.Input.SourceLocale, req.Input.TargetLocale, o.Cfg.Endpoint)

	if code := o.createAndWait(ctx, translationID, req); code != exitcode.Success {
		return code
	}
	logging.Success("translation " + translationID + " created; run `vtcli iterate` to produce results")
	return exitcode.Success
}

// Iterate runs a refinement pass over an existing translation, then
// downloads its artifacts.
func (o *Orchestrator) Iterate(ctx context.Context, translationID string, input *api.IterationInput) int {
	start := time.Now()
	iterationID := uuid.NewString()

	if code := o.iterateAndWait(ctx, translationID, iterationID, input); code != exitcode.Success {
		return code
	}

	dir, code := o.download(ctx, translationID, iterationID)
	if code != exitcode.Success {
		return code
	}

	banner.PrintCompletionBanner(dir, logging.FormatDuration(time.Since(start)))
	return exitcode.Success
}

func (o *Orchestrator) createAndWait(ctx context.Context, translationID string, req Request) int {
	logging.Step("Creating translation job " + translationID)

	operationID := uuid.NewString()
	body := &api.Translation{
		DisplayName: req.DisplayName,
		Description: req.Description,
		Input:       &req.Input,
	}
	if _, err := o.Client.CreateTranslation(ctx, translationID, operationID, body); err != nil {
		return o.reportError("create translation", err)
	}
	logging.Info("translation submitted, operation " + operationID)

	return o.waitForOperation(ctx, "translation", translationID, operationID)
}

func (o *Orchestrator) iterateAndWait(ctx context.Context, translationID, iterationID string, input *api.IterationInput) int {
	logging.Step("Creating iteration " + iterationID)

	if input == nil {
		input = &api.IterationInput{}
	}
	operationID := uuid.NewString()
	if _, err := o.Client.CreateIteration(ctx, translationID, iterationID, operationID, &api.Iteration{Input: input}); err != nil {
		return o.reportError("create iteration", err)
	}
	logging.Info("iteration submitted, operation " + operationID)

	return o.waitForOperation(ctx, "iteration", translationID, operationID)
}

// waitForOperation polls one submission to a terminal state and maps any
// non-success outcome to an exit code.
func (o *Orchestrator) waitForOperation(ctx context.Context, stage, translationID, operationID string) int {
	outcome, err := o.Poller.Wait(ctx, poll.Handle{OperationID: operationID})
	if err != nil {
		return o.reportError(stage, err)
	}

	switch outcome.State {
	case poll.StateSucceeded:
		logging.Success(stage + " operation succeeded")
		return exitcode.Success
	case poll.StateFailed:
		banner.PrintFailureBanner(stage, string(outcome.State), o.failureReason(ctx, translationID))
		return exitcode.OperationFailed
	case poll.StateCancelled:
		banner.PrintFailureBanner(stage, string(outcome.State), "")
		return exitcode.OperationCancelled
	default: // TimedOut
		banner.PrintFailureBanner(stage, string(outcome.State),
			fmt.Sprintf("no terminal status within %s; the server-side job is still running", logging.FormatDuration(o.Poller.MaxWait)))
		return exitcode.OperationTimedOut
	}
}

// failureReason fetches the translation record for its failure text.
// Best effort: an empty string is fine if the lookup itself fails.
func (o *Orchestrator) failureReason(ctx context.Context, translationID string) string {
	t, err := o.Client.GetTranslation(ctx, translationID)
	if err != nil || t.FailureReason == "" {
		return ""
	}
	return t.FailureReason
}

func (o *Orchestrator) download(ctx context.Context, translationID, iterationID string) (string, int) {
	logging.Step("Downloading artifacts")

	it, err := o.Client.GetIteration(ctx, translationID, iterationID)
	if err != nil {
		return "", o.reportError("fetch iteration", err)
	}
	t, err := o.Client.GetTranslation(ctx, translationID)
	if err != nil {
		return "", o.reportError("fetch translation", err)
	}

	dir, err := o.Downloader.Save(ctx, t, it)
	if err != nil {
		return "", o.reportError("download artifacts", err)
	}
	return dir, exitcode.Success
}

// reportError logs a step failure and maps it to an exit code, keeping
// interruption distinct from ordinary errors.
func (o *Orchestrator) reportError(stage string, err error) int {
	if ctxErr := contextError(err); ctxErr != nil {
		logging.Warn(stage + " interrupted")
		return exitcode.Interrupted
	}
	logging.Error(stage + " failed: " + err.Error())
	return exitcode.Error
}

func contextError(err error) error {
	for _, ctxErr := range []error{context.Canceled, context.DeadlineExceeded} {
		if errors.Is(err, ctxErr) {
			return ctxErr
		}
	}
	return nil
}
