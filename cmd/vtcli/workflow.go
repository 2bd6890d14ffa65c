package main

import (
	"github.com/spf13/cobra"

	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/api"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/config"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/workflow"
)

// jobFlags collects the translation job parameters shared by the translate
// and create commands.
type jobFlags struct {
	translationID         string
	displayName           string
	description           string
	sourceLocale          string
	targetLocale          string
	voiceKind             string
	videoURL              string
	speakerCount          int
	subtitleMaxCharCount  int
	exportSubtitleInVideo bool
}

func (f *jobFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.translationID, "translation", "", "Translation id (generated when omitted)")
	flags.StringVar(&f.displayName, "name", "", "Display name for the translation")
	flags.StringVar(&f.description, "description", "", "Description for the translation")
	flags.StringVar(&f.sourceLocale, "source-locale", "", "Source locale, e.g. en-US")
	flags.StringVar(&f.targetLocale, "target-locale", "", "Target locale, e.g. es-ES")
	flags.StringVar(&f.voiceKind, "voice-kind", "PlatformVoice", "Voice kind: PlatformVoice or PersonalVoice")
	flags.StringVar(&f.videoURL, "video-url", "", "URL of the source video file")
	flags.IntVar(&f.speakerCount, "speaker-count", 0, "Number of speakers in the video")
	flags.IntVar(&f.subtitleMaxCharCount, "subtitle-max-chars", 0, "Maximum characters per subtitle segment")
	flags.BoolVar(&f.exportSubtitleInVideo, "export-subtitle-in-video", false, "Burn subtitles into the translated video")

	cmd.MarkFlagRequired("video-url")
	cmd.MarkFlagRequired("source-locale")
	cmd.MarkFlagRequired("target-locale")
}

func (f *jobFlags) request() workflow.Request {
	return workflow.Request{
		TranslationID: f.translationID,
		DisplayName:   f.displayName,
		Description:   f.description,
		Input: api.TranslationInput{
			SourceLocale:          f.sourceLocale,
			TargetLocale:          f.targetLocale,
			VoiceKind:             f.voiceKind,
			VideoFileURL:          f.videoURL,
			SpeakerCount:          f.speakerCount,
			SubtitleMaxCharCount:  f.subtitleMaxCharCount,
			ExportSubtitleInVideo: f.exportSubtitleInVideo,
		},
	}
}

// iterationFlags collects the optional seed for a refinement pass.
type iterationFlags struct {
	webvttURL  string
	webvttKind string
}

func (f *iterationFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.webvttURL, "webvtt-url", "", "URL of an edited subtitle file to seed the iteration")
	flags.StringVar(&f.webvttKind, "webvtt-kind", "TargetLocaleSubtitle", "Kind of the seed subtitle file")
}

func (f *iterationFlags) input() *api.IterationInput {
	if f.webvttURL == "" {
		return nil
	}
	return &api.IterationInput{
		WebvttFile: &api.WebvttFile{URL: f.webvttURL, Kind: f.webvttKind},
	}
}

func newTranslateCmd(cfg *config.Config) *cobra.Command {
	var job jobFlags
	var iter iterationFlags

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Run the full workflow: create, iterate, download",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(cfg); err != nil {
				return err
			}
			ctx, cancel := workflowContext()
			defer cancel()

			req := job.request()
			req.Iteration = iter.input()
			return exit(workflow.New(cfg).Run(ctx, req))
		},
	}
	job.bind(cmd)
	iter.bind(cmd)
	return cmd
}

func newCreateCmd(cfg *config.Config) *cobra.Command {
	var job jobFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a translation job and wait for it, without iterating",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(cfg); err != nil {
				return err
			}
			ctx, cancel := workflowContext()
			defer cancel()

			return exit(workflow.New(cfg).CreateOnly(ctx, job.request()))
		},
	}
	job.bind(cmd)
	return cmd
}

func newIterateCmd(cfg *config.Config) *cobra.Command {
	var translationID string
	var iter iterationFlags

	cmd := &cobra.Command{
		Use:   "iterate",
		Short: "Run a refinement pass over an existing translation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(cfg); err != nil {
				return err
			}
			ctx, cancel := workflowContext()
			defer cancel()

			return exit(workflow.New(cfg).Iterate(ctx, translationID, iter.input()))
		},
	}
	cmd.Flags().StringVar(&translationID, "translation", "", "Translation id to iterate on")
	cmd.MarkFlagRequired("translation")
	iter.bind(cmd)
	return cmd
}
