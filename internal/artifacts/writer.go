// Package artifacts persists translation results to the local filesystem.
//
// Each completed iteration gets its own folder under the output directory:
//
//	{outputDir}/{translationID}/{iterationID}/
//	    translation.json   vendor translation record
//	    iteration.json     vendor iteration record
//	    video.mp4          translated video (extension follows the URL)
//	    source.vtt         source-locale subtitles
//	    target.vtt         target-locale subtitles
//	    metadata.json.vtt  per-segment metadata
//
// Result URLs the vendor left empty are skipped. Downloads go through the
// transport retrier, so a flaky blob store gets the same backoff as the API.
package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/api"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/logging"
	"github.com/gregschunemann/AI-Foundry-VideoTranslation/internal/transport"
)

// Downloader saves iteration results into a structured folder layout.
type Downloader struct {
	Retrier   *transport.Retrier
	OutputDir string
}

// Save writes the translation and iteration records plus every available
// result file, returning the directory everything landed in.
func (d *Downloader) Save(ctx context.Context, t *api.Translation, it *api.Iteration) (string, error) {
	dir := filepath.Join(d.OutputDir, t.ID, it.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, "translation.json"), t); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "iteration.json"), it); err != nil {
		return "", err
	}

	if it.Result == nil {
		logging.Warn("iteration has no result payload; only JSON records saved")
		return dir, nil
	}

	files := []struct {
		url  string
		name string
	}{
		{it.Result.TranslatedVideoFileURL, videoFileName(it.Result.TranslatedVideoFileURL)},
		{it.Result.SourceLocaleSubtitleWebvttFileURL, "source.vtt"},
		{it.Result.TargetLocaleSubtitleWebvttFileURL, "target.vtt"},
		{it.Result.MetadataJSONWebvttFileURL, "metadata.json.vtt"},
	}
	for _, f := range files {
		if f.url == "" {
			continue
		}
		dest := filepath.Join(dir, f.name)
		if err := d.download(ctx, f.url, dest); err != nil {
			return "", fmt.Errorf("download %s: %w", f.name, err)
		}
		logging.Debug("saved " + dest)
	}

	return dir, nil
}

// download fetches one result URL into dest. Result URLs are pre-signed, so
// no auth headers are attached.
func (d *Downloader) download(ctx context.Context, fileURL, dest string) error {
	resp, err := d.Retrier.Do(ctx, transport.RequestDescriptor{Method: http.MethodGet, URL: fileURL})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d fetching result file", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := f.ReadFrom(resp.Body); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// videoFileName derives a local name for the translated video, keeping the
// extension from the URL path and defaulting to .mp4.
func videoFileName(fileURL string) string {
	ext := ".mp4"
	if u, err := url.Parse(fileURL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}
	return "video" + ext
}

// writeJSON persists v pretty-printed so the records are diffable by hand.
func writeJSON(dest string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(dest), err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(dest), err)
	}
	return nil
}
