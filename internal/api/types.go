package api

// Operation and translation status strings reported by the vendor.
// Succeeded, Failed and Cancelled are terminal; no transition follows them.
const (
	StatusNotStarted = "NotStarted"
	StatusRunning    = "Running"
	StatusSucceeded  = "Succeeded"
	StatusFailed     = "Failed"
	StatusCancelled  = "Cancelled"
)

// TerminalStatus reports whether the given status string is terminal.
func TerminalStatus(status string) bool {
	switch status {
	case StatusSucceeded, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// TranslationInput is the caller-supplied definition of a translation job.
type TranslationInput struct {
	SourceLocale          string `json:"sourceLocale"`
	TargetLocale          string `json:"targetLocale"`
	VoiceKind             string `json:"voiceKind,omitempty"`
	VideoFileURL          string `json:"videoFileUrl"`
	SpeakerCount          int    `json:"speakerCount,omitempty"`
	SubtitleMaxCharCount  int    `json:"subtitleMaxCharCountPerSegment,omitempty"`
	ExportSubtitleInVideo bool   `json:"exportSubtitleInVideo,omitempty"`
}

// Translation is the vendor's representation of a translation job.
type Translation struct {
	ID                 string            `json:"id,omitempty"`
	DisplayName        string            `json:"displayName,omitempty"`
	Description        string            `json:"description,omitempty"`
	Status             string            `json:"status,omitempty"`
	Input              *TranslationInput `json:"input,omitempty"`
	LatestIteration    *Iteration        `json:"latestIteration,omitempty"`
	CreatedDateTime    string            `json:"createdDateTime,omitempty"`
	LastActionDateTime string            `json:"lastActionDateTime,omitempty"`
	FailureReason      string            `json:"failureReason,omitempty"`
}

// WebvttFile points an iteration at an edited subtitle file.
type WebvttFile struct {
	URL  string `json:"url"`
	Kind string `json:"kind,omitempty"`
}

// IterationInput is the caller-supplied definition of a refinement pass.
type IterationInput struct {
	WebvttFile            *WebvttFile `json:"webvttFile,omitempty"`
	SpeakerCount          int         `json:"speakerCount,omitempty"`
	SubtitleMaxCharCount  int         `json:"subtitleMaxCharCountPerSegment,omitempty"`
	ExportSubtitleInVideo bool        `json:"exportSubtitleInVideo,omitempty"`
}

// IterationResult carries the artifact URLs produced by a succeeded iteration.
// Fields the vendor left empty are omitted.
type IterationResult struct {
	TranslatedVideoFileURL            string `json:"translatedVideoFileUrl,omitempty"`
	SourceLocaleSubtitleWebvttFileURL string `json:"sourceLocaleSubtitleWebvttFileUrl,omitempty"`
	TargetLocaleSubtitleWebvttFileURL string `json:"targetLocaleSubtitleWebvttFileUrl,omitempty"`
	MetadataJSONWebvttFileURL         string `json:"metadataJsonWebvttFileUrl,omitempty"`
}

// Iteration is the vendor's representation of a refinement pass.
type Iteration struct {
	ID                 string           `json:"id,omitempty"`
	Status             string           `json:"status,omitempty"`
	Input              *IterationInput  `json:"input,omitempty"`
	Result             *IterationResult `json:"result,omitempty"`
	CreatedDateTime    string           `json:"createdDateTime,omitempty"`
	LastActionDateTime string           `json:"lastActionDateTime,omitempty"`
	FailureReason      string           `json:"failureReason,omitempty"`
}

// Operation is the status record of a server-side asynchronous operation.
type Operation struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
}

// PagedTranslations is one page of a translation listing.
type PagedTranslations struct {
	Value    []Translation `json:"value"`
	NextLink string        `json:"nextLink,omitempty"`
}
