// Package exitcode defines named exit codes for the vtcli CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and CI pipelines.
package exitcode

// Exit code constants for the video-translation workflow.
const (
	Success            = 0   // Workflow completed and artifacts downloaded
	Error              = 1   // Invalid args, misconfiguration, API or transport failure
	OperationFailed    = 2   // Server reported a Failed terminal status
	OperationCancelled = 3   // Server reported a Cancelled terminal status
	OperationTimedOut  = 4   // No terminal status within the maximum wait
	Interrupted        = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case OperationFailed:
		return "OperationFailed"
	case OperationCancelled:
		return "OperationCancelled"
	case OperationTimedOut:
		return "OperationTimedOut"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
