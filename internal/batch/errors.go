package batch

import (
	"errors"

	"github.com/sunthewhat/easy-cert-generator/internal/renderer"
)

// UserMessage is the only failure text shown to end users; details are logged.
const UserMessage = "Failed to generate certificates"

const cancelledMessage = "Certificate generation cancelled"

var (
	ErrNoTemplate   = renderer.ErrNoTemplate
	ErrCancelled    = errors.New("batch generation cancelled")
	ErrAborted      = errors.New("batch generation aborted")
	ErrBatchRunning = errors.New("a batch is already running")
)
