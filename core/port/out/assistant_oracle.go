package out

import "context"

// OraclePort is the boundary to the language-model text completion backend.
// The model is treated as an unreliable black box: output may be empty,
// contain prose around JSON, or be malformed entirely. Callers must absorb
// failures with documented defaults rather than propagate them.
type OraclePort interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
