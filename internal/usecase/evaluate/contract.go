package evaluate

import (
	"context"

	"github.com/prism-learn/prism/internal/usecase/genai"
)

// Generator produces validated structured output from the LLM.
type Generator interface {
	Object(ctx context.Context, spec genai.Spec, out any) error
}
