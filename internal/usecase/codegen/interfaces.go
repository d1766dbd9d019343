package codegen

import "context"

// Oracle is the external text-completion provider.
type Oracle interface {
	Complete(ctx context.Context, prompt, model string) (string, error)
}
