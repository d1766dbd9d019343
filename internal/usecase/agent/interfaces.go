package agent

import (
	"context"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
)

// Oracle is the external text-completion provider.
type Oracle interface {
	Complete(ctx context.Context, prompt, model string) (string, error)
}

// CodeGenerator produces code plus a prose explanation for a generation request.
type CodeGenerator interface {
	Generate(ctx context.Context, req *entity.GenerateCodeRequest) (code, explanation string, err error)
}
