package oracle

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/config"
	"github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"
	pkghttp "github.com/NinhThienLuan/404-Brain-Not-Found/pkg/http"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const apiKeyHeader = "x-goog-api-key"

// generateContentRequest mirrors the provider's generateContent payload.
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

type Connector struct {
	config    config.OracleConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.OracleConfig, logger *zap.Logger) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		BaseURL: cfg.Url,
		Logger:  logger,
	}

	return &Connector{
		config: cfg,
		connector: pkghttp.NewConnector(
			connCfg,
			pkghttp.WithRequestTimeout(cfg.Timeout),
			pkghttp.WithConnTimeout(cfg.ConnTimeout),
			pkghttp.WithRequestLogging(),
			pkghttp.WithAPIKey(apiKeyHeader, cfg.APIKey),
		),
		logger: logger,
	}
}

// Complete sends a single-turn prompt to the text-completion provider and
// returns the first candidate's text.
func (c *Connector) Complete(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = c.config.DefaultModel
	}

	callID := uuid.NewString()
	ctxzap.Info(ctx, "calling completion provider",
		zap.String("model", model),
		zap.String("call_id", callID),
		zap.Int("prompt_length", len(prompt)),
	)

	req := &generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
	}

	endpoint := fmt.Sprintf("/v1beta/models/%s:generateContent", model)

	var resp generateContentResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		ctxzap.Error(ctx, "completion provider call failed",
			zap.String("call_id", callID),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", entity.ErrOracleUnavailable, err)
	}

	text := extractText(&resp)
	if strings.TrimSpace(text) == "" {
		return "", entity.ErrEmptyOracleReply
	}

	ctxzap.Info(ctx, "completion received",
		zap.String("call_id", callID),
		zap.Int("reply_length", len(text)),
	)

	return text, nil
}

func extractText(resp *generateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}
