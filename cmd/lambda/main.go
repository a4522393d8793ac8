package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/fwbo-viewer/fwbo/internal/logger"
	"github.com/fwbo-viewer/fwbo/internal/model"
	"github.com/fwbo-viewer/fwbo/internal/parser"
	"github.com/fwbo-viewer/fwbo/internal/provider"
	"github.com/fwbo-viewer/fwbo/internal/render"
	"github.com/fwbo-viewer/fwbo/internal/result"
)

// LambdaEvent is the invocation payload (e.g. from API Gateway).
type LambdaEvent struct {
	Model    string `json:"model"`             // model document (raw or base64 if isBase64)
	Diagram  string `json:"diagram,omitempty"` // diagram document, same encoding as model
	Format   string `json:"format,omitempty"`  // xml or json; empty detects
	IsBase64 bool   `json:"isBase64,omitempty"`
	NoSVG    bool   `json:"noSvg,omitempty"`
}

// LambdaResponse is returned to the client.
type LambdaResponse struct {
	StatusCode int              `json:"statusCode"`
	Success    bool             `json:"success"`
	Errors     []result.Error   `json:"errors,omitempty"`
	Warnings   []result.Warning `json:"warnings,omitempty"`
	Data       *model.Data      `json:"data,omitempty"`
	SVG        string           `json:"svg,omitempty"`
}

// APIGatewayResponse is the shape expected by API Gateway proxy integration (body = JSON string).
type APIGatewayResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

var renderer = render.New(render.DefaultOptions(), logger.New())

func handler(ctx context.Context, event LambdaEvent) (APIGatewayResponse, error) {
	out := LambdaResponse{StatusCode: 200}

	modelText, diagramText := event.Model, event.Diagram
	if event.IsBase64 {
		var err error
		if modelText, err = decode(modelText); err != nil {
			return wrap(invalid(out, "invalid base64 model: "+err.Error())), nil
		}
		if diagramText, err = decode(diagramText); err != nil {
			return wrap(invalid(out, "invalid base64 diagram: "+err.Error())), nil
		}
	}

	opts := parser.DefaultOptions()
	opts.Format = event.Format
	res, err := parser.New(opts, logger.New()).Parse(modelText, diagramText)
	if err != nil {
		if errors.Is(err, provider.ErrUnsupportedFormat) {
			return wrap(invalid(out, err.Error())), nil
		}
		out.StatusCode = 500
		out.Errors = []result.Error{{Type: "parse_error", Severity: "error", Message: err.Error()}}
		return wrap(out), nil
	}

	out.Success = res.Success
	out.Errors = res.Errors
	out.Warnings = res.Warnings
	out.Data = res.Data
	if !res.Success {
		out.StatusCode = 422
		return wrap(out), nil
	}
	if !event.NoSVG {
		sc := renderer.Render(res.Data)
		var buf bytes.Buffer
		if err := render.WriteSVG(&buf, sc, sc.Space, render.SVGOptions{}); err != nil {
			out.StatusCode = 500
			out.Success = false
			out.Errors = append(out.Errors, result.Error{Type: "render_error", Severity: "error", Message: err.Error()})
			return wrap(out), nil
		}
		out.SVG = buf.String()
	}
	return wrap(out), nil
}

func decode(s string) (string, error) {
	dec, err := base64.StdEncoding.DecodeString(s)
	return string(dec), err
}

func invalid(out LambdaResponse, msg string) LambdaResponse {
	out.StatusCode = 400
	out.Success = false
	out.Errors = []result.Error{{Type: "invalid_input", Severity: "error", Message: msg}}
	return out
}

func wrap(out LambdaResponse) APIGatewayResponse {
	bodyBytes, _ := json.Marshal(out)
	return APIGatewayResponse{
		StatusCode: out.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(bodyBytes),
	}
}

func main() {
	lambda.Start(handler)
}
