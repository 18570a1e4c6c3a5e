package httpapi

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

// HandleLambda pasa un request de API Gateway (HTTP API v2) por el mismo router.
func (s *Server) HandleLambda(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	s.log.Debug("lambda hit",
		"path", req.RawPath, "method", req.RequestContext.HTTP.Method,
		"ip", req.RequestContext.HTTP.SourceIP, "b64", req.IsBase64Encoded)

	// el adapter devuelve error (y la Lambda falla) con base64 roto; mejor un 400
	if req.IsBase64Encoded {
		if _, err := base64.StdEncoding.DecodeString(req.Body); err != nil {
			return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusBadRequest, Body: "invalid base64"}, nil
		}
	}
	if req.RequestContext.HTTP.Method == "" {
		req.RequestContext.HTTP.Method = http.MethodGet
	}
	return s.lambda.ProxyWithContext(ctx, req)
}

func newLambdaAdapter(h http.Handler) *httpadapter.HandlerAdapterV2 {
	return httpadapter.NewV2(h)
}
