package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"github.com/vorsorge/vorsorge-rechner/internal/calculation"
	"github.com/vorsorge/vorsorge-rechner/internal/config"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"github.com/vorsorge/vorsorge-rechner/internal/output"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// FutureValueResponse wraps the scalar accumulator result.
type FutureValueResponse struct {
	Balance float64 `json:"balance"`
	PaidIn  float64 `json:"paid_in"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

const apiPrefix = "/api/v1/"

var errEmptyBody = errors.New("empty request body")

// Server exposes the calculation engine over HTTP. Requests share no state;
// each one is a pure recomputation.
type Server struct {
	engine *calculation.CalculationEngine
	logger calculation.Logger
	parser *config.InputParser
	routes map[string]route
}

type route struct {
	method  string
	handler fasthttp.RequestHandler
}

// New creates a server around engine. A nil logger disables request logging.
func New(engine *calculation.CalculationEngine, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	s := &Server{engine: engine, logger: logger, parser: config.NewInputParser()}
	post := fasthttp.MethodPost
	s.routes = map[string]route{
		apiPrefix + "subsidy":      {post, s.handleSubsidy},
		apiPrefix + "pension-plan": {post, s.handlePensionPlan},
		apiPrefix + "early-start":  {post, s.handleEarlyStart},
		apiPrefix + "yield":        {post, s.handleYield},
		apiPrefix + "future-value": {post, s.handleFutureValue},
		apiPrefix + "phased":       {post, s.handlePhased},
		apiPrefix + "scenarios":    {post, s.handleScenarios},
		apiPrefix + "rules":        {fasthttp.MethodGet, s.handleRules},
	}
	return s
}

// Handler is the fasthttp entry point.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch {
	case path == "/healthz":
		if !ctx.IsGet() && !ctx.IsHead() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			break
		}
		writeJSON(ctx, fasthttp.StatusOK, HealthResponse{Status: "ok"})
	default:
		r, ok := s.routes[path]
		if !ok {
			writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("Unknown endpoint %s", path))
			break
		}
		if string(ctx.Method()) != r.method {
			ctx.Response.Header.Set("Allow", r.method)
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			break
		}
		r.handler(ctx)
	}

	s.logger.Infof("%s %s -> %d (%s)", ctx.Method(), path, ctx.Response.StatusCode(), time.Since(start))
}

// Serve runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler,
		Name:               "vorsorge",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
		MaxRequestBodySize: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Infof("shutting down HTTP server")
		return srv.Shutdown()
	}
}

func (s *Server) handleSubsidy(ctx *fasthttp.RequestCtx) {
	var in domain.ContributionInput
	if !decode(ctx, &in) {
		return
	}
	tier, err := domain.ParseRateTier(string(in.RateTier))
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	in.RateTier = tier
	writeJSON(ctx, fasthttp.StatusOK, s.engine.CalculateSubsidy(in))
}

func (s *Server) handlePensionPlan(ctx *fasthttp.RequestCtx) {
	var in domain.PensionPlanInput
	if !decode(ctx, &in) {
		return
	}
	tier, err := domain.ParseRateTier(string(in.RateTier))
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	in.RateTier = tier
	switch in.InputMode {
	case "":
		in.InputMode = domain.InputModeMonthly
	case domain.InputModeMonthly, domain.InputModeYearly:
	default:
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("unknown input mode %q", in.InputMode))
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, s.engine.CalculatePensionPlan(in))
}

func (s *Server) handleEarlyStart(ctx *fasthttp.RequestCtx) {
	var in domain.EarlyStartInput
	if !decode(ctx, &in) {
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, s.engine.CalculateEarlyStart(in))
}

func (s *Server) handleYield(ctx *fasthttp.RequestCtx) {
	var in domain.YieldInput
	if !decode(ctx, &in) {
		return
	}
	conv, err := domain.ParseRateConvention(string(in.Convention), domain.RateConventionEffective)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	in.Convention = conv
	writeJSON(ctx, fasthttp.StatusOK, s.engine.CalculateYield(in))
}

func (s *Server) handleFutureValue(ctx *fasthttp.RequestCtx) {
	var in domain.ProjectionInput
	if !decode(ctx, &in) {
		return
	}
	in = calculation.ClampProjection(in)
	writeJSON(ctx, fasthttp.StatusOK, FutureValueResponse{
		Balance: s.engine.FutureValue(in),
		PaidIn:  calculation.NonNegative(in.InitialBalance) + in.PaidIn(),
	})
}

func (s *Server) handlePhased(ctx *fasthttp.RequestCtx) {
	var in domain.PhasedScheduleInput
	if !decode(ctx, &in) {
		return
	}
	in.Phase1 = calculation.ClampProjection(in.Phase1)
	in.Phase2 = calculation.ClampProjection(in.Phase2)
	writeJSON(ctx, fasthttp.StatusOK, s.engine.Schedule(in))
}

func (s *Server) handleRules(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, s.engine.Rules())
}

// handleScenarios runs a whole configuration file (YAML or JSON) and renders
// the comparison in the format named by the "format" query argument.
func (s *Server) handleScenarios(ctx *fasthttp.RequestCtx) {
	body := ctx.PostBody()
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, errEmptyBody.Error())
		return
	}
	cfg, err := s.parser.Parse(body)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	format := string(ctx.QueryArgs().Peek("format"))
	if format == "" {
		format = "json"
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("unsupported output format %q", format))
		return
	}

	results, err := s.engine.RunScenarios(ctx, cfg)
	if err != nil {
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}
	data, err := f.Format(results)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to render report: "+err.Error())
		return
	}
	ctx.SetContentType(contentType(f.Name()))
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(data)
}

func contentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "html":
		return "text/html; charset=utf-8"
	case "csv", "detailed-csv":
		return "text/csv; charset=utf-8"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// decode reads the JSON body into v and answers 400 on failure.
func decode(ctx *fasthttp.RequestCtx, v any) bool {
	body := ctx.PostBody()
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, errEmptyBody.Error())
		return false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	b, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}
