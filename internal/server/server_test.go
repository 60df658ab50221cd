package server

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/vorsorge/vorsorge-rechner/internal/calculation"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
)

func newTestServer() *Server {
	return New(calculation.NewCalculationEngine(), nil)
}

func do(t *testing.T, s *Server, method, uri, body string) *fasthttp.RequestCtx {
	t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.SetBodyString(body)
	}
	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	s.Handler(&ctx)
	return &ctx
}

func decodeError(t *testing.T, ctx *fasthttp.RequestCtx) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	ctx := do(t, newTestServer(), fasthttp.MethodGet, "/healthz", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"status":"ok"}`, string(ctx.Response.Body()))
}

func TestSubsidyEndpoint(t *testing.T) {
	ctx := do(t, newTestServer(), fasthttp.MethodPost, "/api/v1/subsidy",
		`{"annual_amount": 1800, "child_count": 0, "rate_tier": "2027"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var res domain.SubsidyResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &res))
	assert.Equal(t, "360.00", res.Tier1Subsidy.StringFixed(2))
	assert.Equal(t, "120.00", res.Tier2Subsidy.StringFixed(2))
	assert.Equal(t, "480.00", res.TotalSubsidy.StringFixed(2))
}

func TestFutureValueEndpoint(t *testing.T) {
	ctx := do(t, newTestServer(), fasthttp.MethodPost, "/api/v1/future-value",
		`{"monthly_contribution": 100, "months": 12, "annual_return_pct": 0}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var res FutureValueResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &res))
	assert.InDelta(t, 1200.0, res.Balance, 1e-9)
	assert.InDelta(t, 1200.0, res.PaidIn, 1e-9)
}

func TestTermIsClampedToMaxMonths(t *testing.T) {
	s := newTestServer()

	ctx := do(t, s, fasthttp.MethodPost, "/api/v1/future-value",
		`{"monthly_contribution": 100, "months": 200000, "annual_return_pct": 6}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	var fv FutureValueResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &fv))
	expected := calculation.FutureValue(domain.ProjectionInput{
		MonthlyContribution: 100, Months: calculation.MaxMonths, AnnualReturnPct: 6,
	})
	assert.InDelta(t, expected, fv.Balance, 1e-6)
	assert.InDelta(t, 100.0*calculation.MaxMonths, fv.PaidIn, 1e-6)

	ctx = do(t, s, fasthttp.MethodPost, "/api/v1/phased",
		`{"phase1": {"monthly_contribution": 10, "months": 200000, "annual_return_pct": 6}, "phase2": {"monthly_contribution": 10, "months": -5}, "phase2_enabled": true}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	var phased domain.PhasedScheduleResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &phased))
	assert.Equal(t, calculation.MaxMonths, phased.Phase1Months)
	assert.Equal(t, 0, phased.Phase2Months)
	assert.InDelta(t, phased.Phase1Balance, phased.FinalBalance, 1e-9)
}

func TestYieldEndpointDefaultsToEffectiveRate(t *testing.T) {
	ctx := do(t, newTestServer(), fasthttp.MethodPost, "/api/v1/yield",
		`{"initial_balance": 1000, "years": 2, "annual_return_pct": 10}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var res domain.YieldResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &res))
	assert.Equal(t, domain.RateConventionEffective, res.Convention)
	assert.InDelta(t, 1210.0, res.FinalBalance, 1e-6)
	assert.Len(t, res.Snapshots, 2)
}

func TestPhasedAndEarlyStartEndpoints(t *testing.T) {
	s := newTestServer()

	ctx := do(t, s, fasthttp.MethodPost, "/api/v1/phased",
		`{"phase1": {"monthly_contribution": 50, "months": 24}, "phase2": {"monthly_contribution": 10, "months": 12}, "phase2_enabled": true}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var phased domain.PhasedScheduleResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &phased))
	assert.InDelta(t, 1200.0, phased.Phase1Balance, 1e-9)
	assert.InDelta(t, 1320.0, phased.FinalBalance, 1e-9)

	ctx = do(t, s, fasthttp.MethodPost, "/api/v1/early-start",
		`{"birth_year": 2020, "monthly_state": 10, "annual_return_pct": 0}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var early domain.EarlyStartResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &early))
	assert.InDelta(t, 1440.0, early.CapitalAt18, 1e-9)
}

func TestPensionPlanEndpoint(t *testing.T) {
	ctx := do(t, newTestServer(), fasthttp.MethodPost, "/api/v1/pension-plan",
		`{"amount": 150, "child_count": 1, "rate_tier": "b", "annual_return_pct": 0, "years": 1}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var res domain.PensionPlanResult
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &res))
	assert.Equal(t, "420.00", res.Subsidy.Tier1Subsidy.StringFixed(2))
	assert.Equal(t, "840.00", res.Subsidy.TotalSubsidy.StringFixed(2))
	assert.Equal(t, 12, res.Months)
	assert.InDelta(t, 1800.0+840.0, res.FinalCapital, 1e-6)
}

func TestErrors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name    string
		method  string
		uri     string
		body    string
		status  int
		message string
	}{
		{"unknown path", fasthttp.MethodPost, "/api/v1/nope", `{}`, fasthttp.StatusNotFound, "Unknown endpoint /api/v1/nope"},
		{"wrong method", fasthttp.MethodGet, "/api/v1/subsidy", "", fasthttp.StatusMethodNotAllowed, "Method not allowed"},
		{"health post", fasthttp.MethodPost, "/healthz", "", fasthttp.StatusMethodNotAllowed, "Method not allowed"},
		{"empty body", fasthttp.MethodPost, "/api/v1/yield", "", fasthttp.StatusBadRequest, "empty request body"},
		{"malformed", fasthttp.MethodPost, "/api/v1/yield", `{"years":`, fasthttp.StatusBadRequest, "Invalid request body"},
		{"unknown field", fasthttp.MethodPost, "/api/v1/yield", `{"yeras": 3}`, fasthttp.StatusBadRequest, "Invalid request body"},
		{"bad tier", fasthttp.MethodPost, "/api/v1/subsidy", `{"annual_amount": 100, "rate_tier": "2031"}`, fasthttp.StatusBadRequest, "unknown rate tier"},
		{"bad convention", fasthttp.MethodPost, "/api/v1/yield", `{"years": 1, "convention": "daily"}`, fasthttp.StatusBadRequest, "unknown rate convention"},
		{"bad input mode", fasthttp.MethodPost, "/api/v1/pension-plan", `{"amount": 10, "input_mode": "weekly"}`, fasthttp.StatusBadRequest, "unknown input mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := do(t, s, tt.method, tt.uri, tt.body)
			assert.Equal(t, tt.status, ctx.Response.StatusCode())
			resp := decodeError(t, ctx)
			assert.Equal(t, tt.status, resp.Status)
			assert.Contains(t, resp.Message, tt.message)
		})
	}
}

func TestRulesEndpoint(t *testing.T) {
	ctx := do(t, newTestServer(), fasthttp.MethodGet, "/api/v1/rules", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var rules domain.SubsidyRules
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &rules))
	assert.Equal(t, 12, rules.MaxChildren)
	assert.Equal(t, "1800", rules.EligibleCap.String())

	ctx = do(t, newTestServer(), fasthttp.MethodPost, "/api/v1/rules", "{}")
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
	assert.Equal(t, fasthttp.MethodGet, string(ctx.Response.Header.Peek("Allow")))
}

const scenarioYAML = `scenarios:
  - name: "ETF"
    yield:
      monthly_contribution: 100
      years: 1
      annual_return_pct: 0
  - name: "Zulage"
    subsidy:
      annual_amount: 1200
`

func TestScenariosEndpoint(t *testing.T) {
	s := newTestServer()

	ctx := do(t, s, fasthttp.MethodPost, "/api/v1/scenarios", scenarioYAML)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var results domain.ScenarioComparison
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &results))
	require.Len(t, results.Scenarios, 2)
	assert.InDelta(t, 1200.0, results.Scenarios[0].FinalCapital, 1e-9)
	assert.Equal(t, domain.ScenarioSubsidy, results.Scenarios[1].Kind)

	ctx = do(t, s, fasthttp.MethodPost, "/api/v1/scenarios?format=detailed-csv", scenarioYAML)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Header.ContentType()), "text/csv")
	assert.Contains(t, string(ctx.Response.Body()), "ETF,yield,1,1200.00,1200.00")

	ctx = do(t, s, fasthttp.MethodPost, "/api/v1/scenarios?format=pdf", scenarioYAML)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, decodeError(t, ctx).Message, "unsupported output format")

	ctx = do(t, s, fasthttp.MethodPost, "/api/v1/scenarios", "scenarios: []\n")
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, decodeError(t, ctx).Message, "no scenarios provided")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/html; charset=utf-8", contentType("html"))
	assert.Contains(t, contentType("xlsx"), "spreadsheetml")
	assert.Equal(t, "text/plain; charset=utf-8", contentType("console"))
}
