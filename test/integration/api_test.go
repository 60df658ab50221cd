package integration

import (
	"fmt"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/vorsorge/vorsorge-rechner/internal/calculation"
	"github.com/vorsorge/vorsorge-rechner/internal/domain"
	"github.com/vorsorge/vorsorge-rechner/internal/server"
)

// The HTTP API and the scenario runner must agree for the same inputs.
func TestAPIMatchesScenarioRunner(t *testing.T) {
	cfg, results := loadAndRun(t)
	srv := server.New(calculation.NewCalculationEngine(), nil)

	for i, sc := range cfg.Scenarios {
		var path string
		var body any
		switch sc.Kind {
		case domain.ScenarioPensionPlan:
			path, body = "pension-plan", sc.PensionPlan
		case domain.ScenarioEarlyStart:
			path, body = "early-start", sc.EarlyStart
		case domain.ScenarioYield:
			path, body = "yield", sc.Yield
		case domain.ScenarioPhased:
			path, body = "phased", sc.Phased
		default:
			continue
		}

		t.Run(sc.Name, func(t *testing.T) {
			payload, err := json.Marshal(body)
			require.NoError(t, err)

			var ctx fasthttp.RequestCtx
			ctx.Request.Header.SetMethod(fasthttp.MethodPost)
			ctx.Request.SetRequestURI(fmt.Sprintf("/api/v1/%s", path))
			ctx.Request.SetBody(payload)
			srv.Handler(&ctx)
			require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

			var final float64
			switch sc.Kind {
			case domain.ScenarioPensionPlan:
				var res domain.PensionPlanResult
				require.NoError(t, json.Unmarshal(ctx.Response.Body(), &res))
				final = res.FinalCapital
			case domain.ScenarioEarlyStart:
				var res domain.EarlyStartResult
				require.NoError(t, json.Unmarshal(ctx.Response.Body(), &res))
				final = res.CapitalAtTarget
			case domain.ScenarioYield:
				var res domain.YieldResult
				require.NoError(t, json.Unmarshal(ctx.Response.Body(), &res))
				final = res.FinalBalance
			case domain.ScenarioPhased:
				var res domain.PhasedScheduleResult
				require.NoError(t, json.Unmarshal(ctx.Response.Body(), &res))
				final = res.FinalBalance
			}
			assert.InDelta(t, results.Scenarios[i].FinalCapital, final, 1e-6)
		})
	}
}
