package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyforge/polyforge/internal/generate"
	"github.com/polyforge/polyforge/internal/log"
	"github.com/polyforge/polyforge/internal/spec"
	"github.com/polyforge/polyforge/internal/target"
)

func testSpec() *spec.Specification {
	return &spec.Specification{
		ID:            "spec-val",
		Name:          "Ledger",
		SchemaVersion: "1.0",
		Entities: []spec.Entity{
			{
				Name: "Account",
				Fields: []spec.Field{
					{Name: "id", Type: "uuid", Required: true},
					{Name: "balance", Type: "float", Required: true},
				},
			},
		},
		Flows: []spec.Flow{
			{Name: "OpenAccount", Steps: []spec.FlowStep{{Name: "create", Action: "create", Entity: "Account"}}},
		},
		Compliance: []spec.ComplianceRule{
			{ID: "audit-001", Category: "audit-logging", AppliesTo: []string{"Account"}},
		},
	}
}

func quietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.LevelError
	return log.New(cfg)
}

func generateFor(t *testing.T, s *spec.Specification, targetID string) (target.Target, *generate.Result) {
	t.Helper()
	tgt, err := target.Builtin().Get(targetID)
	require.NoError(t, err)
	result, err := generate.New(quietLogger()).Generate(context.Background(), s, tgt)
	require.NoError(t, err)
	return tgt, result
}

func TestValidateCleanResult(t *testing.T) {
	s := testSpec()
	v := New(quietLogger())

	for _, id := range []string{"web-react", "mobile-ios", "backend-go"} {
		t.Run(id, func(t *testing.T) {
			tgt, result := generateFor(t, s, id)
			outcome := v.Validate(s, tgt, result)

			assert.True(t, outcome.Passed)
			require.Len(t, outcome.Axes, 6)
			for _, r := range outcome.Axes {
				assert.True(t, r.Passed, "axis %s", r.Axis)
				assert.GreaterOrEqual(t, r.Confidence, 0.0)
				assert.LessOrEqual(t, r.Confidence, 1.0)
				assert.NotEmpty(t, r.Evidence, "axis %s carries evidence", r.Axis)
			}
		})
	}
}

func TestValidateFailedResult(t *testing.T) {
	s := testSpec()
	v := New(quietLogger())
	tgt, err := target.Builtin().Get("web-react")
	require.NoError(t, err)

	result := generate.FailedResult(tgt.ID, s.ID, "", generate.ErrKindSpecInvalid, "entity broken")
	outcome := v.Validate(s, tgt, result)

	assert.False(t, outcome.Passed)
	require.Len(t, outcome.Axes, 6)
	for _, r := range outcome.Axes {
		assert.False(t, r.Passed)
		assert.Equal(t, 1.0, r.Confidence)
		require.NotEmpty(t, r.Evidence)
		assert.Contains(t, r.Evidence[0], "entity broken")
	}
}

func TestSemanticsAxisDetectsDroppedField(t *testing.T) {
	s := testSpec()
	_, result := generateFor(t, s, "web-react")

	// Simulate a model that silently dropped the required flag.
	fields := result.Contract.Models["Account"]
	for i := range fields {
		if fields[i].Name == "balance" {
			fields[i].Required = false
		}
	}

	r := checkSemantics(s, result)
	assert.False(t, r.Passed)
	assert.Equal(t, 0.5, r.Confidence)
	require.NotEmpty(t, r.Evidence)
	assert.Contains(t, r.Evidence[0], "Account.balance")
}

func TestBusinessLogicAxisDetectsMissingFlow(t *testing.T) {
	s := testSpec()
	_, result := generateFor(t, s, "backend-nodejs")

	result.Contract.Screens = nil
	r := checkBusinessLogic(s, result)
	assert.False(t, r.Passed)
	assert.Equal(t, 0.0, r.Confidence)
}

func TestPerformanceAxisBaselineTolerance(t *testing.T) {
	s := testSpec()
	tgt, result := generateFor(t, s, "backend-go")

	r := checkPerformance(tgt, result)
	assert.True(t, r.Passed, "optimized estimates never exceed the declared baseline")

	result.Metrics.BundleSizeKB = tgt.Baseline.BundleSizeKB * 2
	r = checkPerformance(tgt, result)
	assert.False(t, r.Passed)
	require.NotEmpty(t, r.Evidence)
	assert.Contains(t, r.Evidence[0], "bundle size")
}

func TestSecurityAxisDetectsMissingControl(t *testing.T) {
	s := testSpec()
	_, result := generateFor(t, s, "web-vue")

	result.Contract.SecurityControls = nil
	r := checkSecurity(s, result)
	assert.False(t, r.Passed)
	assert.Equal(t, 0.0, r.Confidence)
	require.NotEmpty(t, r.Evidence)
	assert.Contains(t, r.Evidence[0], "audit-001")
}

func TestEmptySpecAxesPass(t *testing.T) {
	s := &spec.Specification{ID: "empty", Name: "Empty", SchemaVersion: "1.0"}
	v := New(quietLogger())
	tgt, result := generateFor(t, s, "web-react")

	outcome := v.Validate(s, tgt, result)
	assert.True(t, outcome.Passed, "an empty specification has nothing to violate")
	for _, a := range []Axis{AxisSemantics, AxisBusinessLogic, AxisSecurity} {
		assert.Equal(t, 1.0, outcome.Axis(a).Confidence)
	}
}

func TestOutcomeAxisLookup(t *testing.T) {
	o := &Outcome{Axes: []AxisResult{{Axis: AxisSyntax, Passed: true, Confidence: 1.0}}}
	assert.True(t, o.Axis(AxisSyntax).Passed)
	assert.Equal(t, AxisResult{Axis: AxisSecurity}, o.Axis(AxisSecurity))
}
