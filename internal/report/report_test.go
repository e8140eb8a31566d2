package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/polyforge/polyforge/internal/log"
	"github.com/polyforge/polyforge/internal/run"
	"github.com/polyforge/polyforge/internal/spec"
	"github.com/polyforge/polyforge/internal/target"
)

func quietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.LevelError
	return log.New(cfg)
}

func compiledRun(t *testing.T, s *spec.Specification, ids ...string) *run.Result {
	t.Helper()
	opts := run.DefaultOptions()
	opts.RetryBackoff = time.Millisecond
	o := run.New(quietLogger(), target.Builtin(), opts)
	res, err := o.Run(context.Background(), s, ids)
	require.NoError(t, err)
	return res
}

func sampleSpec() *spec.Specification {
	return &spec.Specification{
		ID:            "spec-report",
		Name:          "Storefront",
		SchemaVersion: "1.0",
		Entities: []spec.Entity{
			{
				Name: "Product",
				Fields: []spec.Field{
					{Name: "id", Type: "uuid", Required: true},
					{Name: "title", Type: "string", Required: true},
				},
			},
		},
	}
}

func TestBuildCleanRun(t *testing.T) {
	res := compiledRun(t, sampleSpec(), "web-react", "backend-go")
	r := Build(res)

	assert.Equal(t, "Storefront", r.Summary.SpecName)
	assert.Equal(t, "done", r.Summary.State)
	assert.False(t, r.Summary.Incomplete)
	assert.Equal(t, 2, r.Summary.TotalTargets)
	assert.Equal(t, 2, r.Summary.SucceededTargets)
	assert.Zero(t, r.Summary.FailedTargets)
	assert.Zero(t, r.Summary.TotalVariations)
	assert.Positive(t, r.Summary.TotalArtifacts)

	require.Len(t, r.Targets, 2)
	assert.Equal(t, "web-react", r.Targets[0].TargetID)
	assert.True(t, r.Targets[0].ValidationPassed)
	assert.Empty(t, r.Targets[0].FailedAxes)

	require.Len(t, r.Validation, 6)
	for _, v := range r.Validation {
		assert.Equal(t, 2, v.PassedTargets)
		assert.Zero(t, v.FailedTargets)
	}

	require.NotEmpty(t, r.Conclusions)
	assert.Contains(t, r.Conclusions[0], "All 2 targets compiled successfully")
	assert.Contains(t, r.Conclusions[1], "No cross-target variations")
}

func TestBuildFailedRun(t *testing.T) {
	s := sampleSpec()
	s.Entities[0].Relationships = []spec.Relationship{
		{Name: "ghost", Kind: "one-to-one", Target: "X"},
	}
	res := compiledRun(t, s, "web-react", "backend-go")
	r := Build(res)

	assert.Equal(t, 2, r.Summary.FailedTargets)
	assert.Zero(t, r.Summary.SucceededTargets)
	for _, h := range r.Targets {
		assert.False(t, h.Success)
		assert.Equal(t, "SpecInvalid", h.ErrorKind)
		assert.Len(t, h.FailedAxes, 6)
	}
	assert.Contains(t, r.Conclusions[0], "2 of 2 targets failed")
}

func TestBuildIsDeterministic(t *testing.T) {
	res := compiledRun(t, sampleSpec(), "web-vue")

	a := Build(res)
	b := Build(res)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ja, jb, "identical inputs produce byte-identical reports")
}

func TestWriteFormats(t *testing.T) {
	res := compiledRun(t, sampleSpec(), "web-react")
	r := Build(res)

	var jsonBuf bytes.Buffer
	require.NoError(t, Write(&jsonBuf, r, FormatJSON))
	var fromJSON EvidenceReport
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	assert.Equal(t, r.Summary.RunID, fromJSON.Summary.RunID)

	var yamlBuf bytes.Buffer
	require.NoError(t, Write(&yamlBuf, r, FormatYAML))
	var fromYAML EvidenceReport
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))
	assert.Equal(t, r.Summary.SpecHash, fromYAML.Summary.SpecHash)

	var textBuf bytes.Buffer
	require.NoError(t, Write(&textBuf, r, FormatText))
	text := textBuf.String()
	assert.Contains(t, text, "Evidence Report: ")
	assert.Contains(t, text, "web-react")
	assert.Contains(t, text, "Conclusions")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"text": FormatText,
		"JSON": FormatJSON,
		"yaml": FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")
}

func TestRenderIncompleteRun(t *testing.T) {
	res := compiledRun(t, sampleSpec(), "web-react")
	res.Incomplete = true

	r := Build(res)
	assert.True(t, r.Summary.Incomplete)
	require.NotEmpty(t, r.Conclusions)
	assert.Contains(t, r.Conclusions[0], "partial evidence")

	out := Render(r)
	assert.True(t, strings.Contains(out, "incomplete"))
}
