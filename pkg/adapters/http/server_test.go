package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/internal/logging"
	"github.com/aretw0/acceptor/pkg/adapters/memory"
	"github.com/aretw0/acceptor/pkg/domain"
)

type MockBuilder struct {
	mock.Mock
}

func (m *MockBuilder) Build(ctx context.Context, req domain.Request) (*domain.Graph, error) {
	args := m.Called(ctx, req)
	g, _ := args.Get(0).(*domain.Graph)
	return g, args.Error(1)
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/acceptors", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestBuild_DecodesRequest(t *testing.T) {
	builder := new(MockBuilder)
	g := domain.NewGraph()
	g.NumStates = 2
	g.AddEdge(0, 1, domain.Raw("a"), 1, domain.PosInterior)

	builder.On("Build", mock.Anything, mock.MatchedBy(func(req domain.Request) bool {
		return req.Topology == domain.TopologyASG && req.Text == "a" && req.ASGRepetition == 3
	})).Return(g, nil).Once()

	h := NewHandler(builder, nil, logging.NewNop())
	w := post(t, h, `{"topology": "asg", "text": "a", "asg_repetition": 3}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"num_states":2,"edges":[{"from":0,"to":1,"label":"a","weight":1}]}`, w.Body.String())
	builder.AssertExpectations(t)
}

func TestBuild_ErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrEmptySequence, http.StatusBadRequest},
		{domain.ErrMissingLexicon, http.StatusBadRequest},
		{fmt.Errorf("lexicon lookup: %w", domain.ErrWordNotFound), http.StatusUnprocessableEntity},
		{domain.ErrAllophoneNotFound, http.StatusUnprocessableEntity},
		{domain.ErrRenumberDiverged, http.StatusInternalServerError},
		{context.Canceled, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			builder := new(MockBuilder)
			builder.On("Build", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := post(t, NewHandler(builder, nil, logging.NewNop()), `{"topology": "ctc", "text": "ab"}`)
			assert.Equal(t, tc.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tc.err.Error())
		})
	}
}

func TestBuild_Rejected(t *testing.T) {
	builder := new(MockBuilder)
	h := NewHandler(builder, nil, logging.NewNop())

	w := post(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(t, h, `{"topology": "hmm", "depth": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error)
	require.Len(t, resp.Fields, 1)
	assert.Contains(t, resp.Fields[0], "depth")

	w = post(t, h, `{"state_tying_file": "/etc/shadow"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	builder.AssertNotCalled(t, "Build", mock.Anything, mock.Anything)
}

func TestHandler_EndToEnd(t *testing.T) {
	reg := prometheus.NewRegistry()
	lex := memory.NewLexicon(map[string][]domain.Pronunciation{"cat": {{Phonemes: "k a t"}}})
	eng := acceptor.New(acceptor.WithLexicon(lex))
	h := NewHandler(eng, reg, logging.NewNop())

	w := post(t, h, `{"topology": "hmm", "text": "cat", "depth": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var g struct {
		NumStates int `json:"num_states"`
		Edges     []struct {
			From  int    `json:"from"`
			To    int    `json:"to"`
			Label string `json:"label"`
			Pos   string `json:"pos"`
		} `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.Equal(t, 6, g.NumStates)
	assert.Len(t, g.Edges, 7)
	assert.Equal(t, "k", g.Edges[2].Label)
	assert.Equal(t, "i", g.Edges[2].Pos)

	w = post(t, h, `{"topology": "hmm", "text": "dog", "depth": 2}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_CORSPreflight(t *testing.T) {
	h := NewHandler(new(MockBuilder), nil, logging.NewNop())
	req := httptest.NewRequest(http.MethodOptions, "/v1/acceptors", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenAPI(t *testing.T) {
	doc, err := OpenAPI(context.Background())
	require.NoError(t, err)

	item := doc.Paths.Value("/v1/acceptors")
	require.NotNil(t, item)
	require.NotNil(t, item.Post)
	assert.Equal(t, "buildAcceptor", item.Post.OperationID)

	props := doc.Components.Schemas["BuildRequest"].Value.Properties
	for _, key := range []string{"topology", "text", "sequence", "asg_repetition", "num_labels", "depth", "allo_num_states", "label_conversion", "reference_quirks"} {
		assert.Contains(t, props, key)
	}

	h := NewHandler(new(MockBuilder), nil, logging.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/v1/acceptors")
}
