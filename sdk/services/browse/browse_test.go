// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package browse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xnat-tools/xnatio/sdk/config"
	"github.com/xnat-tools/xnatio/sdk/events"
	"github.com/xnat-tools/xnatio/sdk/xnat"
)

type fakeXnat struct {
	mu       sync.Mutex
	requests []string
	routes   map[string]string
}

func (f *fakeXnat) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.RequestURI())
	f.mu.Unlock()

	body, ok := f.routes[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = w.Write([]byte(body))
}

func newService(t *testing.T, routes map[string]string) (*BrowseService, *fakeXnat, *events.Bus, *httptest.Server) {
	t.Helper()
	fx := &fakeXnat{routes: routes}
	srv := httptest.NewServer(fx)
	t.Cleanup(srv.Close)

	bus := events.NewBus()
	core := config.NewHTTPCore(srv.Client(), config.CoreConfig{Host: srv.URL, Username: "alice", Password: "secret"})
	return NewBrowseService(core, bus, nil), fx, bus, srv
}

const twoProjects = `{"ResultSet":{"Result":[
	{"ID":"P1","name":"Brain","URI":"/data/projects/P1"},
	{"ID":"P2","name":"Heart","URI":"/data/projects/P2"}]}}`

func TestListProjectsFillsCache(t *testing.T) {
	svc, fx, _, _ := newService(t, map[string]string{"/data/archive/projects": twoProjects})

	rows, err := svc.ListFolder(context.Background(), ListRequest{
		URIs:    []string{"/projects"},
		Filters: []string{"accessible"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"/data/archive/projects?accessible=true"}, fx.requests)
	assert.Equal(t, rows, svc.Projects())
}

func TestListRelativeProjectsFillsCache(t *testing.T) {
	svc, fx, _, _ := newService(t, map[string]string{"/data/archive/projects": twoProjects})

	rows, err := svc.ListFolder(context.Background(), ListRequest{URIs: []string{"projects"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/archive/projects"}, fx.requests)
	assert.Len(t, svc.Projects(), 2)
	assert.Equal(t, rows, svc.Projects())
}

func TestListFilesFillsMetadataCache(t *testing.T) {
	files := `{"ResultSet":{"Result":[{"Name":"a.dcm","Size":"10"},{"Name":"b.dcm","Size":"20"}]}}`
	svc, _, _, _ := newService(t, map[string]string{
		"/data/archive/experiments/E1/scans/1/files": files,
	})

	rows, err := svc.ListFolder(context.Background(), ListRequest{
		URIs:       []string{"/experiments/E1/scans/1/files"},
		Attributes: []string{"Name"},
	})
	require.NoError(t, err)
	assert.Equal(t, []xnat.Row{{"Name": "a.dcm"}, {"Name": "b.dcm"}}, rows)

	size, ok := svc.FileSize("b.dcm")
	assert.True(t, ok)
	assert.Equal(t, int64(20), size)
	assert.Empty(t, svc.Projects())
}

func TestListConcatenatesAndToleratesPartialFailure(t *testing.T) {
	svc, _, bus, srv := newService(t, map[string]string{
		"/data/archive/projects/P1/subjects": `{"ResultSet":{"Result":[{"ID":"S1"}]}}`,
		"/data/archive/projects/P2/subjects": `<html>session expired</html>`,
		"/data/archive/projects/P3/subjects": `{"ResultSet":{"Result":[{"ID":"S3"},{"ID":"S4"}]}}`,
	})

	var jsonErrors []events.Event
	bus.Subscribe(events.JSONError, func(ev events.Event) { jsonErrors = append(jsonErrors, ev) })

	rows, err := svc.ListFolder(context.Background(), ListRequest{URIs: []string{
		"/projects/P1/subjects", "/projects/P2/subjects", "/projects/P3/subjects",
	}})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	require.Len(t, jsonErrors, 1)
	assert.Equal(t, srv.URL, jsonErrors[0].Host)
	assert.Equal(t, "alice", jsonErrors[0].User)
	assert.Equal(t, "<html>session expired</html>", string(jsonErrors[0].Body))
}

func TestListAllFailedIsDistinctFromEmpty(t *testing.T) {
	svc, _, _, _ := newService(t, map[string]string{
		"/data/archive/projects/EMPTY/subjects": `{"ResultSet":{"Result":[]}}`,
	})
	ctx := context.Background()

	rows, err := svc.ListFolder(ctx, ListRequest{URIs: []string{"/projects/EMPTY/subjects"}})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	rows, err = svc.ListFolder(ctx, ListRequest{URIs: []string{"/projects/NOPE/subjects"}})
	assert.ErrorIs(t, err, ErrListingFailed)
	assert.ErrorIs(t, err, config.ErrNotFound)
	assert.Nil(t, rows)
}

func TestSearchQueriesEveryLevelAttributePair(t *testing.T) {
	hit := `{"ResultSet":{"Result":[{"ID":"X"}]}}`
	svc, fx, _, _ := newService(t, map[string]string{
		"/data/archive/projects":    hit,
		"/data/archive/subjects":    hit,
		"/data/archive/experiments": hit,
	})

	res, err := svc.Search(context.Background(), "abc")
	require.NoError(t, err)

	want := 0
	for _, l := range xnat.SearchLevels {
		want += len(xnat.Searchable[l])
		// one row per attribute, duplicates kept
		assert.Len(t, res[l], len(xnat.Searchable[l]), l)
	}
	assert.Len(t, fx.requests, want)
	assert.Contains(t, fx.requests, "/data/archive/projects?pi_lastname=*abc*")
	assert.Contains(t, fx.requests, "/data/archive/experiments?label=*abc*&xsiType=xnat:mrSessionData,xnat:petSessionData")
	assert.Empty(t, svc.Projects(), "search must not touch the project cache")
}

func TestSearchRequiresTerm(t *testing.T) {
	svc, _, _, _ := newService(t, nil)
	_, err := svc.Search(context.Background(), "")
	assert.Error(t, err)
}

func TestResetCaches(t *testing.T) {
	svc, _, _, _ := newService(t, map[string]string{"/data/archive/projects": twoProjects})
	_, err := svc.ListFolder(context.Background(), ListRequest{URIs: []string{"/projects"}})
	require.NoError(t, err)

	svc.ResetCaches()
	assert.Empty(t, svc.Projects())
}
