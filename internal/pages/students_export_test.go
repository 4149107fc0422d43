package pages

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tutorboard/internal/api"
	"tutorboard/internal/query"
)

// brokenWriter fails every body write so the xlsx stream cannot finish.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (w *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("client went away")
}

func TestStudentsExportLogsStreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"students":[{"id":5,"firstName":"Aida","lastName":"S","isActive":true}],"meta":{"total":1,"totalPage":1}}`))
	}))
	defer srv.Close()

	client, err := api.NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	core, logs := observer.New(zap.ErrorLevel)
	h := NewStudentsHandler(&Deps{API: client, Cache: query.NewCache(), Log: zap.New(core)})

	c, _ := gin.CreateTestContext(&brokenWriter{httptest.NewRecorder()})
	c.Request = httptest.NewRequest(http.MethodGet, "/panel/students/export.xlsx", nil)
	h.Export(c)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "students export", entry.Message)
	require.Len(t, entry.Context, 1)
	assert.Equal(t, "error", entry.Context[0].Key)
}
