package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %q not found", name)
	return 0
}

func TestCollectorCountsAuthEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration()
	c.RecordLogin()
	c.RecordLogin()
	c.RecordLoginFailure()
	c.RecordRefresh()
	c.RecordTokensRevoked(3)
	c.RecordTokensPurged(7)

	require.Equal(t, float64(1), counterValue(t, reg, "leagueforge_registrations_total"))
	require.Equal(t, float64(2), counterValue(t, reg, "leagueforge_logins_total"))
	require.Equal(t, float64(1), counterValue(t, reg, "leagueforge_login_failures_total"))
	require.Equal(t, float64(1), counterValue(t, reg, "leagueforge_token_refreshes_total"))
	require.Equal(t, float64(3), counterValue(t, reg, "leagueforge_tokens_revoked_total"))
	require.Equal(t, float64(7), counterValue(t, reg, "leagueforge_tokens_purged_total"))
}

func TestCollectorCountsHTTPStatusByLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(401)

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "leagueforge_http_status_total" {
			continue
		}
		require.Len(t, mf.GetMetric(), 2)
		for _, m := range mf.GetMetric() {
			switch m.GetLabel()[0].GetValue() {
			case "200":
				require.Equal(t, float64(2), m.GetCounter().GetValue())
			case "401":
				require.Equal(t, float64(1), m.GetCounter().GetValue())
			default:
				t.Fatalf("unexpected status label %q", m.GetLabel()[0].GetValue())
			}
		}
		return
	}
	t.Fatal("leagueforge_http_status_total metric not found")
}

func TestHandlerServesPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLogin()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "leagueforge_logins_total")
}
