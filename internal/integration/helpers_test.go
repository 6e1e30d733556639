package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-ticket-booking/internal/app"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"updatedAt": {},
	"reference": {},
	"paidAt":    {},
}

func prepareRequest(
	method, path string,
	body io.Reader,
	headers map[string]string,
	cookies []*http.Cookie) (*http.Request, error) {

	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	if diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k, v := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}

		switch nested := v.(type) {
		case map[string]any:
			cleanMap(nested)
		case []any:
			for _, item := range nested {
				if im, ok := item.(map[string]any); ok {
					cleanMap(im)
				}
			}
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	query, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(query))
	require.NoError(t, err)
}

// sessionCookies stores a session for actor the way the identity service does
// and returns the cookie that carries it.
func sessionCookies(t testing.TB, testApp *TestApp, actor domain.Actor) []*http.Cookie {
	t.Helper()

	sm := testApp.SessionManager

	ctx, err := sm.Load(context.Background(), "")
	require.NoError(t, err)

	sm.Put(ctx, app.SessionKeyUserId, actor.UserID)
	sm.Put(ctx, app.SessionKeyRole, string(actor.Role))

	token, expiry, err := sm.Commit(ctx)
	require.NoError(t, err)

	return []*http.Cookie{{Name: sm.Cookie.Name, Value: token, Expires: expiry}}
}

func bookingStatus(t testing.TB, db *pgxpool.Pool, bookingID int) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM bookings WHERE id = $1", bookingID).Scan(&status)
	require.NoError(t, err)

	return status
}

func activeAssignments(t testing.TB, db *pgxpool.Pool, showID int) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM seat_assignments WHERE show_id = $1 AND released_at IS NULL", showID).Scan(&n)
	require.NoError(t, err)

	return n
}

func bookingCount(t testing.TB, db *pgxpool.Pool) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT COUNT(*) FROM bookings").Scan(&n)
	require.NoError(t, err)

	return n
}
