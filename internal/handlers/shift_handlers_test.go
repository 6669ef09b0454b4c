package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Skotchmaster/pos_system/internal/models"
	"github.com/stretchr/testify/require"
)

func TestShiftOpenAndCurrent(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/shifts/open",
		map[string]string{"opening_cash": "150.00"}, 1)
	require.NoError(t, env.Shift.Open(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var opened models.Shift
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opened))
	require.Equal(t, models.ShiftStatusOpen, opened.Status)
	require.NotZero(t, opened.ID)

	recCur, cCur := env.doJSONRequest(http.MethodGet, "/api/v1/shifts/current", nil, 1)
	require.NoError(t, env.Shift.GetCurrent(cCur))
	require.Equal(t, http.StatusOK, recCur.Code)

	var current models.Shift
	require.NoError(t, json.Unmarshal(recCur.Body.Bytes(), &current))
	require.Equal(t, opened.ID, current.ID)

	// Opening again returns the same shift.
	rec2, c2 := env.doJSONRequest(http.MethodPost, "/api/v1/shifts/open",
		map[string]string{"opening_cash": "999.00"}, 1)
	require.NoError(t, env.Shift.Open(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	var again models.Shift
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &again))
	require.Equal(t, opened.ID, again.ID)
}

func TestShiftCurrentWithoutOpen(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/shifts/current", nil, 5)
	require.NoError(t, env.Shift.GetCurrent(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShiftClose(t *testing.T) {
	env := newTestEnv(t)
	env.openShift(1)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/shifts/close",
		map[string]string{"closing_cash": "333.00"}, 1)
	require.NoError(t, env.Shift.Close(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var closed models.Shift
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &closed))
	require.Equal(t, models.ShiftStatusClosed, closed.Status)
	require.NotNil(t, closed.EndTime)
}

func TestShiftCloseWithoutOpen(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/shifts/close",
		map[string]string{"closing_cash": "333.00"}, 9)
	require.NoError(t, env.Shift.Close(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
