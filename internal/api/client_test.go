package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/vehicle.tracker/internal/httputil"
	"github.com/banshee-data/vehicle.tracker/internal/tracking"
)

func TestClient_AgainstServer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	st := env.drive(t, "v1", 50)
	c := NewClient(env.server.URL+"/", nil)

	vehicles, err := c.Vehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, tracking.VehicleID("v1"), vehicles[0].VehicleID)

	v, err := c.Vehicle(ctx, "v1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, v.TotalPoints)

	_, err = c.Vehicle(ctx, "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vehicle ghost not found")

	msg, err := c.SendCommand(ctx, "v1", tracking.CommandAccelerate)
	require.NoError(t, err)
	assert.Equal(t, "command accelerate sent to v1", msg)
	assert.Equal(t, tracking.CommandAccelerate, (<-st.Outbound()).Command)

	queued, err := c.RunSweeper(ctx)
	require.NoError(t, err)
	assert.True(t, queued)
}

func TestClient_RequestShape(t *testing.T) {
	mock := httputil.NewMockHTTPClient().
		AddResponse(http.StatusOK, `{"success":true,"message":"command reduce_speed sent to bus 7"}`)
	c := NewClient("http://tracker:8080", mock)

	msg, err := c.SendCommand(context.Background(), "bus 7", tracking.CommandReduceSpeed)
	require.NoError(t, err)
	assert.Equal(t, "command reduce_speed sent to bus 7", msg)

	req, body := mock.Request(0)
	require.NotNil(t, req)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/vehicles/bus%207/command", req.URL.EscapedPath())
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"command":"reduce_speed"}`, body)
}

func TestClient_TransportError(t *testing.T) {
	wantErr := errors.New("connection refused")
	c := NewClient("http://tracker:8080", httputil.NewMockHTTPClient().AddErrorResponse(wantErr))

	_, err := c.Vehicles(context.Background())
	assert.ErrorIs(t, err, wantErr)
}
