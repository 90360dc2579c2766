package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	launchpad "github.com/lhpt2/launchpad-mini-control"
	"github.com/lhpt2/launchpad-mini-control/midi"
)

type fakeOutput struct {
	msgs []midi.Message
}

func (o *fakeOutput) WriteMessage(msg midi.Message) error {
	o.msgs = append(o.msgs, msg)
	return nil
}

func (o *fakeOutput) WriteMessages(msgs []midi.Message) error {
	o.msgs = append(o.msgs, msgs...)
	return nil
}

type fakeInput struct{}

func (in *fakeInput) Poll() (bool, error)               { return false, nil }
func (in *fakeInput) ReadN(int) ([]midi.Message, error) { return nil, nil }

type fakeBackend struct {
	devs []midi.DeviceInfo
}

func (b *fakeBackend) Devices() ([]midi.DeviceInfo, error)         { return b.devs, nil }
func (b *fakeBackend) Input(midi.Identifier) (midi.Input, error)   { return &fakeInput{}, nil }
func (b *fakeBackend) Output(midi.Identifier) (midi.Output, error) { return &fakeOutput{}, nil }
func (b *fakeBackend) DefaultInput() (midi.Input, error)           { return &fakeInput{}, nil }
func (b *fakeBackend) DefaultOutput() (midi.Output, error)         { return &fakeOutput{}, nil }
func (b *fakeBackend) Close() error                                { return nil }
func (b *fakeBackend) InOut(string) (midi.Input, midi.Output, error) {
	return &fakeInput{}, &fakeOutput{}, nil
}

func newTestServer() (*Server, *fakeOutput) {
	gin.SetMode(gin.TestMode)
	out := &fakeOutput{}
	dev := launchpad.New(&fakeInput{}, out)
	backend := &fakeBackend{devs: []midi.DeviceInfo{
		{ID: 0, Name: "Launchpad Mini", Dir: midi.DirectionInput},
		{ID: 0, Name: "Launchpad Mini", Dir: midi.DirectionOutput},
	}}
	return NewServer(dev, backend), out
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer()
	w := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestListDevices(t *testing.T) {
	s, _ := newTestServer()
	w := do(t, s, http.MethodGet, "/api/v1/devices", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Devices []struct {
			Name      string `json:"name"`
			Direction string `json:"direction"`
		} `json:"devices"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Devices, 2)
	assert.Equal(t, "input", resp.Devices[0].Direction)
}

func TestSetPosition(t *testing.T) {
	s, out := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/grid/position", `{"row":3,"col":5,"color":"green"}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, out.msgs, 1)
	assert.Equal(t, midi.Message{Status: 0x90, Data1: 0x35, Data2: 0x30}, out.msgs[0])
}

func TestSetPositionRejectsUnknownColor(t *testing.T) {
	s, out := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/grid/position", `{"row":0,"col":0,"color":"mauve"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, out.msgs)
}

func TestSetPositionRejectsOutOfRange(t *testing.T) {
	s, _ := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/grid/position", `{"row":9,"col":0,"color":"green"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetPositionControlRowHasNoSceneButton(t *testing.T) {
	s, out := newTestServer()

	w := do(t, s, http.MethodPost, "/api/v1/grid/position", `{"row":8,"col":8,"color":"green"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, out.msgs)

	w = do(t, s, http.MethodPost, "/api/v1/grid/position", `{"row":8,"col":7,"color":"green"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, out.msgs, 1)
	assert.Equal(t, midi.Message{Status: 0xB0, Data1: 0x6F, Data2: 0x30}, out.msgs[0])
}

func TestSetAll(t *testing.T) {
	s, out := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/grid/all", `{"color":"red"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out.msgs, 72)
}

func TestSetFirstRow(t *testing.T) {
	s, out := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/grid/row", `{"color":"amber"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, out.msgs, 8)
	assert.Equal(t, uint8(0x68), out.msgs[0].Data1)
}

func TestBlackoutFull(t *testing.T) {
	s, out := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/grid/blackout", `{"full":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out.msgs, 80)
}

func TestReset(t *testing.T) {
	s, out := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/device/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, out.msgs, 1)
	assert.Equal(t, midi.Message{Status: 0xB0}, out.msgs[0])
}

func TestDutyCycleClampsInsteadOfRejecting(t *testing.T) {
	s, out := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/device/duty-cycle", `{"numerator":0,"denominator":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, out.msgs, 1)
	assert.Equal(t, midi.Message{Status: 0xB0, Data1: 0x1E, Data2: 0x00}, out.msgs[0])
}

func TestBufferEndpoints(t *testing.T) {
	s, out := newTestServer()

	w := do(t, s, http.MethodPost, "/api/v1/device/buffer", `{"setting":"one-active"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"doubleBuffered":true`)
	require.Len(t, out.msgs, 1)
	assert.Equal(t, uint8(0x21), out.msgs[0].Data2)

	w = do(t, s, http.MethodPost, "/api/v1/device/buffer/swap", `{"copy":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, out.msgs, 2)
	assert.Equal(t, uint8(0x34), out.msgs[1].Data2)
}

func TestBufferRejectsUnknownSetting(t *testing.T) {
	s, _ := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/device/buffer", `{"setting":"triple"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectMode(t *testing.T) {
	s, out := newTestServer()
	w := do(t, s, http.MethodPost, "/api/v1/device/mode", `{"mode":"drumrack"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, out.msgs, 1)
	assert.Equal(t, midi.Message{Status: 0xB0, Data1: 0x00, Data2: 0x02}, out.msgs[0])
}

func TestSetMatrix(t *testing.T) {
	s, out := newTestServer()

	var grid [8][9]string
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = "black"
		}
	}
	grid[3][5] = "green"

	body, err := json.Marshal(map[string]any{"grid": grid})
	require.NoError(t, err)

	w := do(t, s, http.MethodPost, "/api/v1/grid/matrix", string(body))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, out.msgs, 72)
	assert.Equal(t, uint8(0x30), out.msgs[3*9+5].Data2)
}
