package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/knah1d/shopease/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	body, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewBuffer(body)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()

	var respBody response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))

	return respBody
}

// decodeData re-marshals the untyped envelope data into dest.
func decodeData(t *testing.T, respBody response.APIResponse, dest any) {
	t.Helper()

	jsonData, err := json.Marshal(respBody.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(jsonData, dest))
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	assert.Equal(t, status, w.Code)

	respBody := decodeResponse(t, w)
	assert.False(t, respBody.Success)
	require.NotNil(t, respBody.Error)
	assert.Equal(t, code, respBody.Error.Code)
}
