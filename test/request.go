package test

import (
	"activity-partner/internal/global/jwt"
	"activity-partner/internal/global/response"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Request 描述一次直接调用 handler 的请求
type Request struct {
	Method string
	Params gin.Params
	Query  url.Values
	Body   any
	UserID uint // 0 表示未登录
}

func DoRequest(t *testing.T, handlerFunc gin.HandlerFunc, request any) response.ResponseBody {
	return Do(t, handlerFunc, Request{Method: http.MethodPost, Body: request})
}

func Do(t *testing.T, handlerFunc gin.HandlerFunc, req Request) (resp response.ResponseBody) {
	t.Helper()
	w := Raw(t, handlerFunc, req)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

// Raw 返回原始的 ResponseRecorder，用于检查文件下载等非 JSON 响应
func Raw(t *testing.T, handlerFunc gin.HandlerFunc, req Request) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var body *bytes.Reader
	if req.Body != nil {
		requestBytes, err := json.Marshal(req.Body)
		require.NoError(t, err)
		body = bytes.NewReader(requestBytes)
	} else {
		body = bytes.NewReader(nil)
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	target := "/test"
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	c.Request = httptest.NewRequest(req.Method, target, body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = req.Params
	if req.UserID != 0 {
		c.Set(jwt.PayloadKey, &jwt.Claims{UserID: req.UserID})
	}

	handlerFunc(c)
	return w
}
