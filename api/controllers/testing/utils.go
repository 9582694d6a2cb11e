package testing

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// PerformRequest Helper for performing JSON requests in tests.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			panic("failed to marshal request body: " + err.Error())
		}
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

// MultipartFile is one uploaded file in a multipart test request.
type MultipartFile struct {
	Field    string
	FileName string
	Content  []byte
}

// PerformMultipartRequest Helper for performing multipart form requests in
// tests, fields may repeat (use a slice of pairs via Values).
func PerformMultipartRequest(router *gin.Engine, method, path string, fields map[string][]string, files []MultipartFile, headers map[string]string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for field, values := range fields {
		for _, v := range values {
			if err := writer.WriteField(field, v); err != nil {
				panic("failed to write form field: " + err.Error())
			}
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			panic("failed to create form file: " + err.Error())
		}
		if _, err := io.Copy(part, bytes.NewReader(f.Content)); err != nil {
			panic("failed to write form file: " + err.Error())
		}
	}
	if err := writer.Close(); err != nil {
		panic("failed to close multipart writer: " + err.Error())
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}
