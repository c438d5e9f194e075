package endpoint

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
)

type requestSpec struct {
	method       string
	registerPath string
	requestPath  string
	handler      gin.HandlerFunc
	body         interface{}
	headers      map[string]string
}

func performRequest(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	var reader io.Reader
	setJSONHeader := false
	switch v := spec.body.(type) {
	case nil:
		reader = strings.NewReader("")
	case string:
		reader = strings.NewReader(v)
		setJSONHeader = true
	case *multipartBody:
		reader = bytes.NewReader(v.buf.Bytes())
	default:
		b, _ := json.Marshal(spec.body)
		reader = bytes.NewReader(b)
		setJSONHeader = true
	}

	req := httptest.NewRequest(spec.method, spec.requestPath, reader)
	if setJSONHeader {
		req.Header.Set("Content-Type", "application/json")
	}
	if mp, ok := spec.body.(*multipartBody); ok {
		req.Header.Set("Content-Type", mp.contentType)
	}
	for key, value := range spec.headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			return w, nil, err
		}
	}
	return w, response, nil
}

func doRequestWithHandler(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	switch spec.method {
	case http.MethodGet:
		r.GET(spec.registerPath, spec.handler)
	case http.MethodPost:
		r.POST(spec.registerPath, spec.handler)
	case http.MethodPatch:
		r.PATCH(spec.registerPath, spec.handler)
	case http.MethodPut:
		r.PUT(spec.registerPath, spec.handler)
	case http.MethodDelete:
		r.DELETE(spec.registerPath, spec.handler)
	default:
		r.Handle(spec.method, spec.registerPath, spec.handler)
	}
	return performRequest(r, spec)
}

type multipartBody struct {
	buf         bytes.Buffer
	contentType string
}

// newMultipartBody builds a form with the given fields and, when filename is set, an "image" file part.
func newMultipartBody(fields map[string]string, filename string, content []byte) *multipartBody {
	mb := &multipartBody{}
	w := multipart.NewWriter(&mb.buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if filename != "" {
		part, _ := w.CreateFormFile("image", filename)
		_, _ = part.Write(content)
	}
	_ = w.Close()
	mb.contentType = w.FormDataContentType()
	return mb
}
