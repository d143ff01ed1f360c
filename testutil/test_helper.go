/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference dev_docs/backend_requirements.md
 * @stateFlow 测试数据创建 -> 测试执行 -> 断言验证
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies testify, net/http/httptest
 * @refs service/models
 */

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"datacleaner-service/service/models"

	"github.com/stretchr/testify/assert"
)

// TableFactory 测试数据表工厂
type TableFactory struct{}

// NewTableFactory 创建测试数据表工厂
func NewTableFactory() *TableFactory {
	return &TableFactory{}
}

// NumericColumn 构造数值列，nil表示缺失单元格
func (f *TableFactory) NumericColumn(name string, values ...*float64) models.Column {
	col := models.Column{Name: name, Kind: models.ColumnKindNumeric}
	for _, v := range values {
		if v == nil {
			col.Cells = append(col.Cells, models.Cell{Missing: true})
		} else {
			col.Cells = append(col.Cells, models.Cell{Value: formatFloat(*v)})
		}
	}
	return col
}

// CategoricalColumn 构造分类列，空字符串表示缺失单元格
func (f *TableFactory) CategoricalColumn(name string, values ...string) models.Column {
	col := models.Column{Name: name, Kind: models.ColumnKindCategorical}
	for _, v := range values {
		if v == "" {
			col.Cells = append(col.Cells, models.Cell{Missing: true})
		} else {
			col.Cells = append(col.Cells, models.Cell{Value: v})
		}
	}
	return col
}

// Table 由若干列组装数据表
func (f *TableFactory) Table(columns ...models.Column) *models.Table {
	return &models.Table{Columns: columns}
}

// Float 浮点数指针辅助
func Float(v float64) *float64 {
	return &v
}

func formatFloat(v float64) string {
	data, _ := json.Marshal(v)
	return string(data)
}

// HTTPTestHelper HTTP测试辅助工具
type HTTPTestHelper struct{}

// NewHTTPTestHelper 创建HTTP测试辅助工具
func NewHTTPTestHelper() *HTTPTestHelper {
	return &HTTPTestHelper{}
}

// CreateJSONRequest 创建JSON请求
func (h *HTTPTestHelper) CreateJSONRequest(method, url string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// CreateUploadRequest 创建multipart文件上传请求
func (h *HTTPTestHelper) CreateUploadRequest(url, filename string, content []byte) (*http.Request, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

// AssertJSONResponse 断言JSON响应
func (h *HTTPTestHelper) AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedBody interface{}) {
	assert.Equal(t, expectedStatus, w.Code)

	if expectedBody != nil {
		var actualBody interface{}
		err := json.Unmarshal(w.Body.Bytes(), &actualBody)
		assert.NoError(t, err)

		expectedJSON, _ := json.Marshal(expectedBody)
		actualJSON, _ := json.Marshal(actualBody)

		assert.JSONEq(t, string(expectedJSON), string(actualJSON))
	}
}
